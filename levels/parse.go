package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel separates the attribute section from the grid section.
const Sentinel = "@@@:::@@@"

// EmptySymbol is the grid symbol for empty space. It always has ID 0.
const EmptySymbol = " "

var (
	ErrNoSentinel        = errors.New("level data start sequence not found")
	ErrSentinelFirstLine = errors.New("level data start sequence on first line")
	ErrRaggedRow         = errors.New("grid row length differs from the first row")
	ErrUndeclaredSymbol  = errors.New("grid symbol has no attribute declaration")
	ErrNoGrid            = errors.New("level has no grid rows")
	ErrReservedSymbol    = errors.New("tile symbol is reserved for empty space")
	ErrSymbolLength      = errors.New("tile symbol must be a single character")
)

// ParseError reports the 1-based input line a failure refers to.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("parse level: %v", e.Err)
	}
	return fmt.Sprintf("parse level: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ElementType marks a tile as a dynamic element rather than terrain.
type ElementType string

const (
	ElementGoal  ElementType = "ElementType_Goal"
	ElementEnemy ElementType = "ElementType_Enemy"
)

// Attributes are the per-symbol properties declared in the attribute
// section. Numeric fields are pointers so that an absent value can be told
// apart from zero.
type Attributes struct {
	Symbol          string      `json:"tileSymbol,omitempty"`
	ContactDamage   *float64    `json:"contactDamage,omitempty"`
	Friction        *float64    `json:"frictionCoefficient,omitempty"`
	Texture         string      `json:"builtInTexture,omitempty"`
	TextureFile     string      `json:"textureFile,omitempty"`
	ElementType     ElementType `json:"elementType,omitempty"`
	Model           string      `json:"builtInModel,omitempty"`
	VelocityX       *float64    `json:"initMovementVelocityHoriz,omitempty"`
	VelocityY       *float64    `json:"initMovementVelocityVert,omitempty"`
	MovementPattern string      `json:"movementPattern,omitempty"`
	EmptySpace      bool        `json:"representsEmptySpace,omitempty"`
}

// IsEmpty reports whether a tile with these attributes is empty space. A nil
// record is empty.
func (a *Attributes) IsEmpty() bool {
	return a == nil || a.EmptySpace
}

// FrictionOr returns the declared friction coefficient or def.
func (a *Attributes) FrictionOr(def float64) float64 {
	if a == nil || a.Friction == nil {
		return def
	}
	return *a.Friction
}

// Damage returns the declared contact damage.
func (a *Attributes) Damage() (float64, bool) {
	if a == nil || a.ContactDamage == nil {
		return 0, false
	}
	return *a.ContactDamage, true
}

type levelWide struct {
	Backdrop *string `json:"builtInBackdrop"`
}

// Spec is a parsed level: symbol table, attribute records and tile rows.
// Row 0 is the bottom of the level.
type Spec struct {
	SymbolIDs  map[string]int
	Symbols    []string
	Attributes []*Attributes
	Rows       [][]int
	Backdrop   string
	// Undeclared lists grid symbols that had no attribute line, in order of
	// first appearance.
	Undeclared []string
}

// ParseOptions relax or tighten parsing.
type ParseOptions struct {
	// PadRaggedRows pads rows shorter than the widest row with empty space
	// instead of failing.
	PadRaggedRows bool
	// RejectUndeclared fails on grid symbols without an attribute line.
	RejectUndeclared bool
}

// Parse parses a level with default options.
func Parse(data []byte) (*Spec, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions parses the attribute section, then the grid section.
func ParseWithOptions(data []byte, opts ParseOptions) (*Spec, error) {
	lines := splitLines(data)
	start := -1
	for i, l := range lines {
		if strings.HasPrefix(l, Sentinel) {
			start = i
			break
		}
	}
	switch {
	case start < 0:
		return nil, &ParseError{Err: ErrNoSentinel}
	case start == 0:
		return nil, &ParseError{Line: 1, Err: ErrSentinelFirstLine}
	}

	s := &Spec{SymbolIDs: map[string]int{}}
	s.register(EmptySymbol, &Attributes{EmptySpace: true})

	for i, l := range lines[:start] {
		if err := s.parseAttributeLine(l); err != nil {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
	}

	declared := len(s.Symbols)
	width := 0
	firstRowLine := 0
	var rows [][]int
	for i, l := range lines[start+1:] {
		line := i + start + 2
		if l == "" {
			continue
		}
		row := make([]int, 0, len(l))
		for _, r := range l {
			sym := string(r)
			id, ok := s.SymbolIDs[sym]
			if !ok {
				if opts.RejectUndeclared {
					return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: %q", ErrUndeclaredSymbol, sym)}
				}
				id = s.register(sym, &Attributes{})
			}
			row = append(row, id)
		}
		if len(rows) == 0 {
			width = len(row)
			firstRowLine = line
		} else if len(row) != width {
			if !opts.PadRaggedRows {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: got %d, want %d (line %d)", ErrRaggedRow, len(row), width, firstRowLine)}
			}
			width = max(width, len(row))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, &ParseError{Line: start + 1, Err: ErrNoGrid}
	}

	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], 0)
		}
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	s.Rows = rows
	s.Undeclared = append([]string(nil), s.Symbols[declared:]...)
	return s, nil
}

func (s *Spec) parseAttributeLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	var attrs Attributes
	if err := json.Unmarshal([]byte(trimmed), &attrs); err != nil {
		return fmt.Errorf("attribute line: %w", err)
	}
	if attrs.Symbol == "" {
		var lw levelWide
		if err := json.Unmarshal([]byte(trimmed), &lw); err != nil {
			return fmt.Errorf("level attribute line: %w", err)
		}
		if lw.Backdrop != nil {
			s.Backdrop = *lw.Backdrop
		}
		return nil
	}
	switch {
	case attrs.Symbol == EmptySymbol:
		return fmt.Errorf("%w: %q", ErrReservedSymbol, attrs.Symbol)
	case utf8.RuneCountInString(attrs.Symbol) != 1:
		return fmt.Errorf("%w: %q", ErrSymbolLength, attrs.Symbol)
	}
	if id, ok := s.SymbolIDs[attrs.Symbol]; ok {
		s.Attributes[id] = &attrs
		return nil
	}
	s.register(attrs.Symbol, &attrs)
	return nil
}

func (s *Spec) register(sym string, attrs *Attributes) int {
	id := len(s.Symbols)
	s.SymbolIDs[sym] = id
	s.Symbols = append(s.Symbols, sym)
	if attrs.Symbol == "" && sym != EmptySymbol {
		attrs.Symbol = sym
	}
	s.Attributes = append(s.Attributes, attrs)
	return id
}

// SymbolID returns the numeric ID assigned to a symbol.
func (s *Spec) SymbolID(sym string) (int, bool) {
	id, ok := s.SymbolIDs[sym]
	return id, ok
}

// AttributesFor returns the record for a symbol ID, or nil.
func (s *Spec) AttributesFor(id int) *Attributes {
	if id < 0 || id >= len(s.Attributes) {
		return nil
	}
	return s.Attributes[id]
}

func (s *Spec) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

func (s *Spec) Height() int { return len(s.Rows) }

// splitLines splits on '\n' and truncates each line at its first '\r'.
func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		if j := strings.IndexByte(l, '\r'); j >= 0 {
			lines[i] = l[:j]
		}
	}
	return lines
}
