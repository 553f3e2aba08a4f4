package levels

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const attributeHeader = `{ "tileSymbol": "X", "contactDamage": 0, "textureFile": "GrayTile.png" }
{ "tileSymbol": "F", "contactDamage": 10, "textureFile": "FireTile.png" }
@@@:::@@@
`

func wideRow(n int) string { return strings.Repeat("X", n) }

// legacyGrid mirrors the ragged fixture used by the old tooling: a wide
// floor and ceiling with short rows in between.
func legacyGrid() string {
	rows := []string{
		wideRow(164),
		"X", "X",
		"X                        FF",
		"X                       OOO       ZZZZ",
	}
	for i := 0; i < 12; i++ {
		rows = append(rows, "X")
	}
	rows = append(rows,
		"X                FFF",
		"X             XXXXXX",
		"X",
		"X           XXXX",
		"X",
		"X      XXX",
		"X",
		wideRow(164),
	)
	return strings.Join(rows, "\n") + "\n"
}

func TestParseAttributes(t *testing.T) {
	spec, err := ParseWithOptions([]byte(attributeHeader+legacyGrid()), ParseOptions{PadRaggedRows: true})
	require.NoError(t, err)

	x, ok := spec.SymbolID("X")
	require.True(t, ok)
	f, ok := spec.SymbolID("F")
	require.True(t, ok)
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, f)

	dx, ok := spec.AttributesFor(x).Damage()
	require.True(t, ok)
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, "GrayTile.png", spec.AttributesFor(x).TextureFile)

	df, _ := spec.AttributesFor(f).Damage()
	assert.Equal(t, 10.0, df)
	assert.Equal(t, "FireTile.png", spec.AttributesFor(f).TextureFile)
}

func TestParseSpatialData(t *testing.T) {
	spec, err := ParseWithOptions([]byte(attributeHeader+legacyGrid()), ParseOptions{PadRaggedRows: true})
	require.NoError(t, err)

	// Four distinct symbols plus empty space.
	assert.Len(t, spec.SymbolIDs, 5)
	assert.Equal(t, 25, spec.Height())
	assert.Equal(t, 164, spec.Width())
	assert.Equal(t, []string{"O", "Z"}, spec.Undeclared)

	empty, _ := spec.SymbolID(EmptySymbol)
	assert.Equal(t, 0, empty)
	assert.True(t, spec.AttributesFor(empty).IsEmpty())
	assert.False(t, spec.AttributesFor(spec.SymbolIDs["O"]).IsEmpty())
	assert.Equal(t, "O", spec.AttributesFor(spec.SymbolIDs["O"]).Symbol)

	// Rows are stored bottom-up; row 2 from the bottom is "X      XXX".
	row := spec.Rows[2]
	assert.Equal(t, spec.SymbolIDs["X"], row[0])
	assert.Equal(t, 0, row[1])
	assert.Equal(t, spec.SymbolIDs["X"], row[7])
	assert.Equal(t, 0, row[10])
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		opts ParseOptions
		want error
	}{
		{"no_sentinel", "{\"tileSymbol\":\"X\"}\nXXX\n", ParseOptions{}, ErrNoSentinel},
		{"sentinel_first", "@@@:::@@@\nXXX\n", ParseOptions{}, ErrSentinelFirstLine},
		{"ragged", attributeHeader + "XXX\nX\n", ParseOptions{}, ErrRaggedRow},
		{"undeclared", attributeHeader + "XQX\n", ParseOptions{RejectUndeclared: true}, ErrUndeclaredSymbol},
		{"no_grid", attributeHeader + "\n\n", ParseOptions{}, ErrNoGrid},
		{"bad_json", "{not json}\n@@@:::@@@\nX\n", ParseOptions{}, nil},
		{"space_redeclared", "{\"tileSymbol\":\" \",\"frictionCoefficient\":0.5}\n{\"tileSymbol\":\"X\"}\n@@@:::@@@\nX X\nXXX\n", ParseOptions{}, ErrReservedSymbol},
		{"multi_char_symbol", "{\"tileSymbol\":\"XY\"}\n@@@:::@@@\nXY\n", ParseOptions{}, ErrSymbolLength},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseWithOptions([]byte(c.data), c.opts)
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			if c.want != nil {
				assert.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestEmptySymbolStaysEmpty(t *testing.T) {
	_, err := Parse([]byte("{\"tileSymbol\":\"X\"}\n{\"tileSymbol\":\" \"}\n@@@:::@@@\nX X\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.ErrorIs(t, err, ErrReservedSymbol)

	spec, err := Parse([]byte(attributeHeader + "X X\nXXX\n"))
	require.NoError(t, err)
	assert.True(t, spec.AttributesFor(0).IsEmpty())
	assert.Equal(t, 0, spec.Rows[1][1])
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse([]byte(attributeHeader + "XXX\nXXX\nXX\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 6, pe.Line)
}

func TestParseLineEndingsAndBackdrop(t *testing.T) {
	data := "{\"builtInBackdrop\": \"BuiltInBackdrop_WinterSky\"}\r\n" +
		"{\"tileSymbol\": \"I\", \"frictionCoefficient\": 0.08}\r\n" +
		"@@@:::@@@\r\n" +
		"I  I\r\n" +
		"\r\n" +
		"IIII\r\n"
	spec, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "BuiltInBackdrop_WinterSky", spec.Backdrop)
	assert.Equal(t, 2, spec.Height())
	assert.Equal(t, 4, spec.Width())
	assert.Empty(t, spec.Undeclared)

	ice := spec.AttributesFor(spec.SymbolIDs["I"])
	assert.Equal(t, 0.08, ice.FrictionOr(1))
	var none *Attributes
	assert.Equal(t, 1.0, none.FrictionOr(1))
	assert.True(t, none.IsEmpty())
}

func TestEmbeddedLevelsParse(t *testing.T) {
	for _, key := range Keys() {
		t.Run(key, func(t *testing.T) {
			spec, err := LoadSpec(key, ParseOptions{RejectUndeclared: true})
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Backdrop)

			goals := 0
			for _, row := range spec.Rows {
				for _, id := range row {
					if spec.AttributesFor(id).ElementType == ElementGoal {
						goals++
					}
				}
			}
			assert.Greater(t, goals, 0)
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, Count)
	assert.Equal(t, "LittleHelpersLevel1", keys[0])
	assert.Equal(t, "LittleHelpersLevel10", keys[9])
	assert.Equal(t, "LittleHelpersLevel3.ssls", cleanLevelPath("levels/LittleHelpersLevel3"))
}
