package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/littlehelpers/system"
	"golang.org/x/image/font/basicfont"
)

const (
	gameOverText     = "Your helper fell apart. Press jump to try again."
	gameCompleteText = "Every piece is home! Press jump to play again."
)

// StatusUI is the overlay panel with the goal counter, durability and the
// end-of-game banner.
type StatusUI struct {
	ui     *ebitenui.UI
	goals  *widget.Text
	health *widget.Text
	banner *widget.Text
}

func NewStatusUI() *StatusUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	label := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, white))
	}
	s := &StatusUI{goals: label(), health: label(), banner: label()}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(s.goals)
	panel.AddChild(s.health)
	panel.AddChild(s.banner)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	s.ui = &ebitenui.UI{Container: root}
	return s
}

// Refresh copies the scene status into the labels.
func (s *StatusUI) Refresh(scene *system.Scene) {
	s.goals.Label = scene.GoalText()
	s.health.Label = fmt.Sprintf("%s%.1f", system.HealthLabel, max(0, scene.Health()))
	switch {
	case scene.GameOver():
		s.banner.Label = gameOverText
	case scene.GameComplete():
		s.banner.Label = gameCompleteText
	default:
		s.banner.Label = ""
	}
}

func (s *StatusUI) Update() {
	s.ui.Update()
}

func (s *StatusUI) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
}
