package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var hudTextColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// HUD is the on-screen overlay. It implements port.UI; the simulation only
// pushes events into it and never reads it back.
type HUD struct {
	ui *ebitenui.UI

	bar      *widget.ProgressBar
	barLabel *widget.Text
	held     *widget.Text
	prompt   *widget.Text
	status   *widget.Text

	barDuration float64
	barElapsed  float64
	barActive   bool
}

func NewHUD() *HUD {
	h := &HUD{}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	track := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x33, A: 200})
	fill := imageui.NewNineSliceColor(color.NRGBA{R: 0x9a, G: 0x7c, B: 0xff, A: 255})

	h.barLabel = widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
	h.bar = widget.NewProgressBar(
		widget.ProgressBarOpts.WidgetOpts(widget.WidgetOpts.MinSize(240, 12)),
		widget.ProgressBarOpts.Images(
			&widget.ProgressBarImage{Idle: track},
			&widget.ProgressBarImage{Idle: fill},
		),
		widget.ProgressBarOpts.Values(0, 100, 0),
	)
	h.held = widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
	h.prompt = widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
	h.status = widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))

	panel := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.status)
	panel.AddChild(h.held)
	panel.AddChild(h.prompt)
	panel.AddChild(h.barLabel)
	panel.AddChild(h.bar)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	h.ui = &ebitenui.UI{Container: root}

	h.ClearProgressBar()
	return h
}

func (h *HUD) ProgressBar(text string, duration float64) {
	h.barLabel.Label = text
	h.barDuration = duration
	h.barElapsed = 0
	h.barActive = true
	h.bar.SetCurrent(0)
	h.bar.GetWidget().Visibility = widget.Visibility_Show
	h.barLabel.GetWidget().Visibility = widget.Visibility_Show
}

func (h *HUD) ClearProgressBar() {
	h.barActive = false
	h.bar.SetCurrent(0)
	h.bar.GetWidget().Visibility = widget.Visibility_Hide
	h.barLabel.GetWidget().Visibility = widget.Visibility_Hide
}

func (h *HUD) ItemHold(name string, held bool) {
	switch {
	case name == "bindweed" && held:
		h.prompt.Label = "[E] climb"
	case name == "bindweed":
		h.prompt.Label = ""
	case held:
		h.held.Label = fmt.Sprintf("holding: %s", name)
	default:
		h.held.Label = ""
	}
}

// SetStatus replaces the status line.
func (h *HUD) SetStatus(s string) {
	h.status.Label = s
}

// Update advances the progress bar and the ebitenui widgets by dt seconds.
func (h *HUD) Update(dt float64) {
	if h.barActive && h.barDuration > 0 {
		h.barElapsed += dt
		pct := int(100 * h.barElapsed / h.barDuration)
		if pct > 100 {
			pct = 100
		}
		h.bar.SetCurrent(pct)
	}
	h.ui.Update()
}

func (h *HUD) UI() *ebitenui.UI {
	return h.ui
}
