package main

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/supershekhar/gravitylab/scene"
)

// gravityField ties one text input to one scene so programmatic gravity
// changes (script, config reload) can be mirrored back into the widget
// without re-triggering the changed handler.
type gravityField struct {
	input    *widget.TextInput
	sc       *scene.Scene
	suppress *bool
}

func (f gravityField) refresh() {
	if f.input == nil || f.sc == nil {
		return
	}
	*f.suppress = true
	f.input.SetText(formatGravity(f.sc.Gravity()))
	*f.suppress = false
}

// parseGravity extracts a gravity magnitude from user input. Anything
// unparsable is rejected; there is no further validation.
func parseGravity(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatGravity(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}

// newGravityHUD builds a strip of labeled gravity inputs, one column
// per scene, stretched so each column sits over its viewport.
func newGravityHUD(scenes []*scene.Scene) (*ebitenui.UI, []gravityField) {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	stretch := make([]bool, len(scenes))
	for i := range stretch {
		stretch[i] = true
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(len(scenes)),
			widget.GridLayoutOpts.Stretch(stretch, []bool{false}),
			widget.GridLayoutOpts.Spacing(0, 0),
		)),
	)

	fields := make([]gravityField, 0, len(scenes))
	for _, sc := range scenes {
		cell := widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 160})),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(2),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 10, Right: 10}),
			)),
		)

		cell.AddChild(widget.NewText(
			widget.TextOpts.Text(sc.Name()+" gravity (m/s^2)", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		))

		suppress := new(bool)
		target := sc
		input := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(110, 24)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}),
				Disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
			widget.TextInputOpts.Face(&face),
			widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
				if *suppress {
					return
				}
				if g, ok := parseGravity(args.InputText); ok {
					target.SetGravity(g)
				}
			}),
		)
		cell.AddChild(input)
		root.AddChild(cell)

		f := gravityField{input: input, sc: sc, suppress: suppress}
		f.refresh()
		fields = append(fields, f)
	}

	return &ebitenui.UI{Container: root}, fields
}
