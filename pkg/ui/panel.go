package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything the panel can lay out and drive.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
}

type sliderRow struct{ *Slider }

func (r sliderRow) Height() float64 { return r.H + 25 }

type checkboxRow struct{ *Checkbox }

func (r checkboxRow) Height() float64 { return r.Size + 9 }

type row struct {
	header string // non-empty for a section header row
	label  string
	widget Widget
}

// Panel stacks labeled widgets vertically inside a framed box. Widgets are
// positioned once at add time, so the panel does not scroll.
type Panel struct {
	X, Y          float64
	Width, Height float64

	rows    []row
	widgets []Widget
	cursorY float64
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{X: x, Y: y, Width: width, Height: height, cursorY: y + 30}
}

// AddSection inserts a section header above the widgets added after it.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{header: title})
	p.cursorY += 25
}

// AddSlider appends a labeled slider and returns it for value reads.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.cursorY+15, p.Width-20, label, min, max, value)
	p.addWidget(label, sliderRow{s})
	return s
}

// AddCheckbox appends a labeled checkbox and returns it for value reads.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.cursorY+15, label, value)
	p.addWidget(label, checkboxRow{c})
	return c
}

func (p *Panel) addWidget(label string, w Widget) {
	p.rows = append(p.rows, row{label: label, widget: w})
	p.widgets = append(p.widgets, w)
	p.cursorY += w.Height()
}

// Update forwards input handling to every widget.
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the frame, section headers, labels and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		2, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, "Controls", int(p.X+10), int(p.Y+5))

	y := p.Y + 30
	for _, r := range p.rows {
		if r.header != "" {
			vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, r.header, int(p.X+10), int(y+5))
			y += 25
			continue
		}
		ebitenutil.DebugPrintAt(screen, r.label, int(p.X+10), int(y))
		r.widget.Draw(screen)
		y += r.widget.Height()
	}
}
