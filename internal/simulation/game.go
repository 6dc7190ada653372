package simulation

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/ui"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// Game renders the world top-down (world X right, world Z down) and runs
// one World step per ebiten tick.
type Game struct {
	cfg   *Config
	log   zerolog.Logger
	world *World

	panel           *ui.Panel
	widgetMaxSpeed  *ui.Slider
	widgetMaxForce  *ui.Slider
	widgetMass      *ui.Slider
	widgetSmoothing *ui.Checkbox
	widgetWander    *ui.Checkbox
	widgetBounds    *ui.Checkbox

	clicked bool

	// Timing instrumentation (rolling averages in ms)
	updateAvg float64
	drawAvg   float64
}

func NewGame(cfg *Config, log zerolog.Logger) (*Game, error) {
	world, err := NewWorld(cfg, log)
	if err != nil {
		return nil, err
	}

	panel := ui.NewPanel(10, 10, 220, 300)
	panel.AddSection("Vehicle Limits")
	widgetMaxSpeed := panel.AddSlider("Max Speed", 5, 80, cfg.MaxSpeed)
	widgetMaxForce := panel.AddSlider("Max Force", 10, 200, cfg.MaxForce)
	widgetMass := panel.AddSlider("Mass", 0.2, 5, cfg.VehicleMass)
	panel.AddSection("Behavior")
	widgetSmoothing := panel.AddCheckbox("Smooth Heading", cfg.SmoothingOn)
	widgetWander := panel.AddCheckbox("Quarry Wanders", cfg.QuarryWanders)
	widgetBounds := panel.AddCheckbox("Show Bounds", false)

	return &Game{
		cfg:             cfg,
		log:             log,
		world:           world,
		panel:           panel,
		widgetMaxSpeed:  widgetMaxSpeed,
		widgetMaxForce:  widgetMaxForce,
		widgetMass:      widgetMass,
		widgetSmoothing: widgetSmoothing,
		widgetWander:    widgetWander,
		widgetBounds:    widgetBounds,
	}, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	g.cfg.QuarryWanders = g.widgetWander.Value
	for _, v := range g.world.Vehicles {
		v.MaxSpeed = g.widgetMaxSpeed.Value
		v.MaxForce = g.widgetMaxForce.Value
		v.Mass = g.widgetMass.Value
		v.SmoothingOn = g.widgetSmoothing.Value
	}

	if err := g.handleClick(); err != nil {
		return err
	}

	return g.world.Step(1.0 / float64(ebiten.TPS()))
}

// handleClick picks the scene under the cursor; the quarry is parked on
// the picked obstacle point, or on the bare ground when nothing is hit.
func (g *Game) handleClick() error {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.clicked = false
		return nil
	}
	if g.clicked {
		return nil
	}
	g.clicked = true

	mx, my := ebiten.CursorPosition()
	if float64(mx) < g.panel.X+g.panel.Width+10 && float64(my) < g.panel.Y+g.panel.Height+10 {
		return nil // panel interaction, not a scene click
	}

	x, z := g.screenToWorld(float64(mx), float64(my))
	hits, err := g.world.Pick(x, z)
	if err != nil {
		return err
	}
	if len(hits) > 0 {
		g.world.SetDestination(hits[0].Point)
	} else {
		g.world.SetDestination(mgl64.Vec3{x, 0, z})
	}
	return nil
}

func (g *Game) scale() float64 {
	return math.Min(g.cfg.WorldWidth, g.cfg.WorldHeight) / (2 * g.cfg.WorldExtent)
}

func (g *Game) worldToScreen(p mgl64.Vec3) (float64, float64) {
	s := g.scale()
	return g.cfg.WorldWidth/2 + p.X()*s, g.cfg.WorldHeight/2 + p.Z()*s
}

func (g *Game) screenToWorld(x, y float64) (float64, float64) {
	s := g.scale()
	return (x - g.cfg.WorldWidth/2) / s, (y - g.cfg.WorldHeight/2) / s
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	snap := g.world.Snapshot()

	g.drawObstacles(screen, snap)

	// Quarry marker
	qx, qy := g.worldToScreen(snap.Quarry)
	vector.StrokeCircle(screen, float32(qx), float32(qy), 6, 2,
		color.RGBA{R: 255, G: 220, B: 50, A: 255}, true)

	for i, v := range snap.Vehicles {
		clr := color.RGBA{R: 80, G: 180, B: 255, A: 255}
		if i == 0 {
			clr = color.RGBA{R: 255, G: 80, B: 80, A: 255} // the pursuer
		}
		g.drawVehicle(screen, v, clr)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

func (g *Game) drawObstacles(screen *ebiten.Image, snap Snapshot) {
	for _, bounds := range snap.Obstacles {
		x0, y0 := g.worldToScreen(bounds.Min)
		x1, y1 := g.worldToScreen(bounds.Max)

		vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
			color.RGBA{R: 70, G: 70, B: 80, A: 160}, true)
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
			1, color.RGBA{R: 140, G: 140, B: 150, A: 255}, true)
	}

	if g.widgetBounds.Value {
		for _, s := range snap.Spheres {
			cx, cy := g.worldToScreen(s.Center)
			vector.StrokeCircle(screen, float32(cx), float32(cy), float32(s.Radius*g.scale()),
				1, color.RGBA{R: 90, G: 200, B: 120, A: 200}, true)
		}
	}
}

// drawVehicle renders a vehicle as a triangle pointing along its heading,
// projected onto the ground plane.
func (g *Game) drawVehicle(screen *ebiten.Image, v VehicleState, clr color.RGBA) {
	x, y := g.worldToScreen(v.Pos)
	angle := math.Atan2(v.Forward.Z(), v.Forward.X())

	tipX := x + math.Cos(angle)*9
	tipY := y + math.Sin(angle)*9
	rightX := x + math.Cos(angle+2.5)*7
	rightY := y + math.Sin(angle+2.5)*7
	leftX := x + math.Cos(angle-2.5)*7
	leftY := y + math.Sin(angle-2.5)*7

	r := float32(clr.R) / 255
	gc := float32(clr.G) / 255
	b := float32(clr.B) / 255
	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gc, ColorB: b, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gc, ColorB: b, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gc, ColorB: b, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}
