// Package game is the desktop front end: an ebiten window that drives a
// scene.Loop, draws its frames and handles the few keys the demo knows.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/voxel-pyramid/internal/config"
	"github.com/iburimskiy/voxel-pyramid/internal/export"
	"github.com/iburimskiy/voxel-pyramid/internal/scene"
)

// Drone pitches: A2 and the fifth above it.
var droneFreqs = []float64{110, 165}

type game struct {
	cfg    config.Config
	loop   *scene.Loop
	render renderer

	width, height int

	// audio
	drone *drone
	ctrl  *beep.Ctrl

	// state
	closeRequested bool
	paused         bool
	lastErr        error
	lastExport     string
}

func newGame(cfg config.Config, loop *scene.Loop) *game {
	return &game{
		cfg:    cfg,
		loop:   loop,
		render: renderer{shade: cfg.Shade, proj: loop.Projection(cfg.Aspect())},
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Run opens the window and blocks until it is closed. The loop is started
// here if the caller has not done so.
func Run(cfg config.Config, loop *scene.Loop) error {
	if loop.State() == scene.Initializing {
		if err := loop.Start(); err != nil {
			return err
		}
	}

	g := newGame(cfg, loop)
	if cfg.Audio {
		g.drone = newDrone(beep.SampleRate(config.DroneSampleRate), droneFreqs...)
		ctrl, err := startDrone(g.drone)
		if err != nil {
			loop.Stop()
			return err
		}
		g.ctrl = ctrl
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title + " - Esc: quit, E: export, Space: mute")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	err := ebiten.RunGame(g)
	g.shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.closeRequested = true
	}
	if g.closeRequested {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.ctrl != nil {
		g.paused = togglePause(g.ctrl)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if err := g.exportDialog(); err != nil {
			g.lastErr = err
		}
	}

	if err := g.loop.Advance(); err != nil {
		return err
	}
	if g.drone != nil {
		g.drone.setLevel(float64(g.loop.Scene().Stars.MeanBrightness()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.loop.State() != scene.Running {
		return
	}
	screen.Fill(color.Black)

	g.render.proj = g.loop.Projection(float32(g.width) / float32(g.height))
	g.render.draw(screen, g.loop.Frame())

	g.drawStatus(screen)
}

func (g *game) drawStatus(screen *ebiten.Image) {
	sc := g.loop.Scene()
	elapsed := time.Duration(g.loop.FrameIndex()) * time.Second / time.Duration(ebiten.TPS())

	status := fmt.Sprintf("%s  voxels %d  stars %d  angle %5.1f  fps %4.1f",
		formatDuration(elapsed), sc.Voxels.Len(), sc.Stars.Len(), sc.Angle, ebiten.ActualFPS())
	if g.ctrl != nil && g.paused {
		status += "  [muted]"
	}
	if g.lastExport != "" {
		status += "  exported " + g.lastExport
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}

	panelWidth := float32(len(status)*6 + 16)
	r, gg, b := hsvToRgb(float64(sc.Angle), 0.5, 0.8)
	vector.DrawFilledRect(screen, 4, 4, panelWidth, 24, color.RGBA{R: 10, G: 12, B: 20, A: 180}, false)
	vector.StrokeRect(screen, 4, 4, panelWidth, 24, 1, color.RGBA{R: r, G: gg, B: b, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func (g *game) exportDialog() error {
	path, err := chooseExportPath()
	if err != nil || path == "" {
		return err
	}
	if err := export.WriteGLB(path, g.loop.Scene().Mesh); err != nil {
		return err
	}
	g.lastExport = path
	slog.Info("pyramid exported", "path", path)
	return nil
}

func (g *game) shutdown() {
	if g.ctrl != nil {
		stopDrone()
		g.ctrl = nil
	}
	g.loop.Stop()
}
