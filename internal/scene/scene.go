// Package scene owns the per-frame state of the demo and drives it through
// its lifecycle: build once, then rotate and animate every frame until the
// display asks to close.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/voxel-pyramid/internal/config"
	"github.com/iburimskiy/voxel-pyramid/internal/pyramid"
	"github.com/iburimskiy/voxel-pyramid/internal/starfield"
	"github.com/iburimskiy/voxel-pyramid/internal/tessellate"
)

// State is the lifecycle stage of a Loop.
type State int

const (
	Initializing State = iota
	Running
	Terminating
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrNotRunning is returned when a frame operation is attempted outside the
// Running state.
var ErrNotRunning = errors.New("scene: loop is not running")

// SceneState is everything a frame is built from. The voxel set and mesh are
// fixed after Start; stars and angle change every frame.
type SceneState struct {
	Voxels pyramid.VoxelSet
	Mesh   []tessellate.Primitive
	Stars  *starfield.Field
	Angle  float32
}

// Frame is the draw list handed to a Surface.
type Frame struct {
	Index      uint64
	Angle      float32
	View       mgl32.Mat4
	Primitives []tessellate.Primitive
}

// Loop drives a SceneState. It is not safe for concurrent use; one goroutine
// owns it for the program's lifetime.
type Loop struct {
	cfg   config.Config
	src   starfield.Source
	mode  tessellate.Mode
	vari  starfield.Variant
	state State
	scene SceneState
	frame uint64
}

// New validates cfg and returns a Loop in the Initializing state.
func New(cfg config.Config, src starfield.Source) (*Loop, error) {
	mode, err := tessellate.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	vari, err := starfield.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = starfield.NewSource(cfg.Seed)
	}
	return &Loop{cfg: cfg, src: src, mode: mode, vari: vari}, nil
}

// Start builds the pyramid, tessellates it once and spawns the stars.
func (l *Loop) Start() error {
	if l.state != Initializing {
		return fmt.Errorf("scene: start in state %v", l.state)
	}

	voxels := pyramid.Build(l.cfg.BaseSize)
	tess := tessellate.Tessellator{Mode: l.mode, Slices: l.cfg.Slices, Stacks: l.cfg.Stacks}
	mesh := make([]tessellate.Primitive, 0, voxels.Len())
	for i := 0; i < voxels.Len(); i++ {
		p := voxels.At(i)
		mesh = append(mesh, tess.Voxel(voxels.Place(p, l.cfg.VoxelSize), l.cfg.VoxelSize, voxels.Gradient(p))...)
	}

	l.scene = SceneState{
		Voxels: voxels,
		Mesh:   mesh,
		Stars:  starfield.New(l.cfg.Stars, l.vari, l.src),
	}
	l.state = Running

	slog.Info("scene started",
		"base", voxels.BaseSize(),
		"height", voxels.Height(),
		"voxels", voxels.Len(),
		"fingerprint", fmt.Sprintf("%016x", voxels.Fingerprint()),
		"mode", l.mode,
		"primitives", len(mesh),
		"stars", l.scene.Stars.Len(),
		"variant", l.scene.Stars.Variant(),
	)
	return nil
}

func (l *Loop) State() State { return l.state }

// FrameIndex is the number of frames advanced since Start.
func (l *Loop) FrameIndex() uint64 { return l.frame }

// Scene exposes the current state for reading.
func (l *Loop) Scene() *SceneState { return &l.scene }

// Projection is the viewport projection for the configured camera.
func (l *Loop) Projection(aspect float32) Projection {
	return Projection{FOV: l.cfg.FOV, Near: l.cfg.Near, Far: l.cfg.Far, Aspect: aspect}
}

// View is the camera transform: push the scene back, then spin it about Y.
func (l *Loop) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -l.cfg.CameraDistance).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(l.scene.Angle)))
}

// Frame assembles the current draw list: the pyramid, then the stars. It
// does not advance the scene.
func (l *Loop) Frame() Frame {
	prims := make([]tessellate.Primitive, 0, len(l.scene.Mesh)+l.starCount())
	prims = append(prims, l.scene.Mesh...)
	if l.scene.Stars != nil {
		prims = append(prims, l.scene.Stars.Primitives(l.cfg.ColorDrift)...)
	}
	return Frame{
		Index:      l.frame,
		Angle:      l.scene.Angle,
		View:       l.View(),
		Primitives: prims,
	}
}

func (l *Loop) starCount() int {
	if l.scene.Stars == nil {
		return 0
	}
	return l.scene.Stars.Len()
}

// Advance moves the scene to the next frame: rotate, then update every star.
func (l *Loop) Advance() error {
	if l.state != Running {
		return ErrNotRunning
	}
	l.scene.Angle = WrapAngle(l.scene.Angle + l.cfg.RotationStep)
	l.scene.Stars.Update()
	l.frame++
	return nil
}

// Stop releases the scene. It is safe to call more than once.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}
	l.state = Terminating
	frames := l.frame
	l.scene = SceneState{}
	l.state = Stopped
	slog.Info("scene stopped", "frames", frames)
}

// Run drives the loop against a polling surface until it requests close or
// ctx is done. The frame in which either is observed is completed first.
func (l *Loop) Run(ctx context.Context, s Surface) error {
	if l.state == Initializing {
		if err := l.Start(); err != nil {
			return err
		}
	}
	defer func() {
		s.Shutdown()
		l.Stop()
	}()

	s.SetProjection(l.Projection(l.cfg.Aspect()))
	for {
		s.Submit(l.Frame())
		if err := s.Present(); err != nil {
			return fmt.Errorf("present frame %d: %w", l.frame, err)
		}
		if err := l.Advance(); err != nil {
			return err
		}

		if s.CloseRequested() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// WrapAngle folds a in degrees into [0, 360).
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}
