package scene

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// HeadlessConfig controls the no-window surface.
type HeadlessConfig struct {
	Hz     int
	Frames uint64 // stop after N presents, 0 = run until ctx is done
}

// HeadlessSurface paces frames with a ticker instead of vsync and only keeps
// statistics about what it was asked to draw.
type HeadlessSurface struct {
	ctx    context.Context
	cfg    HeadlessConfig
	ticker *time.Ticker

	proj       Projection
	frames     uint64
	primitives uint64
	vertices   uint64
	lastAngle  float32
}

// NewHeadlessSurface returns a surface ticking at cfg.Hz (60 when unset).
func NewHeadlessSurface(ctx context.Context, cfg HeadlessConfig) (*HeadlessSurface, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	return &HeadlessSurface{ctx: ctx, cfg: cfg, ticker: time.NewTicker(d)}, nil
}

func (h *HeadlessSurface) SetProjection(p Projection) { h.proj = p }

func (h *HeadlessSurface) Submit(f Frame) {
	h.lastAngle = f.Angle
	for _, p := range f.Primitives {
		h.primitives++
		h.vertices += uint64(len(p.Vertices))
	}
}

// Present waits for the next tick, standing in for the display interval.
func (h *HeadlessSurface) Present() error {
	select {
	case <-h.ctx.Done():
	case <-h.ticker.C:
	}
	h.frames++
	return nil
}

func (h *HeadlessSurface) CloseRequested() bool {
	if h.ctx.Err() != nil {
		return true
	}
	return h.cfg.Frames > 0 && h.frames >= h.cfg.Frames
}

func (h *HeadlessSurface) Shutdown() {
	h.ticker.Stop()
	slog.Info("headless surface closed",
		"frames", humanize.Comma(int64(h.frames)),
		"primitives", humanize.Comma(int64(h.primitives)),
		"vertices", humanize.Comma(int64(h.vertices)),
		"angle", h.lastAngle,
	)
}

func (h *HeadlessSurface) Frames() uint64         { return h.frames }
func (h *HeadlessSurface) Primitives() uint64     { return h.primitives }
func (h *HeadlessSurface) Vertices() uint64       { return h.vertices }
func (h *HeadlessSurface) Projection() Projection { return h.proj }
