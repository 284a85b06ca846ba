package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the display the loop renders into. CloseRequested is polled
// once per frame, after the frame has been presented.
type Surface interface {
	SetProjection(p Projection)
	Submit(f Frame)
	Present() error
	CloseRequested() bool
	Shutdown()
}

// Projection describes a symmetric perspective frustum. FOV is the vertical
// field of view in degrees.
type Projection struct {
	FOV    float32
	Near   float32
	Far    float32
	Aspect float32
}

// Matrix builds the frustum: top = tan(fov/2)*near and the horizontal
// extent scaled by the aspect ratio.
func (p Projection) Matrix() mgl32.Mat4 {
	top := float32(math.Tan(float64(mgl32.DegToRad(p.FOV))/2)) * p.Near
	right := p.Aspect * top
	return mgl32.Frustum(-right, right, -top, top, p.Near, p.Far)
}
