package config

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Voxel Pyramid"

	// Projection
	FieldOfView    = 90.0 // degrees
	ZNear          = 0.1
	ZFar           = 100.0
	CameraDistance = 5.0

	// Pyramid parameters
	BaseSize       = 5
	VoxelSize      = 0.4
	SphereSlices   = 16
	SphereStacks   = 16
	RotationStep   = 0.5 // degrees per frame
	DefaultMode    = "sphere"
	DefaultVariant = "pulse"

	// Star field parameters
	StarCount       = 100
	StarBound       = 10.0
	StarDrift       = 0.005
	TwinkleStep     = 0.025
	MinBrightness   = 0.1
	MaxBrightness   = 1.0
	MinStarSize     = 1.0
	MaxStarSize     = 3.0
	MinPulsation    = 0.1
	MaxPulsation    = 0.3
	ColorDriftScale = 0.02

	// Headless runner
	HeadlessHz = 60

	// Audio
	DroneSampleRate = 44100
	SmoothingFactor = 0.9
)

// Config is the run-time selection among the constants above. Flags in main
// only choose between compiled-in behaviours; nothing is read from disk.
type Config struct {
	Width, Height int
	Title         string

	FOV, Near, Far float32
	CameraDistance float32

	BaseSize     int
	VoxelSize    float32
	Mode         string
	Slices       int
	Stacks       int
	RotationStep float32

	Stars      int
	Variant    string
	ColorDrift float32
	Seed       uint64

	Shade bool
	Audio bool

	Headless bool
	Hz       int
	Frames   uint64

	ExportPath string
}

// Default returns the configuration the demo ships with.
func Default() Config {
	return Config{
		Width:          WindowWidth,
		Height:         WindowHeight,
		Title:          WindowTitle,
		FOV:            FieldOfView,
		Near:           ZNear,
		Far:            ZFar,
		CameraDistance: CameraDistance,
		BaseSize:       BaseSize,
		VoxelSize:      VoxelSize,
		Mode:           DefaultMode,
		Slices:         SphereSlices,
		Stacks:         SphereStacks,
		RotationStep:   RotationStep,
		Stars:          StarCount,
		Variant:        DefaultVariant,
		Hz:             HeadlessHz,
	}
}

// Aspect is the initial viewport aspect ratio.
func (c Config) Aspect() float32 {
	if c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}
