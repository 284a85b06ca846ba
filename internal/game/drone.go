package game

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/voxel-pyramid/internal/config"
)

const droneVolume = 0.2

// drone is an endless beep.Streamer playing a soft chord. Its loudness
// follows a level set from the render loop, smoothed once per buffer so the
// speaker goroutine never sees a step.
type drone struct {
	sampleRate beep.SampleRate
	freqs      []float64
	phase      []float64
	gain       float64

	mu     sync.RWMutex
	target float64
}

func newDrone(sr beep.SampleRate, freqs ...float64) *drone {
	return &drone{
		sampleRate: sr,
		freqs:      freqs,
		phase:      make([]float64, len(freqs)),
	}
}

func (d *drone) Stream(samples [][2]float64) (int, bool) {
	d.mu.RLock()
	target := d.target
	d.mu.RUnlock()

	from := d.gain
	to := config.SmoothingFactor*d.gain + (1-config.SmoothingFactor)*target
	n := len(samples)
	for i := range samples {
		g := from + (to-from)*float64(i+1)/float64(n)
		var v float64
		for k, f := range d.freqs {
			v += math.Sin(d.phase[k])
			d.phase[k] += 2 * math.Pi * f / float64(d.sampleRate)
			if d.phase[k] >= 2*math.Pi {
				d.phase[k] -= 2 * math.Pi
			}
		}
		if len(d.freqs) > 0 {
			v /= float64(len(d.freqs))
		}
		v *= g * droneVolume
		samples[i][0], samples[i][1] = v, v
	}
	d.gain = to
	return n, true
}

func (d *drone) Err() error { return nil }

// setLevel sets the loudness the drone glides towards, in [0,1].
func (d *drone) setLevel(v float64) {
	d.mu.Lock()
	d.target = clamp01(v)
	d.mu.Unlock()
}

// startDrone opens the speaker and plays d behind a pausable control.
func startDrone(d *drone) (*beep.Ctrl, error) {
	bufferSize := d.sampleRate.N(time.Second / 20)
	if err := speaker.Init(d.sampleRate, bufferSize); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	ctrl := &beep.Ctrl{Streamer: d, Paused: false}
	speaker.Play(ctrl)
	return ctrl, nil
}

func togglePause(ctrl *beep.Ctrl) bool {
	speaker.Lock()
	defer speaker.Unlock()
	ctrl.Paused = !ctrl.Paused
	return ctrl.Paused
}

func stopDrone() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}
