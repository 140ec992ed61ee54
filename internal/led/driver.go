package led

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Driver abstracts an LED output sink. Write takes one blended RGB
// triple per pixel; len(rgb) must be 3*N.
type Driver interface {
	Write(rgb []byte) error
	Close() error
}

// Sim counts frames and logs a compact summary, useful headless.
type Sim struct {
	frames uint64
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Write(rgb []byte) error {
	s.frames++
	var sum float64
	for _, v := range rgb {
		sum += float64(v)
	}
	n := float64(len(rgb))
	if n == 0 {
		n = 1
	}
	log.Debug().Uint64("frame", s.frames).Float64("avg", sum/n).Msg("sim frame")
	return nil
}

func (s *Sim) Close() error { return nil }

// Frames reports how many frames were written.
func (s *Sim) Frames() uint64 { return s.frames }

// WhiteCap scales each pixel so r+g+b <= whiteCap*3*255. A value
// outside (0,1) disables the limiter. Never raises a channel.
func WhiteCap(rgb []byte, whiteCap float64) {
	if whiteCap <= 0 || whiteCap >= 1 {
		return
	}
	limit := whiteCap * 3.0 * 255.0
	for i := 0; i+2 < len(rgb); i += 3 {
		s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
		if s > limit && s > 0 {
			scale := limit / s
			rgb[i] = byte(math.Round(float64(rgb[i]) * scale))
			rgb[i+1] = byte(math.Round(float64(rgb[i+1]) * scale))
			rgb[i+2] = byte(math.Round(float64(rgb[i+2]) * scale))
		}
	}
}
