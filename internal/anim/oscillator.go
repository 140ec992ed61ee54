package anim

// Default oscillation band and decay ratio for the playback-speed
// multiplier.
const (
	DefaultFloor = 0.2
	DefaultCeil  = 2.5
	DefaultRatio = 99.0 / 100.0
)

// Advance produces the next time-scale value with the default band.
// The bound check runs against the PRE-update value and the multiplier
// uses the PRE-flip direction, so the scale overshoots the band by one
// multiplicative step before the next call walks it back. That overshoot
// is intended; there is no clamp.
func Advance(scale float64, shrinking bool) (float64, bool) {
	return Oscillator{}.Advance(scale, shrinking)
}

// Oscillator carries a configurable band/ratio. The zero value uses the
// defaults above.
type Oscillator struct {
	Floor float64
	Ceil  float64
	Ratio float64 // shrink multiplier in (0,1); growth is its reciprocal
}

// Advance applies one oscillation step. Pure; safe for any positive seed.
func (o Oscillator) Advance(scale float64, shrinking bool) (float64, bool) {
	floor, ceil, ratio := o.Floor, o.Ceil, o.Ratio
	if floor <= 0 {
		floor = DefaultFloor
	}
	if ceil <= 0 {
		ceil = DefaultCeil
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultRatio
	}
	flip := scale < floor || scale > ceil
	if shrinking {
		scale *= ratio
	} else {
		scale /= ratio
	}
	if flip {
		shrinking = !shrinking
	}
	return scale, shrinking
}
