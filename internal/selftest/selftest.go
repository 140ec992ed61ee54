package selftest

// Kind names a built-in output check, runnable from /control while the
// normal palette animation is suspended.
type Kind string

const (
	None        Kind = ""
	GroupSweep  Kind = "group_sweep"
	RGBChannels Kind = "rgb_channels"
	BlendRamp   Kind = "blend_ramp"
)

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step fills one RGB triple per vertex-group; returns false when the
// pattern is complete.
func (r *Runner) Step(groups int, rgb []byte) bool {
	for i := range rgb {
		rgb[i] = 0
	}
	switch r.plan.Kind {
	case GroupSweep:
		// one white group at a time, in emission order
		g := r.step
		if g >= groups {
			return false
		}
		rgb[g*3+0], rgb[g*3+1], rgb[g*3+2] = 255, 255, 255
	case RGBChannels:
		if r.step >= 3 {
			return false
		}
		for g := 0; g < groups; g++ {
			rgb[g*3+r.step] = 255
		}
	case BlendRamp:
		// all groups ramp from black to white over 16 steps
		if r.step >= 16 {
			return false
		}
		v := byte(r.step * 255 / 15)
		for i := range rgb {
			rgb[i] = v
		}
	default:
		return false
	}
	r.step++
	return true
}
