package selftest

import "testing"

func TestGroupSweepTerminates(t *testing.T) {
	const groups = 6
	r := NewRunner(Plan{Kind: GroupSweep})
	rgb := make([]byte, groups*3)
	steps := 0
	for r.Step(groups, rgb) {
		steps++
		lit := 0
		for g := 0; g < groups; g++ {
			if rgb[g*3] == 255 {
				lit++
			}
		}
		if lit != 1 {
			t.Fatalf("step %d: %d groups lit", steps, lit)
		}
	}
	if steps != groups {
		t.Fatalf("sweep ran %d steps, want %d", steps, groups)
	}
}

func TestRGBChannels(t *testing.T) {
	r := NewRunner(Plan{Kind: RGBChannels})
	rgb := make([]byte, 4*3)
	for ch := 0; ch < 3; ch++ {
		if !r.Step(4, rgb) {
			t.Fatalf("ended early at channel %d", ch)
		}
		for g := 0; g < 4; g++ {
			if rgb[g*3+ch] != 255 {
				t.Fatalf("channel %d group %d not lit", ch, g)
			}
		}
	}
	if r.Step(4, rgb) {
		t.Fatal("expected completion after 3 channels")
	}
}

func TestBlendRampMonotonic(t *testing.T) {
	r := NewRunner(Plan{Kind: BlendRamp})
	rgb := make([]byte, 3)
	var last int = -1
	for r.Step(1, rgb) {
		if int(rgb[0]) < last {
			t.Fatalf("ramp decreased: %d -> %d", last, rgb[0])
		}
		last = int(rgb[0])
	}
	if last != 255 {
		t.Fatalf("ramp ended at %d", last)
	}
}

func TestUnknownKind(t *testing.T) {
	r := NewRunner(Plan{Kind: "bogus"})
	if r.Step(3, make([]byte, 9)) {
		t.Fatal("unknown kind should complete immediately")
	}
}
