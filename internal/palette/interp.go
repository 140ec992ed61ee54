package palette

import "math"

// VerticesPerGroup is the triangle pattern: every vertex-group owns 3
// vertices that always share one palette assignment.
const VerticesPerGroup = 3

// Indices returns the current/next palette indices for vertex-group g at
// elapsed time t. The current palette rotates one step per whole second,
// offset by the group ordinal; next is always one rotation ahead, so a
// frame blended at fraction 1 matches the start of the following window.
// Elapsed time is non-negative by construction, but the arithmetic stays
// total for any input, negative times included.
func Indices(t float64, g, p int) (cur, next int) {
	base := int(math.Floor(t)) + g
	return mod(base, p), mod(base+1, p)
}

// mod is the floored modulo, non-negative for any x.
func mod(x, p int) int {
	m := x % p
	if m < 0 {
		m += p
	}
	return m
}

// BuffersForTime fills two flat RGBA byte streams, one quadruple per
// vertex, for the given group count: the colors each group shows now and
// the colors it is fading toward. The blend itself happens downstream
// (shading stage or Blend) at BlendFraction(t).
//
// dst slices are allocated when nil or mis-sized, so callers can reuse
// frame buffers across calls.
func (t Table) BuffersForTime(elapsed float64, groups int, cur, next []byte) (curOut, nextOut []byte) {
	n := groups * VerticesPerGroup * 4
	if len(cur) != n {
		cur = make([]byte, n)
	}
	if len(next) != n {
		next = make([]byte, n)
	}
	p := t.Len()
	for g := 0; g < groups; g++ {
		ci, ni := Indices(elapsed, g, p)
		cc := t[ci].ColorAt(g)
		nc := t[ni].ColorAt(g)
		off := g * VerticesPerGroup * 4
		for v := 0; v < VerticesPerGroup; v++ {
			o := off + v*4
			cur[o+0], cur[o+1], cur[o+2], cur[o+3] = cc.R, cc.G, cc.B, cc.A
			next[o+0], next[o+1], next[o+2], next[o+3] = nc.R, nc.G, nc.B, nc.A
		}
	}
	return cur, next
}

// BlendFraction is the fractional part of elapsed time, consumed by the
// blending stage.
func BlendFraction(t float64) float64 {
	return t - math.Floor(t)
}

// Blend mixes two color streams into dst for sinks without a shading
// stage. frac 0 reproduces cur exactly, 1 reproduces next.
func Blend(dst, cur, next []byte, frac float64) {
	if frac <= 0 {
		copy(dst, cur)
		return
	}
	if frac >= 1 {
		copy(dst, next)
		return
	}
	cf := 1.0 - frac
	for i := range dst {
		dst[i] = byte(math.Round(float64(cur[i])*cf + float64(next[i])*frac))
	}
}
