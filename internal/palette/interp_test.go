package palette

import (
	"bytes"
	"testing"
)

func TestIndicesAtStart(t *testing.T) {
	// 3-entry table, 6 groups: current is g mod 3, next (g+1) mod 3.
	for g := 0; g < 6; g++ {
		cur, next := Indices(0.0, g, 3)
		if cur != g%3 || next != (g+1)%3 {
			t.Fatalf("g=%d: got (%d,%d), want (%d,%d)", g, cur, next, g%3, (g+1)%3)
		}
	}
}

func TestIndicesMidWindow(t *testing.T) {
	cur, next := Indices(1.5, 0, 3)
	if cur != 1 || next != 2 {
		t.Fatalf("t=1.5 g=0: got (%d,%d), want (1,2)", cur, next)
	}
}

func TestBuffersShape(t *testing.T) {
	cur, next := Trio.BuffersForTime(0.0, 6, nil, nil)
	if len(cur) != 6*3*4 || len(next) != len(cur) {
		t.Fatalf("buffer lengths: cur=%d next=%d", len(cur), len(next))
	}
	// each group's color replicated across its 3 vertices
	for g := 0; g < 6; g++ {
		off := g * VerticesPerGroup * 4
		v0 := cur[off : off+4]
		for v := 1; v < VerticesPerGroup; v++ {
			o := off + v*4
			if !bytes.Equal(v0, cur[o:o+4]) {
				t.Fatalf("group %d vertex %d differs from vertex 0", g, v)
			}
		}
	}
}

func TestBuffersPeriodicity(t *testing.T) {
	p := float64(Trio.Len())
	for _, base := range []float64{0.0, 0.25, 1.5, 2.99} {
		a, _ := Trio.BuffersForTime(base, 6, nil, nil)
		for k := 1; k <= 3; k++ {
			b, _ := Trio.BuffersForTime(base+float64(k)*p, 6, nil, nil)
			if !bytes.Equal(a, b) {
				t.Fatalf("current colors not %v-periodic at t=%v k=%d", p, base, k)
			}
		}
	}
}

func TestContinuityAtIntegerBoundaries(t *testing.T) {
	// next(t=k) must equal current(t=k+1) so a fade finishing at
	// fraction 1 lands exactly on the start of the next window.
	for k := 0; k < 8; k++ {
		_, nextAtK := Trio.BuffersForTime(float64(k), 12, nil, nil)
		curAtK1, _ := Trio.BuffersForTime(float64(k+1), 12, nil, nil)
		if !bytes.Equal(nextAtK, curAtK1) {
			t.Fatalf("discontinuity across boundary k=%d", k)
		}
	}
}

func TestNegativeTimeIsTotal(t *testing.T) {
	// Elapsed time never goes negative in practice, but the selection
	// arithmetic must stay well-defined for any input.
	cur, next := Indices(-0.5, 0, 3)
	if cur != 2 || next != 0 {
		t.Fatalf("t=-0.5 g=0: got (%d,%d), want (2,0)", cur, next)
	}
	for _, tt := range []float64{-0.5, -1.0, -3.25} {
		curBuf, nextBuf := Trio.BuffersForTime(tt, 6, nil, nil)
		if len(curBuf) != 6*3*4 || len(nextBuf) != len(curBuf) {
			t.Fatalf("t=%v: bad buffer lengths %d/%d", tt, len(curBuf), len(nextBuf))
		}
	}
	// continuity holds across negative boundaries too
	_, nextAtK := Trio.BuffersForTime(-2.0, 6, nil, nil)
	curAtK1, _ := Trio.BuffersForTime(-1.0, 6, nil, nil)
	if !bytes.Equal(nextAtK, curAtK1) {
		t.Fatal("discontinuity across boundary k=-2")
	}
}

func TestBlendFraction(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {0.25, 0.25}, {1.0, 0}, {2.75, 0.75},
	}
	for _, c := range cases {
		if got := BlendFraction(c.in); got != c.want {
			t.Fatalf("BlendFraction(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	cur := []byte{0, 100, 200, 255}
	next := []byte{255, 50, 100, 255}
	dst := make([]byte, 4)

	Blend(dst, cur, next, 0)
	if !bytes.Equal(dst, cur) {
		t.Fatalf("frac=0: got %v", dst)
	}
	Blend(dst, cur, next, 1)
	if !bytes.Equal(dst, next) {
		t.Fatalf("frac=1: got %v", dst)
	}
	Blend(dst, cur, next, 0.5)
	want := []byte{128, 75, 150, 255}
	if !bytes.Equal(dst, want) {
		t.Fatalf("frac=0.5: got %v want %v", dst, want)
	}
}

func TestBufferReuse(t *testing.T) {
	cur, next := Trio.BuffersForTime(0.5, 6, nil, nil)
	cur2, next2 := Trio.BuffersForTime(4.5, 6, cur, next)
	if &cur[0] != &cur2[0] || &next[0] != &next2[0] {
		t.Fatal("expected buffers to be reused")
	}
}
