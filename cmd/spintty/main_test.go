package main

import (
	"testing"
	"time"
)

func TestTickIntervalGuardsNonPositiveFPS(t *testing.T) {
	if got := tickInterval(30); got != time.Second/30 {
		t.Fatalf("fps=30: got %v", got)
	}
	for _, fps := range []int{0, -1} {
		if got := tickInterval(fps); got != time.Second/30 {
			t.Fatalf("fps=%d: got %v, want default interval", fps, got)
		}
	}
}
