package anim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
)

// Renderer abstracts the output surface. UploadColors rewrites the two
// per-vertex attribute streams; Draw submits the frame with the raw
// elapsed time (the blend fraction is derived downstream).
type Renderer interface {
	UploadColors(current, next []byte) error
	Draw(elapsed float64) error
}

// StatusSink receives the optional per-frame status line. Best-effort:
// a nil sink is skipped and never affects the frame path.
type StatusSink interface {
	SetStatus(line string)
}

// State is the per-frame mutable counter set. It lives in the Driver
// rather than in closures so ownership is explicit: the stepping
// goroutine is the only writer.
type State struct {
	Elapsed   float64 // accumulated simulation seconds, never negative
	Scale     float64 // playback-speed multiplier, always positive
	Shrinking bool
}

// Driver owns elapsed-time accumulation and drives one frame per Step.
// Construct with NewDriver; the zero value is not usable.
type Driver struct {
	mu     sync.Mutex
	table  palette.Table
	groups int

	osc    Oscillator
	r      Renderer
	status StatusSink

	running bool
	last    time.Time
	st      State

	// reused frame buffers
	cur, next []byte
}

// NewDriver wires a driver to its renderer. status may be nil.
func NewDriver(table palette.Table, groups int, osc Oscillator, r Renderer, status StatusSink) *Driver {
	return &Driver{
		table:  table,
		groups: groups,
		osc:    osc,
		r:      r,
		status: status,
		st:     State{Scale: 1.0, Shrinking: true},
	}
}

// SetTable swaps the palette table for subsequent frames.
func (d *Driver) SetTable(t palette.Table) {
	d.mu.Lock()
	d.table = t
	d.mu.Unlock()
}

// SetGroups changes the vertex-group count (mesh variant swap).
func (d *Driver) SetGroups(groups int) {
	d.mu.Lock()
	d.groups = groups
	d.mu.Unlock()
}

// Snapshot returns the current frame counters.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st
}

// Step runs one frame at the given wall-clock instant. The first call
// records the start time and renders the t=0 frame; each later call
// accumulates dt scaled by the current time scale, then advances the
// oscillator.
func (d *Driver) Step(now time.Time) error {
	d.mu.Lock()
	if !d.running {
		d.running = true
		d.last = now
		d.st.Elapsed = 0
	} else {
		dt := now.Sub(d.last).Seconds()
		d.last = now
		d.st.Elapsed += dt * d.st.Scale
		d.st.Scale, d.st.Shrinking = d.osc.Advance(d.st.Scale, d.st.Shrinking)
	}
	st := d.st
	d.cur, d.next = d.table.BuffersForTime(st.Elapsed, d.groups, d.cur, d.next)
	cur, next := d.cur, d.next
	status := d.status
	r := d.r
	d.mu.Unlock()

	if err := r.UploadColors(cur, next); err != nil {
		return fmt.Errorf("upload colors: %w", err)
	}
	if err := r.Draw(st.Elapsed); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if status != nil {
		status.SetStatus(fmt.Sprintf("scale: %.2f  t: %.2fs", st.Scale, st.Elapsed))
	}
	return nil
}

// Run steps frames from a ticker until ctx is done. Cooperative: the
// next frame is only scheduled after the current one completes.
func (d *Driver) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			if err := d.Step(now); err != nil {
				return err
			}
		}
	}
}
