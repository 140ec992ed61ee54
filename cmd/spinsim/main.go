package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
)

// sink prints a compact per-frame summary, useful for eyeballing the
// oscillator and palette rotation without any output hardware.
type sink struct {
	frames int
	cur    []byte
	next   []byte
	every  int
}

func (s *sink) UploadColors(current, next []byte) error {
	s.cur, s.next = current, next
	return nil
}

func (s *sink) Draw(elapsed float64) error {
	s.frames++
	if s.every > 0 && s.frames%s.every != 0 {
		return nil
	}
	frac := palette.BlendFraction(elapsed)
	fmt.Printf("[frame %04d] t=%6.2fs blend=%.2f g0 cur=(%d,%d,%d) next=(%d,%d,%d)\n",
		s.frames, elapsed, frac,
		s.cur[0], s.cur[1], s.cur[2],
		s.next[0], s.next[1], s.next[2])
	return nil
}

type statusPrinter struct{ last string }

func (p *statusPrinter) SetStatus(line string) { p.last = line }

func main() {
	var (
		meshName  = flag.String("mesh", "prism", "mesh variant: cube | prism")
		tableName = flag.String("table", "trio", "palette table: trio | hexad")
		fps       = flag.Int("fps", 60, "simulated frames per second")
		seconds   = flag.Float64("seconds", 12, "simulated wall-clock duration")
		every     = flag.Int("every", 30, "print every Nth frame")
	)
	flag.Parse()

	m, err := mesh.ByName(*meshName)
	if err != nil {
		log.Fatalf("mesh: %v", err)
	}
	table, err := palette.TableByName(*tableName)
	if err != nil {
		log.Fatalf("table: %v", err)
	}

	out := &sink{every: *every}
	status := &statusPrinter{}
	drv := anim.NewDriver(table, m.Groups, anim.Oscillator{}, out, status)

	// Synthetic clock: fixed dt, no sleeping.
	dt := time.Second / time.Duration(*fps)
	now := time.Unix(0, 0)
	frames := int(*seconds * float64(*fps))
	for i := 0; i <= frames; i++ {
		if err := drv.Step(now); err != nil {
			log.Fatalf("step: %v", err)
		}
		now = now.Add(dt)
	}

	st := drv.Snapshot()
	fmt.Printf("done: %d frames, %s, elapsed %.2fs (sim %.2fs wall)\n",
		out.frames, status.last, st.Elapsed, *seconds)
}
