package main

import (
	"flag"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
)

// ttySink paints one colored block per vertex-group into the terminal.
type ttySink struct {
	mu      sync.Mutex
	screen  tcell.Screen
	cur     []byte
	next    []byte
	blended []byte
	status  string
}

func (s *ttySink) UploadColors(current, next []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cur) != len(current) {
		s.cur = make([]byte, len(current))
		s.next = make([]byte, len(next))
		s.blended = make([]byte, len(current))
	}
	copy(s.cur, current)
	copy(s.next, next)
	return nil
}

func (s *ttySink) Draw(elapsed float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	palette.Blend(s.blended, s.cur, s.next, palette.BlendFraction(elapsed))

	s.screen.Clear()
	groups := len(s.blended) / (palette.VerticesPerGroup * 4)
	w, _ := s.screen.Size()
	const cellW, cellH = 8, 4
	cols := w / cellW
	if cols < 1 {
		cols = 1
	}
	for g := 0; g < groups; g++ {
		o := g * palette.VerticesPerGroup * 4
		st := tcell.StyleDefault.Background(tcell.NewRGBColor(
			int32(s.blended[o]), int32(s.blended[o+1]), int32(s.blended[o+2])))
		x0 := (g % cols) * cellW
		y0 := (g/cols)*cellH + 1
		for y := y0; y < y0+cellH-1; y++ {
			for x := x0; x < x0+cellW-1; x++ {
				s.screen.SetContent(x, y, ' ', nil, st)
			}
		}
	}
	for i, r := range s.status {
		s.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	s.screen.Show()
	return nil
}

func (s *ttySink) SetStatus(line string) {
	s.mu.Lock()
	s.status = line
	s.mu.Unlock()
}

// tickInterval guards non-positive fps the same way Driver.Run does.
func tickInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

func main() {
	var (
		meshName  = flag.String("mesh", "prism", "mesh variant: cube | prism")
		tableName = flag.String("table", "trio", "palette table: trio | hexad")
		fps       = flag.Int("fps", 30, "target frames per second")
	)
	flag.Parse()

	m, err := mesh.ByName(*meshName)
	if err != nil {
		log.Fatal(err)
	}
	table, err := palette.TableByName(*tableName)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	sink := &ttySink{screen: screen}
	drv := anim.NewDriver(table, m.Groups, anim.Oscillator{}, sink, sink)

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	tick := time.NewTicker(tickInterval(*fps))
	defer tick.Stop()
	for {
		select {
		case <-quit:
			return
		case now := <-tick.C:
			if err := drv.Step(now); err != nil {
				screen.Fini()
				log.Fatal(err)
			}
		}
	}
}
