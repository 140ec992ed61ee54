package main

import (
	"flag"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
)

const (
	screenW = 640
	screenH = 480
)

// viewSink buffers the latest frame for Draw. Ebiten calls Update and
// Draw from the same goroutine, but keep the tiny lock anyway since the
// engine treats the renderer as an external collaborator.
type viewSink struct {
	mu      sync.Mutex
	cur     []byte
	next    []byte
	blended []byte
	elapsed float64
	status  string
}

func (v *viewSink) UploadColors(current, next []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.cur) != len(current) {
		v.cur = make([]byte, len(current))
		v.next = make([]byte, len(next))
		v.blended = make([]byte, len(current))
	}
	copy(v.cur, current)
	copy(v.next, next)
	return nil
}

func (v *viewSink) Draw(elapsed float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.elapsed = elapsed
	palette.Blend(v.blended, v.cur, v.next, palette.BlendFraction(elapsed))
	return nil
}

func (v *viewSink) SetStatus(line string) {
	v.mu.Lock()
	v.status = line
	v.mu.Unlock()
}

type game struct {
	drv  *anim.Driver
	sink *viewSink
}

// Update is the host display-refresh callback: one engine step per
// ebiten tick.
func (g *game) Update() error {
	return g.drv.Step(time.Now())
}

func (g *game) Draw(screen *ebiten.Image) {
	g.sink.mu.Lock()
	blended := g.sink.blended
	status := g.sink.status
	g.sink.mu.Unlock()

	groups := len(blended) / (palette.VerticesPerGroup * 4)
	if groups == 0 {
		return
	}

	// swatch grid: one cell per vertex-group
	cols := 4
	rows := (groups + cols - 1) / cols
	cw := float32(screenW) / float32(cols)
	ch := float32(screenH-24) / float32(rows)
	for g0 := 0; g0 < groups; g0++ {
		o := g0 * palette.VerticesPerGroup * 4
		c := color.RGBA{blended[o], blended[o+1], blended[o+2], blended[o+3]}
		x := float32(g0%cols) * cw
		y := float32(g0/cols)*ch + 24
		vector.DrawFilledRect(screen, x+2, y+2, cw-4, ch-4, c, false)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	var (
		meshName  = flag.String("mesh", "cube", "mesh variant: cube | prism")
		tableName = flag.String("table", "trio", "palette table: trio | hexad")
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

	sink := &viewSink{}
	g := &game{
		drv:  anim.NewDriver(table, m.Groups, anim.Oscillator{}, sink, sink),
		sink: sink,
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("chromaspin")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
