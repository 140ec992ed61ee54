package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/config"
	diag "github.com/coreman2200/funtimes-chromaspin/internal/diagnostics"
	"github.com/coreman2200/funtimes-chromaspin/internal/led"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
	"github.com/coreman2200/funtimes-chromaspin/internal/selftest"
)

// State is the hub between the frame driver and the outside world: it
// receives each frame's color streams, fans them out to websocket
// viewers and the LED strip, and applies /control changes back onto the
// driver. It implements anim.Renderer and anim.StatusSink.
type State struct {
	mu         sync.RWMutex
	FPS        int
	Mesh       mesh.Mesh
	TableName  string
	Brightness float64

	ConfigPath    string
	CurrentDriver string
	Strip         led.Driver
	// StripPixels fixes the strip frame size when the hardware has a
	// set LED count; 0 means the strip takes whatever the mesh emits.
	StripPixels int

	drv *anim.Driver

	cur, next []byte
	blended   []byte
	status    string

	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	testRunner *selftest.Runner
}

func NewState(m mesh.Mesh, tableName string, fps int, brightness float64) *State {
	return &State{
		FPS:         fps,
		Mesh:        m,
		TableName:   tableName,
		Brightness:  brightness,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
}

// Attach gives the hub a handle to the frame driver so /control can swap
// tables and meshes at runtime.
func (s *State) Attach(d *anim.Driver) {
	s.mu.Lock()
	s.drv = d
	s.mu.Unlock()
}

// UploadColors stores the two per-vertex attribute streams for the
// frame about to be drawn.
func (s *State) UploadColors(current, next []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cur) != len(current) {
		s.cur = make([]byte, len(current))
		s.next = make([]byte, len(next))
	}
	copy(s.cur, current)
	copy(s.next, next)
	return nil
}

// Draw blends for the CPU-side sinks, pushes the strip frame, and
// broadcasts the raw streams plus blend fraction to viewers (which blend
// on their end, like a shading stage would).
func (s *State) Draw(elapsed float64) error {
	s.mu.Lock()
	frac := palette.BlendFraction(elapsed)
	if len(s.blended) != len(s.cur) {
		s.blended = make([]byte, len(s.cur))
	}
	palette.Blend(s.blended, s.cur, s.next, frac)

	// one LED per vertex-group: first vertex of each group
	groups := len(s.blended) / (palette.VerticesPerGroup * 4)
	rgb := make([]byte, groups*3)
	fromTest := false
	if s.testRunner != nil {
		if s.testRunner.Step(groups, rgb) {
			fromTest = true
		} else {
			s.testRunner = nil
			s.pushDiagLocked(diag.Diagnostic{Severity: diag.Info, Code: diag.CodeTestDone, Summary: "Self-test complete"})
		}
	}
	if !fromTest {
		for g := 0; g < groups; g++ {
			o := g * palette.VerticesPerGroup * 4
			rgb[g*3+0] = scaleByte(s.blended[o+0], s.Brightness)
			rgb[g*3+1] = scaleByte(s.blended[o+1], s.Brightness)
			rgb[g*3+2] = scaleByte(s.blended[o+2], s.Brightness)
		}
	}
	led.WhiteCap(rgb, 0.85)

	// the LED count is fixed at startup; a mesh swap must not change
	// the frame size the strip sees
	if s.StripPixels > 0 && groups != s.StripPixels {
		fixed := make([]byte, s.StripPixels*3)
		copy(fixed, rgb)
		rgb = fixed
	}

	s.frameID++
	payload := frame{
		T:       time.Now().UnixNano(),
		FrameID: s.frameID,
		Elapsed: elapsed,
		Blend:   frac,
		Current: append([]byte{}, s.cur...),
		Next:    append([]byte{}, s.next...),
		Status:  s.status,
	}
	if s.drv != nil {
		payload.Scale = s.drv.Snapshot().Scale
	}
	strip := s.Strip
	s.mu.Unlock()

	if strip != nil {
		if err := strip.Write(rgb); err != nil {
			log.Debug().Err(err).Msg("strip write")
		}
	}
	s.broadcastFrame(payload)
	return nil
}

// SetStatus stores the two-field status line; viewers receive it with
// the next frame. Best-effort by design.
func (s *State) SetStatus(line string) {
	s.mu.Lock()
	s.status = line
	s.mu.Unlock()
}

type frame struct {
	T       int64   `json:"t"`
	FrameID uint64  `json:"frame_id"`
	Elapsed float64 `json:"elapsed"`
	Scale   float64 `json:"scale,omitempty"`
	Blend   float64 `json:"blend"`
	Current []byte  `json:"current"`
	Next    []byte  `json:"next"`
	Status  string  `json:"status,omitempty"`
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.ApplyControl(msg)
		s.sendTopology(conn)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id":   s.frameID,
		"uptime_s":   time.Since(s.startTime).Seconds(),
		"fps":        s.FPS,
		"mesh":       s.Mesh.Name,
		"vertices":   s.Mesh.Vertices(),
		"table":      s.TableName,
		"brightness": s.Brightness,
		"driver":     s.CurrentDriver,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ApplyControl applies a control message and persists the resulting
// settings.
func (s *State) ApplyControl(msg map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := msg["brightness"].(float64); ok {
		s.Brightness = clamp(v, 0, 1)
	}
	if v, ok := msg["fps"].(float64); ok && v > 0 {
		s.FPS = int(v)
	}
	if v, ok := msg["mesh"].(string); ok {
		if m, err := mesh.ByName(v); err == nil {
			s.Mesh = m
			if s.drv != nil {
				s.drv.SetGroups(m.Groups)
			}
		} else {
			s.pushDiagLocked(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.CodeControlIgnored, Summary: "Unknown mesh",
				Evidence: map[string]any{"mesh": v},
			})
		}
	}
	if v, ok := msg["table"].(string); ok {
		if t, err := palette.TableByName(v); err == nil {
			s.TableName = v
			if s.drv != nil {
				s.drv.SetTable(t)
			}
		} else {
			s.pushDiagLocked(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.CodeControlIgnored, Summary: "Unknown palette table",
				Evidence: map[string]any{"table": v},
			})
		}
	}
	if v, ok := msg["runTest"].(string); ok {
		switch selftest.Kind(v) {
		case selftest.GroupSweep, selftest.RGBChannels, selftest.BlendRamp:
			s.testRunner = selftest.NewRunner(selftest.Plan{Kind: selftest.Kind(v)})
			s.pushDiagLocked(diag.Diagnostic{Severity: diag.Info, Code: diag.CodeTestRunning, Summary: "Running self-test", Detail: v})
		default:
			s.pushDiagLocked(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.CodeTestUnknown, Summary: "Unknown self-test name",
				Evidence: map[string]any{"name": v},
			})
		}
	}

	s.saveConfigLocked()
}

// PushDiag broadcasts a diagnostic to /diag subscribers.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.pushDiagLocked(d)
}

func (s *State) saveConfigLocked() {
	if s.ConfigPath == "" {
		return
	}
	cfg := &config.Config{
		Driver:     s.CurrentDriver,
		ColorOrder: "GRB",
		Brightness: s.Brightness,
		FPS:        s.FPS,
		Mesh:       s.Mesh.Name,
		Table:      s.TableName,
		Scale: config.ScaleCfg{
			Floor: anim.DefaultFloor,
			Ceil:  anim.DefaultCeil,
			Ratio: anim.DefaultRatio,
		},
	}
	_ = config.Save(s.ConfigPath, cfg)
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	top := map[string]any{
		"mesh":     s.Mesh.Name,
		"groups":   s.Mesh.Groups,
		"vertices": s.Mesh.Vertices(),
		"table":    s.TableName,
		"fps":      s.FPS,
		"driver":   s.CurrentDriver,
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcastFrame(f frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(f)
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) pushDiagLocked(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

func scaleByte(v uint8, f float64) byte {
	if f >= 1 {
		return v
	}
	if f <= 0 {
		return 0
	}
	return byte(float64(v) * f)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
