package ws

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/led"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
)

func newTestState() (*State, *anim.Driver) {
	s := NewState(mesh.Prism, "trio", 60, 1.0)
	s.Strip = led.NewSim()
	s.CurrentDriver = "sim"
	d := anim.NewDriver(palette.Trio, mesh.Prism.Groups, anim.Oscillator{}, s, s)
	s.Attach(d)
	return s, d
}

func TestHealthEndpoint(t *testing.T) {
	s, d := newTestState()
	require.NoError(t, d.Step(time.Unix(0, 0)))

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["frame_id"])
	assert.Equal(t, "prism", resp["mesh"])
	assert.Equal(t, float64(18), resp["vertices"])
	assert.Equal(t, "trio", resp["table"])
	assert.Equal(t, "sim", resp["driver"])
}

func TestControlSwapsMeshAndTable(t *testing.T) {
	s, d := newTestState()
	require.NoError(t, d.Step(time.Unix(0, 0)))

	s.ApplyControl(map[string]any{"mesh": "cube", "table": "hexad", "fps": float64(30), "brightness": 0.5})
	assert.Equal(t, mesh.Cube, s.Mesh)
	assert.Equal(t, "hexad", s.TableName)
	assert.Equal(t, 30, s.FPS)
	assert.Equal(t, 0.5, s.Brightness)

	// the next frame renders at the new group count
	require.NoError(t, d.Step(time.Unix(1, 0)))
	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, mesh.Cube.Vertices()*4, len(s.cur))
}

func TestControlIgnoresUnknownNames(t *testing.T) {
	s, _ := newTestState()
	s.ApplyControl(map[string]any{"mesh": "teapot", "table": "octo"})
	assert.Equal(t, mesh.Prism, s.Mesh)
	assert.Equal(t, "trio", s.TableName)
}

func TestSelftestOverridesStripFrames(t *testing.T) {
	s, d := newTestState()
	s.ApplyControl(map[string]any{"runTest": "group_sweep"})

	// sweep runs for exactly Groups frames, then normal output resumes
	now := time.Unix(0, 0)
	for i := 0; i < mesh.Prism.Groups; i++ {
		require.NoError(t, d.Step(now))
		now = now.Add(time.Second / 60)
	}
	s.mu.RLock()
	running := s.testRunner != nil
	s.mu.RUnlock()
	assert.True(t, running, "sweep should still be running on its last frame")

	require.NoError(t, d.Step(now))
	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Nil(t, s.testRunner)
}

// captureStrip records frame lengths like a fixed-size LED strip would
// see them.
type captureStrip struct {
	lengths []int
}

func (c *captureStrip) Write(rgb []byte) error {
	c.lengths = append(c.lengths, len(rgb))
	return nil
}

func (c *captureStrip) Close() error { return nil }

func TestMeshSwapKeepsStripFrameSize(t *testing.T) {
	s := NewState(mesh.Prism, "trio", 60, 1.0)
	strip := &captureStrip{}
	s.Strip = strip
	s.StripPixels = mesh.Prism.Groups
	s.CurrentDriver = "spi"
	d := anim.NewDriver(palette.Trio, mesh.Prism.Groups, anim.Oscillator{}, s, s)
	s.Attach(d)

	require.NoError(t, d.Step(time.Unix(0, 0)))
	s.ApplyControl(map[string]any{"mesh": "cube"})
	require.NoError(t, d.Step(time.Unix(1, 0)))

	require.Len(t, strip.lengths, 2)
	assert.Equal(t, mesh.Prism.Groups*3, strip.lengths[0])
	assert.Equal(t, mesh.Prism.Groups*3, strip.lengths[1], "strip frame size must not follow the mesh swap")
}

func TestStatusBestEffort(t *testing.T) {
	s, d := newTestState()
	require.NoError(t, d.Step(time.Unix(0, 0)))
	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, "scale: 1.00  t: 0.00s", s.status)
}
