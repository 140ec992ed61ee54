package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is a structured event pushed to /diag subscribers.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

// Codes emitted by the engine.
const (
	CodeStripFallback  = "STRIP.FALLBACK"
	CodeTestRunning    = "TEST.RUNNING"
	CodeTestDone       = "TEST.DONE"
	CodeTestUnknown    = "TEST.UNKNOWN"
	CodeControlIgnored = "CONTROL.IGNORED"
)
