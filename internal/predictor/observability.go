package predictor

import "github.com/charmbracelet/log"

// CallEvent records metadata about a single model invocation.
type CallEvent struct {
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *log.Logger
}

func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	if o == nil || o.logger == nil {
		return
	}
	kv := []any{"model", event.Model, "latency_ms", event.LatencyMs, "attempts", event.Attempts}
	if event.Success {
		o.logger.Debug("predictor call", kv...)
		return
	}
	o.logger.Warn("predictor call failed", append(kv, "error_code", event.ErrorCode)...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
