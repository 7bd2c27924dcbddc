package node

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// ErrorEvent is a domain failure raised inside a node's own logic, carried
// through the reporting channel instead of aborting the cycle. Events stay
// attributable to a specific node instance.
type ErrorEvent struct {
	NodeID  string
	Class   string
	Code    string
	Message string
}

func (e ErrorEvent) String() string {
	return fmt.Sprintf("%s-%s: [%s] %s", e.Class, e.NodeID, e.Code, e.Message)
}

// Reporter is the node-local error-reporting channel. Run implementations
// report domain failures here so the driver can continue scheduling other
// nodes; the driver decides whether to halt or carry on.
type Reporter interface {
	Report(event ErrorEvent)
}

// NopReporter discards all events. It is the default for detached nodes.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(ErrorEvent) {}

// LogReporter writes events to a zap logger.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter backed by the given logger.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(event ErrorEvent) {
	r.logger.Error("node reported error",
		zap.String("node_id", event.NodeID),
		zap.String("class", event.Class),
		zap.String("code", event.Code),
		zap.String("message", event.Message))
}

// SentryReporter forwards events to Sentry. The hub defaults to the current
// global hub, so sentry.Init at program start is the only required setup.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter creates a reporter bound to a hub; pass nil for the
// global hub.
func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryReporter{hub: hub}
}

// Report implements Reporter.
func (r *SentryReporter) Report(event ErrorEvent) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("node_id", event.NodeID)
		scope.SetTag("node_class", event.Class)
		scope.SetTag("error_code", event.Code)
		r.hub.CaptureMessage(event.String())
	})
}

// MultiReporter fans one event out to several reporters.
type MultiReporter []Reporter

// Report implements Reporter.
func (m MultiReporter) Report(event ErrorEvent) {
	for _, r := range m {
		r.Report(event)
	}
}

// CollectReporter accumulates events in memory, primarily for drivers that
// inspect failures after a scheduling pass, and for tests.
type CollectReporter struct {
	Events []ErrorEvent
}

// Report implements Reporter.
func (c *CollectReporter) Report(event ErrorEvent) {
	c.Events = append(c.Events, event)
}
