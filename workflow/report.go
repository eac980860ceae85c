package workflow

import (
	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/log"
)

// Severity classifies a reported condition.
type Severity int

const (
	// SeverityInfo is progress worth surfacing, not a failure.
	SeverityInfo Severity = iota
	// SeverityWarning is a recoverable condition; the workflow continues
	// or can be re-triggered.
	SeverityWarning
	// SeverityError is a failed workflow step.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Reporter is the single user-facing error surface for all four workflows.
// Every workflow failure goes through one Report call with a severity;
// call sites never decide between alerting and silent logging themselves.
type Reporter interface {
	Report(sev Severity, msg string, err error)
}

// LogReporter reports through the structured logger.
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter creates a Reporter backed by logger.
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.NewNop()
	}
	return &LogReporter{logger: logger}
}

// Report logs the condition at the matching level.
func (r *LogReporter) Report(sev Severity, msg string, err error) {
	fields := []zap.Field{}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	switch sev {
	case SeverityError:
		r.logger.Error(msg, fields...)
	case SeverityWarning:
		r.logger.Warn(msg, fields...)
	default:
		r.logger.Info(msg, fields...)
	}
}
