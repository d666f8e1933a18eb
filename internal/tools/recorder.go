package tools

import (
	"go.uber.org/zap"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// Recorder persists completed evaluations. It's an optional dependency:
// tools work fine with a nil recorder. *history.Store satisfies it.
type Recorder interface {
	Save(in pipeline.Input, report pipeline.Report) (*history.Entry, error)
}

// record is a nil-safe helper called from Handle methods. Save failures
// are logged and swallowed; the evaluation itself already succeeded.
func record(rec Recorder, log *zap.Logger, in pipeline.Input, report pipeline.Report) *history.Entry {
	if rec == nil {
		return nil
	}
	entry, err := rec.Save(in, report)
	if err != nil {
		log.Warn("history save failed", zap.Error(err))
		return nil
	}
	log.Debug("evaluation recorded",
		zap.String("id", entry.ID),
		zap.Float64("overall", report.OverallScore),
		zap.String("risk", string(report.RiskLevel)),
	)
	return entry
}
