package cli

import "go.uber.org/zap"

// newDebugLogger is the single setup path for verbose logging: json-encoded
// zap at debug level, matching what agents expect on stderr.
func newDebugLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	logger, err := cfg.Build()
	if err != nil {
		return nil
	}
	return logger.Sugar()
}

// watchLogger wraps zap for verbose debug with item/target context.
type watchLogger struct {
	sugared  *zap.SugaredLogger
	item     string
	targetID string
}

func newWatchLogger(globals *Globals, item string) *watchLogger {
	if globals == nil || !globals.Verbose {
		return &watchLogger{}
	}
	return &watchLogger{
		sugared: newDebugLogger(),
		item:    item,
	}
}

func (l *watchLogger) SetTarget(id string) { l.targetID = id }

func (l *watchLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	l.sugared.With("item", l.item, "target_id", l.targetID).Debugf(format, args...)
}
