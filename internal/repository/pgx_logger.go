package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
type pgxLogger struct {
	logger zerolog.Logger
}

// newPgxLogger tags SQL traffic with its own component so it stays filterable.
func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("module", "repository").Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

// Log implements tracelog.Logger. Statement text and bind args are attached
// only at trace level so player emails never reach info logs.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}
	if !event.Enabled() {
		return
	}

	for k, v := range data {
		switch k {
		case "sql":
			if level == tracelog.LogLevelTrace {
				event = event.Interface("sql", v)
			}
		case "args":
			if level == tracelog.LogLevelTrace {
				event = event.Interface("args", v)
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				event = event.Dur("took", d)
			} else {
				event = event.Interface(k, v)
			}
		case "err":
			if err, ok := v.(error); ok {
				event = event.Err(err)
			} else {
				event = event.Interface(k, v)
			}
		default:
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}
