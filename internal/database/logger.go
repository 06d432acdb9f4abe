package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger sends gorm's statement log to zerolog. Every statement is logged at
// debug level, statements slower than the threshold at warn level and
// failures at error level. Record-not-found is an expected outcome and is
// not reported as an error.
type Logger struct {
	log       zerolog.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

var _ gormlogger.Interface = (*Logger)(nil)

func NewLogger(log zerolog.Logger, slowQuery time.Duration) *Logger {
	return &Logger{
		log:       log.With().Str("component", "gorm").Logger(),
		level:     gormlogger.Warn,
		slowQuery: slowQuery,
	}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *Logger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		query, rows := fc()
		l.log.Error().Err(err).
			Str("query", query).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("Query failed")
	case l.slowQuery > 0 && elapsed > l.slowQuery && l.level >= gormlogger.Warn:
		query, rows := fc()
		l.log.Warn().
			Str("query", query).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Dur("threshold", l.slowQuery).
			Msg("Slow query")
	case l.log.GetLevel() <= zerolog.DebugLevel:
		query, rows := fc()
		l.log.Debug().
			Str("query", query).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("Query executed")
	}
}
