package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogWriter feeds gorm's query log into slog as single JSON records.
type slogWriter struct {
	l *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	line := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " ")
	w.l.Warn("gorm_query", "detail", line)
}

// newGormLogger keeps errors and slow queries but not missing rows, which
// are ordinary 404s here.
func newGormLogger(l *slog.Logger) logger.Interface {
	return logger.New(slogWriter{l: l.With("component", "gorm")}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
