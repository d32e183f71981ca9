package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	"artisan_market/internal/config"
)

// Setup points logrus at a rotating file (mirrored to stdout) and returns
// the writer so the request logger can share it.
func Setup(cfg config.LogConfig) io.Writer {
	out := io.Writer(os.Stdout)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			log.Printf("log directory unavailable, logging to stdout only: %v", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    10, // megabytes
				MaxBackups: 7,
				MaxAge:     7, // days
				Compress:   true,
			}
			out = io.MultiWriter(os.Stdout, rotator)
		}
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	return out
}

// RequestLogger logs one line per request to w.
func RequestLogger(w io.Writer) gin.HandlerFunc {
	return ginlog.SetLogger(
		ginlog.WithWriter(w),
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/health"}),
	)
}

// GormLogger routes SQL logging through logrus. Slow queries are warned
// about at any level; full SQL only at debug.
func GormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
