package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLoggers sets up the three level loggers. Each writes to stdout and to a
// rotated file under LOG_DIR (default "logs").
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	InfoLogger = newLogger(logrus.InfoLevel, filepath.Join(logDir, "info.log"))
	WarnLogger = newLogger(logrus.WarnLevel, filepath.Join(logDir, "warn.log"))
	ErrorLogger = newLogger(logrus.ErrorLevel, filepath.Join(logDir, "error.log"))
}

func newLogger(level logrus.Level, file string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotated))

	return l
}

func init() {
	// Packages log from their own init paths, so make sure the loggers always
	// exist even before main calls InitLoggers.
	if InfoLogger == nil {
		InitLoggers()
	}
}
