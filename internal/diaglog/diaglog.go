// Package diaglog wires the installer's diagnostics log: a timestamped,
// size-rotated file under the user's data directory, mirrored to stdout.
// Nothing in here may fail an install, so write errors are dropped.
package diaglog

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init points the standard logrus logger at logPath and stdout.
// The returned closer flushes and closes the log file.
func Init(logLevel string, logPath string) io.Closer {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		level = log.DebugLevel
	}

	file := &lumberjack.Logger{
		Filename:   filepath.ToSlash(logPath),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	log.SetOutput(NewTee(os.Stdout, file))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	log.SetLevel(level)
	return file
}

// tee writes to every underlying writer and never reports failure, so a
// missing console (GUI subsystem) or an unwritable log file stays silent.
type tee struct {
	writers []io.Writer
}

// NewTee returns a best-effort writer duplicating writes to each of writers.
func NewTee(writers ...io.Writer) io.Writer {
	return &tee{writers: writers}
}

func (t *tee) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		_, _ = w.Write(p)
	}
	return len(p), nil
}
