// Package logger writes the application log to a file in the temp dir and,
// optionally, to stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/svetlyi/gdrivepath/contracts"
)

type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

var _ contracts.Logger = Logger{}

// New creates a logger writing into <tmp>/<appName>.log. The file is
// truncated when it is bigger than maxSize. verbosity is one of the
// contracts.Log*Level constants; anything above LogDebugLevel means debug.
func New(appName string, maxSize int64, verbosity uint8, toStdout bool) (Logger, error) {
	path := FilePath(appName)
	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if stat, err := os.Stat(path); err == nil && stat.Size() > maxSize {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return Logger{}, errors.Wrapf(err, "could not open log file %s", path)
	}

	var out io.Writer = f
	if toStdout {
		out = io.MultiWriter(f, os.Stdout)
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level(verbosity))
	l.SetFormatter(&logrus.TextFormatter{
		DisableLevelTruncation: true,
		QuoteEmptyFields:       true,
		DisableSorting:         true,
	})
	return Logger{entry: l, file: f}, nil
}

// Close closes the log file. Loggers made by NewWriter have nothing to close.
func (l Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return errors.Wrap(l.file.Close(), "could not close log file")
}

// NewWriter creates a logger that writes to w only.
func NewWriter(w io.Writer, verbosity uint8) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level(verbosity))
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return Logger{entry: l}
}

func FilePath(appName string) string {
	return filepath.Join(os.TempDir(), appName+".log")
}

func level(verbosity uint8) logrus.Level {
	switch verbosity {
	case contracts.LogErrorLevel:
		return logrus.ErrorLevel
	case contracts.LogWarningLevel:
		return logrus.WarnLevel
	case contracts.LogInfoLevel:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

func (l Logger) Debug(v ...interface{}) {
	l.log(logrus.DebugLevel, v)
}

func (l Logger) Info(v ...interface{}) {
	l.log(logrus.InfoLevel, v)
}

func (l Logger) Warning(v ...interface{}) {
	l.log(logrus.WarnLevel, v)
}

func (l Logger) Error(v ...interface{}) {
	l.log(logrus.ErrorLevel, v)
}

// log uses the first value as the message and puts the rest into the
// "context" field.
func (l Logger) log(lvl logrus.Level, v []interface{}) {
	if !l.entry.IsLevelEnabled(lvl) || len(v) == 0 {
		return
	}
	msg := fmt.Sprint(v[0])
	if len(v) == 1 {
		l.entry.Log(lvl, msg)
		return
	}
	context := make([]string, 0, len(v)-1)
	for _, c := range v[1:] {
		context = append(context, fmt.Sprintf("%+v", c))
	}
	l.entry.WithField("context", strings.Join(context, " ")).Log(lvl, msg)
}
