package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/svetlyi/gdrivepath/contracts"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, contracts.LogInfoLevel)

	l.Debug("hidden message")
	l.Info("visible message", struct {
		path string
	}{"root/a"})

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("debug message must not be written at info level")
	}
	if !strings.Contains(out, "visible message") {
		t.Error("info message must be written")
	}
	if !strings.Contains(out, "root/a") {
		t.Error("context must be written", out)
	}
}

func TestNewWritesToFile(t *testing.T) {
	appName := "gdrivepath_logger_test"
	defer os.Remove(FilePath(appName))

	l, err := New(appName, 10000, contracts.LogDebugLevel, false)
	if err != nil {
		t.Fatal(err)
	}
	l.Error("something failed")

	data, err := os.ReadFile(FilePath(appName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "something failed") {
		t.Error("message was not written to the log file")
	}
}

func TestClose(t *testing.T) {
	appName := "gdrivepath_logger_close_test"
	defer os.Remove(FilePath(appName))

	l, err := New(appName, 10000, contracts.LogDebugLevel, false)
	if err != nil {
		t.Fatal(err)
	}
	if err = l.Close(); err != nil {
		t.Fatal(err)
	}
	if err = l.Close(); err == nil {
		t.Error("closing the log file twice must fail")
	}
	if err = NewWriter(&bytes.Buffer{}, contracts.LogDebugLevel).Close(); err != nil {
		t.Error("a writer logger has nothing to close", err)
	}
}
