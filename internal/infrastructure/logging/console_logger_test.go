package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FedericoStra/pdfshrink/internal/infrastructure/logging"
)

func TestConsoleLogger_VerbosityThreshold(t *testing.T) {
	t.Run("Debug suppressed by default", func(t *testing.T) {
		var out, errOut bytes.Buffer
		logger := logging.NewConsoleLoggerWithWriters(0, &out, &errOut)

		logger.Debug("hidden %d", 1)
		logger.Info("shown")

		if strings.Contains(errOut.String(), "hidden") {
			t.Error("Expected debug message to be suppressed at verbosity 0")
		}
		if !strings.Contains(errOut.String(), "shown") {
			t.Error("Expected info message to be printed")
		}
	})

	t.Run("Debug shown with -v", func(t *testing.T) {
		var out, errOut bytes.Buffer
		logger := logging.NewConsoleLoggerWithWriters(1, &out, &errOut)

		logger.Debug("details")

		if !strings.Contains(errOut.String(), "details") {
			t.Error("Expected debug message to be printed at verbosity 1")
		}
	})
}

func TestConsoleLogger_StreamSeparation(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := logging.NewConsoleLoggerWithWriters(0, &out, &errOut)

	logger.Success("done")
	logger.Error("boom")
	logger.Warning("careful")

	if !strings.Contains(out.String(), "done") {
		t.Error("Expected success message on stdout")
	}
	if strings.Contains(out.String(), "boom") || strings.Contains(out.String(), "careful") {
		t.Error("Expected errors and warnings to stay off stdout")
	}
	if !strings.Contains(errOut.String(), "boom") || !strings.Contains(errOut.String(), "careful") {
		t.Error("Expected errors and warnings on stderr")
	}
}

func TestMultiLogger_SkipsNilLoggers(t *testing.T) {
	var out, errOut bytes.Buffer
	console := logging.NewConsoleLoggerWithWriters(0, &out, &errOut)

	multi := logging.NewMultiLogger(console, nil)
	multi.Info("fan-out")

	if !strings.Contains(errOut.String(), "fan-out") {
		t.Error("Expected the message to reach the console logger")
	}
	if err := multi.Close(); err != nil {
		t.Errorf("Unexpected error on close: %v", err)
	}
}
