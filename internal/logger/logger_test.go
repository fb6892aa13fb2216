package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"brewin/internal/logger"

	"github.com/charmbracelet/log"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer

	logger.Setup(&buf, false, true)
	log.Debug("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged without debug mode: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "BREWIN") {
		t.Errorf("expected prefixed warning, got %q", out)
	}

	buf.Reset()
	logger.Setup(&buf, true, true)
	log.Debug("step", "ip", 3)
	if !strings.Contains(buf.String(), "step") {
		t.Errorf("expected debug message in debug mode, got %q", buf.String())
	}
}
