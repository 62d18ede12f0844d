package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigureValidSettings(t *testing.T) {
	log := Logger()
	if err := log.Configure("debug", "json", "stdout", 0); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
}

func TestConfigureRejectsInvalidLevel(t *testing.T) {
	log := Logger()
	if err := log.Configure("noisy", "text", "stdout", 0); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestConfigureRejectsInvalidFormat(t *testing.T) {
	log := Logger()
	if err := log.Configure("info", "xml", "stdout", 0); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestWithComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	log := Logger()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	log.WithComponent("collector").Info("hello")

	if !strings.Contains(buf.String(), `"component":"collector"`) {
		t.Errorf("missing component field in output: %s", buf.String())
	}
}

func TestLogMetricEmitsStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	log := Logger()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	log.WithComponent("bot").LogMetric("bot", "records_collected", 35, Fields{"scan_id": "s-1"})

	out := buf.String()
	if !strings.Contains(out, `"metric":"records_collected"`) {
		t.Errorf("missing metric name in output: %s", out)
	}
	if !strings.Contains(out, `"value":35`) {
		t.Errorf("missing metric value in output: %s", out)
	}
}
