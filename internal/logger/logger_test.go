package logger

import "testing"

func TestDefaultLoggerIsSafe(t *testing.T) {
	// Callers that never run Init must be able to log without panicking
	Debug("debug before init", "key", 1)
	Info("info before init")
	Warn("warn before init")
	Error("error before init", nil)
	if err := Sync(); err != nil {
		t.Errorf("Sync on the default logger failed: %v", err)
	}
}

func TestInit(t *testing.T) {
	for _, format := range []string{"human", "json"} {
		if err := Init(Config{Debug: true, LogFormat: format}); err != nil {
			t.Fatalf("Init(%q) failed: %v", format, err)
		}
		if Logger == nil {
			t.Fatalf("Logger nil after Init(%q)", format)
		}
		Debug("logger initialized", "format", format)
	}
}
