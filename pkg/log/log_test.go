package log

import "testing"

func TestNewLoggerIsSingleton(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	if NewLogger() != NewLogger() {
		t.Fatal("expected the same logger instance on repeated calls")
	}
}

func TestHelpersTolerateNilFields(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	Debug(nil, "debug message")
	Info(nil, "info message")
	Warn(Fields{"key": "value"}, "warn message")
	Error(nil, "error message")
}
