package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	SetLevel(Warning)
	defer SetLevel(Notice)

	logger := New("test")
	logger.Info("hidden message")
	logger.Warning("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("Info message should be filtered at Warning level")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "WARN test:") {
		t.Errorf("Expected warning tagged with level and logger name, got %q", out)
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	New("test").Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("Debug level should survive a sink change")
	}
	if CurrentLevel() != Debug {
		t.Errorf("Expected current level debug, got %v", CurrentLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", Debug, false},
		{"info", Info, false},
		{"notice", Notice, false},
		{"warning", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLevel) {
					t.Errorf("Expected ErrUnknownLevel, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Expected %v, got %v (err %v)", tt.want, got, err)
			}
			if got.String() != tt.name {
				t.Errorf("Expected round trip name %q, got %q", tt.name, got.String())
			}
		})
	}
}
