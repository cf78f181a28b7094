package cli

import (
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("reader.sources", "no calibration documents configured")

	expected := "config error in reader.sources: no calibration documents configured"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	baseErr := errors.New("document not found")
	err := NewCommandError("lookup", baseErr)

	expected := "command lookup failed: document not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, baseErr) {
		t.Error("errors.Is() should find the wrapped error")
	}
}

func TestFlagError(t *testing.T) {
	err := NewFlagError("type", "complex", "must be float, int, string or bool")

	expected := `invalid value "complex" for --type: must be float, int, string or bool`
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	var flagErr *FlagError
	wrapped := NewCommandError("get", err)
	if !errors.As(wrapped, &flagErr) {
		t.Fatal("errors.As() should find the FlagError")
	}
	if flagErr.Flag != "type" {
		t.Errorf("Flag = %q, want %q", flagErr.Flag, "type")
	}
}
