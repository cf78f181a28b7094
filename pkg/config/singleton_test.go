package config

import (
	"sync"
	"testing"
)

func resetGlobal() {
	globalConfig = nil
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	configPath := writeConfig(t, `
reader:
  sources: [cuts.yaml]
telemetry:
  logging:
    level: "info"
    format: "json"
`)

	if err := Initialize(configPath); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected config to be initialized")
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected logging format %q, got %q", "json", cfg.Telemetry.Logging.Format)
	}

	// Second call is ignored.
	if err := Initialize("/nonexistent.yaml"); err != nil {
		t.Errorf("expected repeated Initialize to be a no-op, got %v", err)
	}
	if GetConfig() != cfg {
		t.Error("expected config to be unchanged after repeated Initialize")
	}
}

func TestInitialize_NoFile(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	t.Setenv("CUTCONF_READER_SOURCES", "/srv/cuts.yaml")

	if err := Initialize(""); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	cfg := MustGetConfig()
	if len(cfg.Reader.Sources) != 1 || cfg.Reader.Sources[0] != "/srv/cuts.yaml" {
		t.Errorf("expected sources from env, got %v", cfg.Reader.Sources)
	}
	if cfg.Reader.PassThroughKey != DefaultPassThroughKey {
		t.Errorf("expected default pass-through key, got %q", cfg.Reader.PassThroughKey)
	}
}

func TestInitialize_Error(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	if err := Initialize("/nonexistent/cutconf.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if GetConfig() != nil {
		t.Error("expected config to remain nil after failed Initialize")
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "telemetry:\n  logging:\n    level: info\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	reloaded := writeConfig(t, "telemetry:\n  logging:\n    level: debug\n")
	if err := ReloadConfig(reloaded); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if got := GetConfig().Telemetry.Logging.Level; got != "debug" {
		t.Errorf("expected reloaded level %q, got %q", "debug", got)
	}

	bad := writeConfig(t, "telemetry:\n  logging:\n    level: chatty\n")
	if err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload of invalid config to fail")
	}
	if got := GetConfig().Telemetry.Logging.Level; got != "debug" {
		t.Errorf("expected config unchanged after failed reload, got level %q", got)
	}
}

func TestSetConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	cfg := NewTestConfig().WithLoggingLevel("warn").Build()
	SetConfig(cfg)
	if GetConfig() != cfg {
		t.Error("expected GetConfig to return the config passed to SetConfig")
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustGetConfig to panic when uninitialized")
		}
	}()
	MustGetConfig()
}

func TestGetConfig_Concurrent(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)
	SetConfig(NewTestConfig().Build())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if GetConfig() == nil {
				t.Error("expected non-nil config")
			}
		}()
	}
	wg.Wait()
}
