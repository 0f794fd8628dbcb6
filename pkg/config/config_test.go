package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"channel_buffer": 5000}`), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ChannelBuffer != 5000 {
		t.Fatalf("expected overridden channel_buffer=5000, got %d", cfg.ChannelBuffer)
	}
	if cfg.ConnectTimeoutS != 10 {
		t.Fatalf("expected default connect_timeout_s=10, got %d", cfg.ConnectTimeoutS)
	}
}

func TestCreateDefaultThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := CreateDefault(path); err != nil {
		t.Fatalf("CreateDefault returned error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if *cfg != want {
		t.Fatalf("round-tripped config %+v does not match default %+v", cfg, want)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
