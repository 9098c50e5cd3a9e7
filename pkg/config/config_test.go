package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Strict {
		t.Fatalf("expected default Strict=false")
	}
	if cfg.OutputStyle != "default" {
		t.Fatalf("OutputStyle = %q, want default", cfg.OutputStyle)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".anchorize.yaml")
	content := "strict: true\noutputStyle: default\naccountKindOverrides:\n  Wallet: Signer\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("expected Strict=true")
	}
	if cfg.AccountKindOverrides["Wallet"] != "Signer" {
		t.Fatalf("AccountKindOverrides[Wallet] = %q, want Signer", cfg.AccountKindOverrides["Wallet"])
	}
}
