package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSyncRewritesMatchingFileAndSkipsOthers(t *testing.T) {
	dir := t.TempDir()

	matching := `export default class Counter {
  static PROGRAM_ID = new Pubkey("11111111111111111111111111111111111111111");
}
`
	if err := os.WriteFile(filepath.Join(dir, "counter.ts"), []byte(matching), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	noMatch := `export default class Vault {
  someOtherField = 1;
}
`
	if err := os.WriteFile(filepath.Join(dir, "vault.ts"), []byte(noMatch), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := Manifest{
		"counter": "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		"vault":   "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		"missing": "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
	}

	result, err := Sync(m, dir)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(result.Updated) != 1 || result.Updated[0] != filepath.Join(dir, "counter.ts") {
		t.Fatalf("Updated = %+v, want exactly counter.ts", result.Updated)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("Skipped = %+v, want 2 entries", result.Skipped)
	}

	rewritten, err := os.ReadFile(filepath.Join(dir, "counter.ts"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := `export default class Counter {
  static PROGRAM_ID = new Pubkey("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin");
}
`
	if string(rewritten) != want {
		t.Fatalf("rewritten content = %q, want %q", rewritten, want)
	}
}

func TestLoadParsesTOMLManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.toml")
	content := "counter = \"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m["counter"] != "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin" {
		t.Fatalf("m[counter] = %q", m["counter"])
	}
}
