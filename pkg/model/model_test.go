package model

import "testing"

func TestImportSetAliasesTokenTransferUnconditionally(t *testing.T) {
	s := NewImportSet()
	s.Add("anchor_spl", "token", "Transfer")
	s.Add("anchor_spl", "token", "transfer")
	s.Add("anchor_spl", "token", "Mint")

	pkgs := s.Packages()
	if len(pkgs) != 1 || pkgs[0].Source != "anchor_spl" {
		t.Fatalf("unexpected packages: %+v", pkgs)
	}
	mem := pkgs[0].Members[0]
	if mem.Name != "token" {
		t.Fatalf("unexpected member: %+v", mem)
	}
	byName := map[string]string{}
	for _, sym := range mem.Symbols {
		byName[sym.Name] = sym.Alias
	}
	if byName["Transfer"] != "TransferSPL" {
		t.Fatalf("Transfer alias = %q, want TransferSPL", byName["Transfer"])
	}
	if byName["transfer"] != "transfer_spl" {
		t.Fatalf("transfer alias = %q, want transfer_spl", byName["transfer"])
	}
	if byName["Mint"] != "" {
		t.Fatalf("Mint alias = %q, want none", byName["Mint"])
	}
}

func TestImportSetPreservesInsertionOrderAndDedupes(t *testing.T) {
	s := NewImportSet()
	s.Add("anchor_lang", "system_program", "transfer")
	s.Add("anchor_spl", "token", "Burn")
	s.Add("anchor_lang", "system_program", "Transfer")
	s.Add("anchor_lang", "system_program", "transfer") // duplicate, ignored

	pkgs := s.Packages()
	if len(pkgs) != 2 || pkgs[0].Source != "anchor_lang" || pkgs[1].Source != "anchor_spl" {
		t.Fatalf("unexpected package order: %+v", pkgs)
	}
	syms := pkgs[0].Members[0].Symbols
	if len(syms) != 2 || syms[0].Name != "transfer" || syms[1].Name != "Transfer" {
		t.Fatalf("unexpected symbol order/dedup: %+v", syms)
	}
}

func TestAddAliasedNeverOverwritesExistingAlias(t *testing.T) {
	s := NewImportSet()
	s.AddAliased("anchor_spl", "token", "Transfer", "First")
	s.AddAliased("anchor_spl", "token", "Transfer", "Second")

	syms := s.Packages()[0].Members[0].Symbols
	if len(syms) != 1 || syms[0].Alias != "First" {
		t.Fatalf("alias was overwritten: %+v", syms)
	}
}

func TestImportSetEmpty(t *testing.T) {
	s := NewImportSet()
	if !s.Empty() {
		t.Fatal("expected a freshly constructed ImportSet to be empty")
	}
	s.Add("anchor_lang", "system_program", "transfer")
	if s.Empty() {
		t.Fatal("expected ImportSet to be non-empty after Add")
	}
}

func TestNewProgramModuleDefaults(t *testing.T) {
	pm := NewProgramModule()
	if pm.ID == "" || pm.Name == "" {
		t.Fatalf("expected non-empty defaults, got %+v", pm)
	}
	if pm.Imports == nil || !pm.Imports.Empty() {
		t.Fatalf("expected an initialized, empty import set")
	}
	if pm.CustomTypes == nil {
		t.Fatal("expected an initialized CustomTypes map")
	}
}
