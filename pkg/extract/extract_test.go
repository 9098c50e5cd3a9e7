package extract

import (
	"testing"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return file
}

const validSource = `
export interface CounterState extends Account {
  count: u64;
  label: Str<50>;
}

export default class Counter {
  static PROGRAM_ID = new Pubkey("11111111111111111111111111111111111111111");

  initialize(user: Signer, state: CounterState) {
    state.derive(["counter"]).init(user);
  }
}
`

func TestExtractComputesCustomAccountSpace(t *testing.T) {
	file := mustParse(t, validSource)
	ex, err := Extract(file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Class.Name != "Counter" {
		t.Fatalf("unexpected class: %+v", ex.Class)
	}
	acc, ok := ex.CustomTypes["CounterState"]
	if !ok {
		t.Fatalf("CounterState missing from custom types: %+v", ex.CustomTypes)
	}
	// 8 (discriminator) + 8 (u64) + (4+50) (Str<50>) = 70.
	if acc.Space != 70 {
		t.Fatalf("Space = %d, want 70", acc.Space)
	}
	if len(ex.CustomTypeOrder) != 1 || ex.CustomTypeOrder[0] != "CounterState" {
		t.Fatalf("unexpected order: %+v", ex.CustomTypeOrder)
	}
}

func TestExtractRejectsMissingClass(t *testing.T) {
	file := mustParse(t, `export interface S extends Account { n: u64; }`)
	_, err := Extract(file)
	if err == nil {
		t.Fatal("expected a StructuralError for a missing default-exported class")
	}
	se, ok := err.(*Error)
	if !ok || se.Category != "StructuralError" {
		t.Fatalf("expected StructuralError, got %v", err)
	}
}

func TestExtractRejectsInterfaceNotExtendingAccount(t *testing.T) {
	src := `
export interface Bad extends Foo {
  n: u64;
}

export default class P {
  static PROGRAM_ID = new Pubkey("11111111111111111111111111111111111111111");
  noop() {}
}
`
	file := mustParse(t, src)
	_, err := Extract(file)
	if err == nil {
		t.Fatal("expected a StructuralError for an interface not extending Account")
	}
}

func TestExtractRejectsUnknownFieldType(t *testing.T) {
	src := `
export interface Bad extends Account {
  n: NotAType;
}

export default class P {
  static PROGRAM_ID = new Pubkey("11111111111111111111111111111111111111111");
  noop() {}
}
`
	file := mustParse(t, src)
	_, err := Extract(file)
	if err == nil {
		t.Fatal("expected a TypeError for an unresolvable field type")
	}
	se, ok := err.(*Error)
	if !ok || se.Category != "TypeError" {
		t.Fatalf("expected TypeError, got %v", err)
	}
}
