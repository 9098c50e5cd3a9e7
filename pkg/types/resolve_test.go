package types

import (
	"testing"

	"github.com/anchorize/anchorize/pkg/ast"
)

func numArg(n int) ast.TypeExpr { return ast.TypeExpr{Name: "n", NumArg: &n} }

func TestResolveScalar(t *testing.T) {
	r, err := Resolve(ast.TypeExpr{Name: "u64"}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.RustType != "u64" || r.Count != 1 {
		t.Fatalf("got %+v", r)
	}
}

func TestResolveStrCapacity(t *testing.T) {
	r, err := Resolve(ast.TypeExpr{Name: "Str", Args: []ast.TypeExpr{numArg(50)}}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.RustType != "String" || r.Count != 50 {
		t.Fatalf("got %+v", r)
	}
	if space := FieldSpace(r); space != 54 {
		t.Fatalf("FieldSpace(Str<50>) = %d, want 54", space)
	}
}

func TestResolveVecOfStr(t *testing.T) {
	// Vec<Str<50>, 5> — the Favorites "hobbies" field.
	r, err := Resolve(ast.TypeExpr{
		Name: "Vec",
		Args: []ast.TypeExpr{
			{Name: "Str", Args: []ast.TypeExpr{numArg(50)}},
			numArg(5),
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if space := FieldSpace(r); space != 274 {
		t.Fatalf("FieldSpace(Vec<Str<50>,5>) = %d, want 274", space)
	}
}

func TestFavoritesTotalSpace(t *testing.T) {
	fields := []ast.TypeExpr{
		{Name: "u64"},
		{Name: "Str", Args: []ast.TypeExpr{numArg(50)}},
		{Name: "Vec", Args: []ast.TypeExpr{{Name: "Str", Args: []ast.TypeExpr{numArg(50)}}, numArg(5)}},
	}
	space := uint32(8)
	for _, f := range fields {
		r, err := Resolve(f, nil, nil)
		if err != nil {
			t.Fatalf("Resolve(%+v): %v", f, err)
		}
		space += FieldSpace(r)
	}
	if space != 344 {
		t.Fatalf("total Favorites space = %d, want 344", space)
	}
}

func TestFieldSpaceVecOfPubkey(t *testing.T) {
	r, err := Resolve(ast.TypeExpr{
		Name: "Vec",
		Args: []ast.TypeExpr{{Name: "Pubkey"}, numArg(3)},
	}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if space := FieldSpace(r); space != 4+32*3 {
		t.Fatalf("FieldSpace(Vec<Pubkey,3>) = %d, want %d", space, 4+32*3)
	}
}

func TestResolveUnknownIdentifierFails(t *testing.T) {
	_, err := Resolve(ast.TypeExpr{Name: "Frobnicator"}, map[string]bool{}, nil)
	if err == nil {
		t.Fatal("expected UnsupportedType error")
	}
}

func TestResolveCustomType(t *testing.T) {
	r, err := Resolve(ast.TypeExpr{Name: "VoteState"}, map[string]bool{"VoteState": true}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.RustType != "Account<'info, VoteState>" {
		t.Fatalf("got %+v", r)
	}
}
