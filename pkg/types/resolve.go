// Package types is the pure type resolver of component §4.2: it maps
// a source type identifier (plus any type-parameter list) to a target
// type token, an element/capacity count, and optional-ness, and
// exposes the same table used to compute a custom account's byte
// space. Grounded on original_source's helpers/extract_type.rs and
// ts_types.rs.
package types

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/ast"
)

// ErrUnsupportedType is the typed failure for a type combination the
// resolver does not recognize.
type ErrUnsupportedType struct {
	Detail string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("UnsupportedType: %s", e.Detail)
}

// Resolved is the output of resolving one source TypeExpr.
type Resolved struct {
	// RustType is the target-language type token, e.g. "u64", "Pubkey",
	// "String", "Vec<u8>", "Vec<String>".
	RustType string
	// SourceTag is the resolved scalar/account tag name before
	// target-language translation (e.g. "Str", "Pubkey", "u64"),
	// used for space computation and account-kind classification.
	SourceTag string
	// Count is the element/capacity count: 1 for plain scalars, the
	// declared capacity for Str<N>, the declared length for Vec<T,N>,
	// and N*(4+M) for Vec<Str<M>,N> (each element's length prefix
	// folded in).
	Count    uint32
	Optional bool
}

// scalarTags are the recognized scalar type tags from spec.md §4.2.
var scalarTags = map[string]string{
	"u8": "u8", "i8": "i8",
	"u16": "u16", "i16": "i16",
	"u32": "u32", "i32": "i32",
	"u64": "u64", "i64": "i64",
	"u128": "u128", "i128": "i128",
	"usize": "usize", "isize": "isize",
	"boolean": "bool",
	"Uint8Array": "Vec<u8>",
	"Pubkey":     "Pubkey",
}

// accountTags are the seven built-in account kinds named in spec.md
// §4.3/§4.4, mapped to their Anchor wrapper token.
var accountTags = map[string]string{
	"Signer":                 "Signer<'info>",
	"UncheckedAccount":       "UncheckedAccount<'info>",
	"AccountInfo":            "AccountInfo<'info>",
	"SystemAccount":          "SystemAccount<'info>",
	"AssociatedTokenAccount": "Account<'info, TokenAccount>",
	"TokenAccount":           "Account<'info, TokenAccount>",
	"Mint":                   "Account<'info, Mint>",
}

// IsAccountTag reports whether name is one of the seven built-in account kinds.
func IsAccountTag(name string) (token string, ok bool) {
	token, ok = accountTags[name]
	return token, ok
}

// Resolve maps a parsed TypeExpr to its target representation.
// customTypes is the set of previously declared custom account/state
// type names (interfaces extending Account). overrides is the
// workspace's `.anchorize.yaml` accountKindOverrides map: a type name
// with no other meaning is retried as whatever built-in account kind
// it's mapped to, letting a workspace use its own dialect name (e.g.
// "Wallet") for one of the seven built-in account kinds. An identifier
// outside all of those tables is a hard UnsupportedType error.
func Resolve(t ast.TypeExpr, customTypes map[string]bool, overrides map[string]string) (Resolved, error) {
	if t.Name == "Str" {
		if len(t.Args) != 1 || t.Args[0].NumArg == nil {
			return Resolved{}, &ErrUnsupportedType{Detail: "Str<N> requires one literal-number length argument"}
		}
		return Resolved{RustType: "String", SourceTag: "Str", Count: uint32(*t.Args[0].NumArg), Optional: t.Optional}, nil
	}

	if t.Name == "Vec" {
		return resolveVec(t)
	}

	if rust, ok := scalarTags[t.Name]; ok {
		return Resolved{RustType: rust, SourceTag: t.Name, Count: 1, Optional: t.Optional}, nil
	}

	if token, ok := accountTags[t.Name]; ok {
		return Resolved{RustType: token, SourceTag: t.Name, Count: 1, Optional: t.Optional}, nil
	}

	if customTypes[t.Name] {
		return Resolved{RustType: "Account<'info, " + t.Name + ">", SourceTag: t.Name, Count: 1, Optional: t.Optional}, nil
	}

	if target, ok := overrides[t.Name]; ok {
		if token, ok := accountTags[target]; ok {
			return Resolved{RustType: token, SourceTag: target, Count: 1, Optional: t.Optional}, nil
		}
		return Resolved{}, &ErrUnsupportedType{Detail: fmt.Sprintf("accountKindOverrides maps %q to unrecognized account kind %q", t.Name, target)}
	}

	return Resolved{}, &ErrUnsupportedType{Detail: fmt.Sprintf("unknown type identifier %q", t.Name)}
}

// resolveVec handles `Vec<T, N>` and the nested-string special case
// `Vec<Str<M>, N>`, exactly mirroring
// extract_name_and_len_with_type_params's two branches.
func resolveVec(t ast.TypeExpr) (Resolved, error) {
	if len(t.Args) != 2 || t.Args[1].NumArg == nil {
		return Resolved{}, &ErrUnsupportedType{Detail: "Vec<T, N> requires an element type and a literal-number length"}
	}
	elem := t.Args[0]
	vecLen := uint32(*t.Args[1].NumArg)

	if elem.Name == "Str" {
		if len(elem.Args) != 1 || elem.Args[0].NumArg == nil {
			return Resolved{}, &ErrUnsupportedType{Detail: "Vec<Str<M>, N> requires Str's own literal-number length"}
		}
		strLen := uint32(*elem.Args[0].NumArg)
		return Resolved{
			RustType:  "Vec<String>",
			SourceTag: "Vec<Str>",
			Count:     vecLen * (4 + strLen),
			Optional:  t.Optional,
		}, nil
	}

	rust, ok := scalarTags[elem.Name]
	if !ok {
		return Resolved{}, &ErrUnsupportedType{Detail: fmt.Sprintf("unsupported Vec element type %q", elem.Name)}
	}
	return Resolved{
		RustType:  "Vec<" + rust + ">",
		SourceTag: "Vec<" + elem.Name + ">",
		Count:     vecLen,
		Optional:  t.Optional,
	}, nil
}

// FieldSpace computes one field's byte contribution to a custom
// account's space budget, per the fixed table in spec.md §3: variable
// length containers (Vec, Str) carry an extra 4-byte length prefix;
// pubkey-like types cost 32 bytes per element; integer widths cost
// their byte width per element; Str capacity and Vec<Str> are handled
// by Resolved.Count already folding in their own prefixes.
func FieldSpace(r Resolved) uint32 {
	var space uint32
	tag := r.SourceTag
	switch {
	case strings.HasPrefix(tag, "Vec<Str"):
		// Count already includes each element's 4-byte length prefix.
		return 4 + r.Count
	case strings.HasPrefix(tag, "Vec<") || tag == "Str":
		space += 4
	}

	switch {
	case strings.Contains(tag, "Pubkey"):
		space += 32 * r.Count
	case strings.Contains(tag, "u128") || strings.Contains(tag, "i128"):
		space += 16 * r.Count
	case strings.Contains(tag, "usize") || strings.Contains(tag, "isize"):
		space += 8 * r.Count
	case strings.Contains(tag, "u64") || strings.Contains(tag, "i64"):
		space += 8 * r.Count
	case strings.Contains(tag, "u32") || strings.Contains(tag, "i32"):
		space += 4 * r.Count
	case strings.Contains(tag, "u16") || strings.Contains(tag, "i16"):
		space += 2 * r.Count
	case strings.Contains(tag, "u8") || strings.Contains(tag, "i8"):
		space += 1 * r.Count
	case tag == "Str":
		space += r.Count
	case tag == "boolean":
		space += r.Count
	}
	return space
}
