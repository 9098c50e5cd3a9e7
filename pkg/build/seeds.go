package build

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/model"
)

// MissingBumpError is returned when a signer-seeds array's trailing
// element is not a recognizable bump source (`account.bumpField` or
// `account.getBump()`), per spec.md §4.4's unified seed walker.
type MissingBumpError struct{ Detail string }

func (e *MissingBumpError) Error() string { return fmt.Sprintf("MissingBump: %s", e.Detail) }

// walkSeeds is the single seed-walking routine shared by PDA-seed
// derivation (isSigner false) and CPI signer-seeds construction
// (isSigner true), parameterized by the one boolean the two modes
// differ on: in signer mode the final element must resolve to a bump
// source rather than an ordinary seed expression. Grounded on
// original_source's get_seeds, which original_source itself drives
// with a single is_signer_seeds flag rather than two separate walkers.
func (b *Builder) walkSeeds(elements []ast.Expr, isSigner bool, scalarArgs map[string]model.InstructionArgument) ([]string, []model.InstructionArgument, error) {
	if len(elements) == 0 {
		return nil, nil, nil
	}
	toks := make([]string, 0, len(elements))
	var attrs []model.InstructionArgument
	last := len(elements) - 1
	for i, el := range elements {
		if isSigner && i == last {
			tok, err := translateBumpElement(el)
			if err != nil {
				return nil, nil, err
			}
			toks = append(toks, tok)
			continue
		}
		tok, attr, err := translateSeedElement(el, isSigner, scalarArgs)
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, tok)
		if attr != nil {
			attrs = append(attrs, *attr)
		}
	}
	return toks, attrs, nil
}

// translateSeedElement renders one non-final seed-array element.
// Non-signer seeds render as literal text inside a `#[account(seeds =
// [...])]` field attribute, where `ctx` is not in scope, so member
// access and toBytes forms must be bare. Signer seeds render inside
// the instruction handler body, where `ctx` is in scope, and use the
// `ctx.accounts.`-rooted, to_account_info()-based forms. Grounded on
// original_source's get_seeds, which branches the same way on
// is_signer_seeds.
func translateSeedElement(e ast.Expr, isSigner bool, scalarArgs map[string]model.InstructionArgument) (string, *model.InstructionArgument, error) {
	switch v := e.(type) {
	case ast.StringLit:
		return fmt.Sprintf("b%q", v.Value), nil, nil

	case ast.Ident:
		name := toSnake(v.Name)
		if arg, ok := scalarArgs[name]; ok {
			return name, &arg, nil
		}
		return name, nil, nil

	case ast.MemberExpr:
		if v.Property == "key" {
			if obj, ok := v.Object.(ast.Ident); ok {
				if isSigner {
					return fmt.Sprintf("ctx.accounts.%s.to_account_info().key.as_ref()", toSnake(obj.Name)), nil, nil
				}
				return fmt.Sprintf("%s.key().as_ref()", toSnake(obj.Name)), nil, nil
			}
		}
		return "", nil, fmt.Errorf("UnsupportedSeedExpression: unsupported member access in seed position")

	case ast.CallExpr:
		me, ok := v.Callee.(ast.MemberExpr)
		if !ok || me.Property != "toBytes" {
			return "", nil, fmt.Errorf("UnsupportedSeedExpression: unsupported call in seed position")
		}
		path, err := renderAccessPath(me.Object, isSigner)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s.to_le_bytes().as_ref()", path), nil, nil

	default:
		return "", nil, fmt.Errorf("UnsupportedSeedExpression: unrecognized seed element")
	}
}

// translateBumpElement renders the mandatory final element of a
// signer-seeds array.
func translateBumpElement(e ast.Expr) (string, error) {
	switch v := e.(type) {
	case ast.MemberExpr:
		if obj, ok := v.Object.(ast.Ident); ok {
			return fmt.Sprintf("&[ctx.accounts.%s.%s]", toSnake(obj.Name), toSnake(v.Property)), nil
		}
	case ast.CallExpr:
		if me, ok := v.Callee.(ast.MemberExpr); ok && me.Property == "getBump" {
			if obj, ok := me.Object.(ast.Ident); ok {
				return fmt.Sprintf("&[ctx.bumps.%s]", toSnake(obj.Name)), nil
			}
		}
	}
	return "", &MissingBumpError{Detail: "final signer-seeds element must be account.bumpField or account.getBump()"}
}

// renderAccessPath renders `ident` or `ident.field` as an access path
// used by the toBytes seed case: ctx.accounts-rooted in signer mode,
// bare (no ctx in scope) in non-signer (struct-attribute) mode.
func renderAccessPath(e ast.Expr, isSigner bool) (string, error) {
	switch v := e.(type) {
	case ast.Ident:
		if isSigner {
			return "ctx.accounts." + toSnake(v.Name), nil
		}
		return toSnake(v.Name), nil
	case ast.MemberExpr:
		if obj, ok := v.Object.(ast.Ident); ok {
			if isSigner {
				return fmt.Sprintf("ctx.accounts.%s.%s", toSnake(obj.Name), toSnake(v.Property)), nil
			}
			return fmt.Sprintf("%s.%s", toSnake(obj.Name), toSnake(v.Property)), nil
		}
	}
	return "", fmt.Errorf("UnsupportedSeedExpression: unsupported access path")
}

// renderScalarExpr renders an identifier or numeric literal used as a
// plain scalar argument (a CPI amount/decimals token, or a Mint
// derive's authority/decimals/freeze-authority token), per
// original_source's get_rs_arg_from_ts_arg Ident/Lit(Num) cases.
func renderScalarExpr(e ast.Expr) (string, error) {
	switch v := e.(type) {
	case ast.Ident:
		return toSnake(v.Name), nil
	case ast.NumberLit:
		return formatNumber(v), nil
	case ast.MemberExpr:
		if obj, ok := v.Object.(ast.Ident); ok {
			return fmt.Sprintf("ctx.accounts.%s.%s", toSnake(obj.Name), toSnake(v.Property)), nil
		}
	}
	return "", fmt.Errorf("UnsupportedExpression: unsupported scalar argument expression")
}

// formatNumber renders a parsed numeric literal as Rust source text,
// dropping a trailing ".0" for values that parsed as whole numbers.
func formatNumber(n ast.NumberLit) string {
	if n.Value == float64(int64(n.Value)) {
		return fmt.Sprintf("%d", int64(n.Value))
	}
	return n.Raw
}
