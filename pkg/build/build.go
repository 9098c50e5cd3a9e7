// Package build implements spec.md §4.3 (the program populator) and
// §4.4 (the instruction builder) — the core of the compiler: walking
// the extracted class's static PROGRAM_ID property and instance
// methods into a populated model.ProgramModule. Grounded on
// chazu-procyon's pkg/ir/builder.go (a scope-carrying, big-switch
// AST-walker) and, for the instruction semantics themselves,
// original_source's rs_types/program_instruction.rs from_class_method.
package build

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/extract"
	"github.com/anchorize/anchorize/pkg/model"
	"github.com/anchorize/anchorize/pkg/types"
)

// Diagnostics accumulates non-fatal findings from a build pass:
// skipped statements and unrecognized call shapes are recorded as
// warnings rather than aborting the compile, per the resolved
// open-question that unknown constructs are silently tolerated.
// SkippedMethods records which instructions had at least one such
// statement skipped, mirroring the teacher's own SkippedMethod
// bookkeeping so a driver can report "N compiled, M skipped".
type Diagnostics struct {
	Warnings       []string
	SkippedMethods []SkippedMethod
}

// SkippedMethod names one instruction method that was still emitted
// in full (with a best-effort body) but had at least one statement it
// could not fully interpret.
type SkippedMethod struct {
	Selector string
	Reason   string
}

func (d *Diagnostics) add(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Builder carries the in-progress module and diagnostics across the
// recursive helpers in chain.go, derive.go, cpi.go, and assign.go.
type Builder struct {
	pm        *model.ProgramModule
	diag      *Diagnostics
	overrides map[string]string
}

func (b *Builder) warnf(format string, args ...any) { b.diag.add(format, args...) }

// Populate builds a complete model.ProgramModule from an extracted
// file, per spec.md §4.3: locate PROGRAM_ID, carry over the custom
// type table, and build one ProgramInstruction per method. overrides
// is the workspace's `.anchorize.yaml` accountKindOverrides map,
// consulted by types.Resolve when classifying a method parameter's
// type name.
func Populate(ex *extract.Extracted, overrides map[string]string) (*model.ProgramModule, *Diagnostics, error) {
	pm := model.NewProgramModule()
	diag := &Diagnostics{}
	b := &Builder{pm: pm, diag: diag, overrides: overrides}

	pm.Name = ex.Class.Name
	pm.CustomTypes = ex.CustomTypes
	for _, name := range ex.CustomTypeOrder {
		pm.Accounts = append(pm.Accounts, ex.CustomTypes[name])
	}

	sawProgramID := false
	for _, member := range ex.Class.Members {
		if member.Property != nil {
			if member.Property.Name != "PROGRAM_ID" {
				return nil, nil, fmt.Errorf("StructuralError: unrecognized static property %q on %s", member.Property.Name, ex.Class.Name)
			}
			if sawProgramID {
				return nil, nil, fmt.Errorf("StructuralError: multiple PROGRAM_ID declarations on %s", ex.Class.Name)
			}
			id, err := extractProgramID(member.Property.Init)
			if err != nil {
				return nil, nil, err
			}
			pm.ID = id
			sawProgramID = true
			continue
		}

		ix, err := b.buildInstruction(member.Method)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %q: %w", member.Method.Name, err)
		}
		pm.Instructions = append(pm.Instructions, ix)
	}

	return pm, diag, nil
}

// extractProgramID requires `static PROGRAM_ID = new Pubkey("...")`.
func extractProgramID(init ast.Expr) (string, error) {
	ne, ok := init.(ast.NewExpr)
	if !ok || ne.Type != "Pubkey" {
		return "", fmt.Errorf("StructuralError: PROGRAM_ID must be initialized with new Pubkey(\"...\")")
	}
	if len(ne.Args) != 1 {
		return "", fmt.Errorf("StructuralError: Pubkey(...) for PROGRAM_ID takes exactly one string argument")
	}
	lit, ok := ne.Args[0].(ast.StringLit)
	if !ok {
		return "", fmt.Errorf("StructuralError: PROGRAM_ID's Pubkey(...) argument must be a string literal")
	}
	return lit.Value, nil
}

// buildInstruction turns one class method into a ProgramInstruction:
// classify its parameters (§4.4's parameter-classification rules),
// then interpret its body statements in order.
func (b *Builder) buildInstruction(method *ast.MethodDecl) (*model.ProgramInstruction, error) {
	ix := &model.ProgramInstruction{Name: toSnake(method.Name)}
	accounts := map[string]*model.InstructionAccount{}
	scalarArgs := map[string]model.InstructionArgument{}

	customNames := map[string]bool{}
	for name := range b.pm.CustomTypes {
		customNames[name] = true
	}

	for _, param := range method.Params {
		resolved, err := types.Resolve(param.Type, customNames, b.overrides)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", param.Name, err)
		}
		name := toSnake(param.Name)

		if rustType, isAccountTag := types.IsAccountTag(resolved.SourceTag); isAccountTag {
			acc := &model.InstructionAccount{
				Name: name, RustType: rustType, SourceTag: resolved.SourceTag, Optional: resolved.Optional,
			}
			switch resolved.SourceTag {
			case "Signer":
				ix.SignerAccount = name
				acc.IsMut = true
			case "SystemAccount":
				acc.IsMut = true
				ix.UsesSystemProgram = true
			case "AssociatedTokenAccount":
				ix.UsesTokenProgram = true
				ix.UsesAssociatedTokenProgram = true
				b.pm.Imports.Add("anchor_spl", "associated_token", "AssociatedToken")
				b.pm.Imports.Add("anchor_spl", "token", "Token")
				b.pm.Imports.Add("anchor_spl", "token", "TokenAccount")
			case "Mint":
				acc.IsMut = true
				ix.UsesTokenProgram = true
				b.pm.Imports.Add("anchor_spl", "token", "Mint")
				b.pm.Imports.Add("anchor_spl", "token", "Token")
			case "TokenAccount":
				ix.UsesTokenProgram = true
				b.pm.Imports.Add("anchor_spl", "token", "TokenAccount")
				b.pm.Imports.Add("anchor_spl", "token", "Token")
			}
			accounts[name] = acc
			ix.Accounts = append(ix.Accounts, acc)
			continue
		}

		if custom, isCustom := b.pm.CustomTypes[resolved.SourceTag]; isCustom {
			acc := &model.InstructionAccount{
				Name: name, RustType: resolved.RustType, SourceTag: resolved.SourceTag,
				Optional: resolved.Optional, IsCustom: true, Space: custom.Space,
			}
			ix.UsesSystemProgram = true
			accounts[name] = acc
			ix.Accounts = append(ix.Accounts, acc)
			continue
		}

		arg := model.InstructionArgument{Name: name, RustType: resolved.RustType, Optional: resolved.Optional}
		ix.Args = append(ix.Args, arg)
		scalarArgs[name] = arg
	}

	warningsBefore := len(b.diag.Warnings)
	for _, stmt := range method.Body {
		if err := b.processStmt(ix, accounts, scalarArgs, stmt); err != nil {
			return nil, err
		}
	}
	if len(b.diag.Warnings) > warningsBefore {
		b.diag.SkippedMethods = append(b.diag.SkippedMethods, SkippedMethod{
			Selector: method.Name,
			Reason:   b.diag.Warnings[warningsBefore],
		})
	}

	ix.InstructionAttributes = dedupeArgs(ix.InstructionAttributes)
	return ix, nil
}

func (b *Builder) processStmt(ix *model.ProgramInstruction, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument, stmt ast.Stmt) error {
	switch v := stmt.(type) {
	case ast.ExprStmt:
		return b.processExprStmt(ix, accounts, scalarArgs, v.X)
	case ast.AssignStmt:
		return b.processAssignStmt(ix, accounts, scalarArgs, v)
	case ast.DeclStmt:
		return nil
	case ast.OtherStmt:
		b.warnf("statement at line %d of unrecognized shape skipped", v.Line)
		return nil
	default:
		b.warnf("statement of unrecognized Go type skipped")
		return nil
	}
}

func dedupeArgs(args []model.InstructionArgument) []model.InstructionArgument {
	if len(args) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []model.InstructionArgument
	for _, a := range args {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}
