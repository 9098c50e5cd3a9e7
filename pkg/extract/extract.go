// Package extract implements component §4.1, the top-level
// extractor: partition a parsed file into its discarded imports, the
// single default-exported program class, and a table of custom
// account types built from exported interfaces. Grounded on
// original_source's transpiler.rs top-level match loop and
// rs_types/program_account.rs's from_ts_expr (the "must extend
// Account" check and the space-computing field walk).
package extract

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/model"
	"github.com/anchorize/anchorize/pkg/types"
)

// Error is the typed failure for structural violations at the
// top level: missing program class, or an interface that does not
// extend the sentinel base.
type Error struct {
	Category string
	Detail   string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Category, e.Detail) }

// Extracted is the output of §4.1: the discarded import list (kept
// only for diagnostics — nothing downstream reads it, matching the
// original dialect's own "collected but unused" treatment), the
// program class expression, and the custom-type table keyed by name.
type Extracted struct {
	Imports     []ast.ImportDecl
	Class       *ast.ClassDecl
	CustomTypes map[string]*model.ProgramAccount
	// CustomTypeOrder preserves interface declaration order, since
	// CustomTypes is keyed by name for O(1) lookup during type
	// resolution and loses that order.
	CustomTypeOrder []string
}

// sentinelBase is the required `extends` target for every exported
// custom account interface.
const sentinelBase = "Account"

// Extract partitions a parsed file per spec.md §4.1.
func Extract(file *ast.File) (*Extracted, error) {
	if file.Class == nil {
		return nil, &Error{Category: "StructuralError", Detail: "program class undefined: no default-exported class found"}
	}

	customTypes := map[string]*model.ProgramAccount{}
	var order []string
	for _, iface := range file.Interfaces {
		if iface.Extends != sentinelBase {
			return nil, &Error{
				Category: "StructuralError",
				Detail:   fmt.Sprintf("interface %q must extend %q, got %q", iface.Name, sentinelBase, iface.Extends),
			}
		}
		acc, err := buildProgramAccount(iface, customTypes)
		if err != nil {
			return nil, err
		}
		customTypes[acc.Name] = acc
		order = append(order, acc.Name)
	}

	return &Extracted{Imports: file.Imports, Class: file.Class, CustomTypes: customTypes, CustomTypeOrder: order}, nil
}

// buildProgramAccount computes a custom state type's field list and
// byte-space budget, per spec.md §3 and original_source's
// ProgramAccount::from_ts_expr.
func buildProgramAccount(iface ast.InterfaceDecl, known map[string]*model.ProgramAccount) (*model.ProgramAccount, error) {
	knownNames := map[string]bool{}
	for name := range known {
		knownNames[name] = true
	}

	acc := &model.ProgramAccount{Name: iface.Name, Space: 8}
	for _, field := range iface.Fields {
		resolved, err := types.Resolve(field.Type, knownNames, nil)
		if err != nil {
			return nil, &Error{Category: "TypeError", Detail: fmt.Sprintf("field %q of %q: %v", field.Name, iface.Name, err)}
		}
		acc.Fields = append(acc.Fields, model.ProgramAccountField{Name: field.Name, RustType: resolved.RustType})
		acc.Space += types.FieldSpace(resolved)
	}
	return acc, nil
}
