// Package emit implements component §4.5, the token-tree emitter:
// rendering a populated model.ProgramModule into Anchor Rust source
// text. Grounded on original_source's ProgramModule::to_tokens for
// the authoritative section order (prelude import, computed use
// imports, declare_id!, #[program] mod block, account-context
// structs, state structs), and chazu-procyon's codegen.go for the
// overall "walk the populated model, build a token tree, stringify
// it" shape — adapted here to a Rust-shaped output grammar via
// jennifer's low-level token primitives (see jen.go) rather than its
// Go-syntax sugar, plus plain string templating for the block-level
// shapes (struct/fn/mod bodies) jennifer has no native model for.
package emit

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/model"
)

// Render produces the complete Rust source text for one compiled
// program module.
func Render(pm *model.ProgramModule) (string, error) {
	var b strings.Builder

	b.WriteString("use anchor_lang::prelude::*;\n")
	if !pm.Imports.Empty() {
		b.WriteString(renderImports(pm.Imports))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "declare_id!(%q);\n\n", pm.ID)

	fmt.Fprintf(&b, "#[program]\npub mod %s {\n", toSnakeModuleName(pm.Name))
	b.WriteString("    use super::*;\n\n")
	for _, ix := range pm.Instructions {
		b.WriteString(renderInstructionFn(ix))
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")

	for _, ix := range pm.Instructions {
		b.WriteString(renderContextStruct(ix))
		b.WriteString("\n")
	}

	for _, acc := range pm.Accounts {
		b.WriteString(renderAccountStruct(acc))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func toSnakeModuleName(pascal string) string {
	var out strings.Builder
	for i, r := range pascal {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
