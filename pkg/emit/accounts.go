package emit

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/model"
)

// renderInstructionAccount renders one InstructionAccount's attribute
// line(s) and field declaration, in the authoritative order grounded
// on original_source's InstructionAccount::to_tokens: one of init,
// init_if_needed or mut, then seeds, then ata/mint constraint
// groups, then has_one list, then bump, then close. UncheckedAccount
// gets a leading `/// CHECK:` doc comment, matching Anchor's own
// safety-lint requirement.
func renderInstructionAccount(acc *model.InstructionAccount) string {
	var attrs []string
	switch {
	case acc.IsInit:
		attrs = append(attrs, "init", fmt.Sprintf("payer = %s", acc.Payer), fmt.Sprintf("space = %d", acc.Space))
	case acc.IsInitIfNeeded:
		attrs = append(attrs, "init_if_needed", fmt.Sprintf("payer = %s", acc.Payer))
		if acc.IsCustom {
			attrs = append(attrs, fmt.Sprintf("space = %d", acc.Space))
		}
	case acc.IsMut:
		attrs = append(attrs, "mut")
	}

	if len(acc.Seeds) > 0 {
		attrs = append(attrs, fmt.Sprintf("seeds = [%s]", strings.Join(acc.Seeds, ", ")))
	}

	if acc.Ata != nil {
		group := "token"
		if acc.Ata.IsATA {
			group = "associated_token"
		}
		attrs = append(attrs, fmt.Sprintf("%s::mint = %s", group, acc.Ata.Mint))
		attrs = append(attrs, fmt.Sprintf("%s::authority = %s", group, acc.Ata.Authority))
	}
	if acc.Mint != nil {
		attrs = append(attrs, fmt.Sprintf("mint::decimals = %s", acc.Mint.DecimalsToken))
		attrs = append(attrs, fmt.Sprintf("mint::authority = %s", acc.Mint.MintAuthorityToken))
		if acc.Mint.FreezeAuthorityToken != "" {
			attrs = append(attrs, fmt.Sprintf("mint::freeze_authority = %s", acc.Mint.FreezeAuthorityToken))
		}
	}
	for _, h := range acc.HasOne {
		attrs = append(attrs, fmt.Sprintf("has_one = %s", h))
	}
	if acc.Bump != "" {
		attrs = append(attrs, acc.Bump)
	}
	if acc.IsClose {
		attrs = append(attrs, fmt.Sprintf("close = %s", acc.Close))
	}

	var b strings.Builder
	if acc.SourceTag == "UncheckedAccount" {
		b.WriteString("    /// CHECK: This acc is safe\n")
	}
	if len(attrs) > 0 {
		b.WriteString("    #[account")
		b.WriteString(renderParenList("(", ")", attrs...))
		b.WriteString("]\n")
	}
	typeTok := acc.RustType
	if acc.Optional {
		typeTok = "Option<" + typeTok + ">"
	}
	fmt.Fprintf(&b, "    pub %s: %s,\n", acc.Name, typeTok)
	return b.String()
}

// orderedAccounts groups an instruction's accounts into init,
// init_if_needed, and other, preserving relative order within each
// group — the model-stage presorting that makes pkg/reorder's
// regex-based pass an idempotent safety net rather than the only line
// of defense, per SPEC_FULL.md §9.
func orderedAccounts(ix *model.ProgramInstruction) []*model.InstructionAccount {
	var initGroup, initIfNeededGroup, other []*model.InstructionAccount
	for _, acc := range ix.Accounts {
		switch {
		case acc.IsInit:
			initGroup = append(initGroup, acc)
		case acc.IsInitIfNeeded:
			initIfNeededGroup = append(initIfNeededGroup, acc)
		default:
			other = append(other, acc)
		}
	}
	out := make([]*model.InstructionAccount, 0, len(ix.Accounts))
	out = append(out, initGroup...)
	out = append(out, initIfNeededGroup...)
	out = append(out, other...)
	return out
}

// renderContextStruct builds the `#[derive(Accounts)] pub struct
// <Name>Context<'info> { ... }` block for one instruction, per
// original_source's accounts_to_tokens: the lifetime parameter only
// appears when the struct has at least one account field, and the
// associated-token/token/system program accounts are appended last
// in that fixed order.
func renderContextStruct(ix *model.ProgramInstruction) string {
	var b strings.Builder
	b.WriteString("#[derive(Accounts)]\n")
	if len(ix.InstructionAttributes) > 0 {
		parts := make([]string, len(ix.InstructionAttributes))
		for i, a := range ix.InstructionAttributes {
			parts[i] = fmt.Sprintf("%s: %s", a.Name, a.RustType)
		}
		b.WriteString("#[instruction")
		b.WriteString(renderParenList("(", ")", parts...))
		b.WriteString("]\n")
	}

	lifetime := ""
	if len(ix.Accounts) > 0 {
		lifetime = "<'info>"
	}
	fmt.Fprintf(&b, "pub struct %sContext%s {\n", toPascal(ix.Name), lifetime)
	for _, acc := range orderedAccounts(ix) {
		b.WriteString(renderInstructionAccount(acc))
	}
	if ix.UsesAssociatedTokenProgram {
		b.WriteString("    pub associated_token_program: Program<'info, AssociatedToken>,\n")
	}
	if ix.UsesTokenProgram {
		b.WriteString("    pub token_program: Program<'info, Token>,\n")
	}
	if ix.UsesSystemProgram {
		b.WriteString("    pub system_program: Program<'info, System>,\n")
	}
	b.WriteString("}\n")
	return b.String()
}
