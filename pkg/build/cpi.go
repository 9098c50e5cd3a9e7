package build

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/model"
	"github.com/anchorize/anchorize/pkg/sdk"
)

// emitSystemTransfer handles `SystemProgram.transfer(from, to, amount
// [, seeds])`, per spec.md §4.4. A fourth positional seed-array
// argument is required exactly when the `from` account carries
// recorded PDA seeds, and triggers a signed CPI invocation.
func (b *Builder) emitSystemTransfer(ix *model.ProgramInstruction, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument, callArgs []ast.Expr) error {
	if len(callArgs) < 3 {
		return fmt.Errorf("ArgumentCountMismatch: SystemProgram.transfer requires at least 3 arguments")
	}
	fromIdent, ok := callArgs[0].(ast.Ident)
	if !ok {
		return fmt.Errorf("IdentNotFound: SystemProgram.transfer's first argument must be an account identifier")
	}
	toIdent, ok := callArgs[1].(ast.Ident)
	if !ok {
		return fmt.Errorf("IdentNotFound: SystemProgram.transfer's second argument must be an account identifier")
	}
	from, to := toSnake(fromIdent.Name), toSnake(toIdent.Name)
	amount, err := renderScalarExpr(callArgs[2])
	if err != nil {
		return err
	}

	b.pm.Imports.Add("anchor_lang", "system_program", "Transfer")
	b.pm.Imports.Add("anchor_lang", "system_program", "transfer")
	ix.UsesSystemProgram = true

	structLit := fmt.Sprintf("Transfer {\n    from: ctx.accounts.%s.to_account_info(),\n    to: ctx.accounts.%s.to_account_info(),\n}", from, to)

	var body strings.Builder
	if fromAcc := accounts[from]; fromAcc != nil && len(fromAcc.Seeds) > 0 {
		if len(callArgs) < 4 {
			return fmt.Errorf("MissingSignerSeeds: SystemProgram.transfer from a PDA account requires a trailing seed array")
		}
		arr, ok := callArgs[3].(ast.ArrayLit)
		if !ok {
			return fmt.Errorf("UnsupportedExpression: SystemProgram.transfer's fourth argument must be a seed array literal")
		}
		seedToks, _, err := b.walkSeeds(arr.Elements, true, scalarArgs)
		if err != nil {
			return err
		}
		fmt.Fprintf(&body, "let signer_seeds: &[&[&[u8]]; 1] = &[&[%s]];\n", strings.Join(seedToks, ", "))
		fmt.Fprintf(&body, "let cpi_accounts = %s;\n", structLit)
		body.WriteString("let cpi_ctx = CpiContext::new_with_signer(ctx.accounts.system_program.to_account_info(), cpi_accounts, signer_seeds);\n")
	} else {
		fmt.Fprintf(&body, "let cpi_accounts = %s;\n", structLit)
		body.WriteString("let cpi_ctx = CpiContext::new(ctx.accounts.system_program.to_account_info(), cpi_accounts);\n")
	}
	fmt.Fprintf(&body, "anchor_lang::system_program::transfer(cpi_ctx, %s)?;", amount)

	ix.Body = append(ix.Body, body.String())
	return nil
}

// emitTokenProgramCall dispatches `TokenProgram.<method>(...)` over
// the fixed table in pkg/sdk, per spec.md §4.4.
func (b *Builder) emitTokenProgramCall(ix *model.ProgramInstruction, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument, method string, callArgs []ast.Expr) error {
	spec, ok := sdk.TokenProgramMethods[method]
	if !ok {
		b.warnf("unrecognized TokenProgram method %q skipped", method)
		return nil
	}
	need := spec.ArgCount()
	if len(callArgs) < need {
		return fmt.Errorf("ArgumentCountMismatch: TokenProgram.%s requires at least %d arguments", method, need)
	}

	idx := 0
	fieldAccounts := make(map[string]string, len(spec.AccountFields))
	for _, field := range spec.AccountFields {
		id, ok := callArgs[idx].(ast.Ident)
		if !ok {
			return fmt.Errorf("IdentNotFound: TokenProgram.%s's %q argument must be an account identifier", method, field)
		}
		fieldAccounts[field] = toSnake(id.Name)
		idx++
	}
	var amountTok, decimalsTok string
	var err error
	if spec.HasAmount {
		if amountTok, err = renderScalarExpr(callArgs[idx]); err != nil {
			return err
		}
		idx++
	}
	if spec.HasDecimals {
		if decimalsTok, err = renderScalarExpr(callArgs[idx]); err != nil {
			return err
		}
		idx++
	}

	b.pm.Imports.Add("anchor_spl", "token", spec.Func)
	b.pm.Imports.Add("anchor_spl", "token", spec.AnchorStruct)
	ix.UsesTokenProgram = true

	// token::Transfer/transfer are aliased unconditionally on import
	// (see model.ImportSet.Add) to avoid colliding with
	// system_program::Transfer/transfer; the CPI body must call
	// through the same aliased names or the `use` rename leaves them
	// unresolved.
	structName, funcName := spec.AnchorStruct, spec.Func
	if structName == "Transfer" {
		structName = "TransferSPL"
	}
	if funcName == "transfer" {
		funcName = "transfer_spl"
	}

	var structFields []string
	for _, f := range spec.AccountFields {
		structFields = append(structFields, fmt.Sprintf("    %s: ctx.accounts.%s.to_account_info(),", f, fieldAccounts[f]))
	}
	structLit := fmt.Sprintf("%s {\n%s\n}", structName, strings.Join(structFields, "\n"))

	var body strings.Builder
	gateAcc := accounts[fieldAccounts[spec.SeedGateField]]
	if gateAcc != nil && len(gateAcc.Seeds) > 0 {
		if len(callArgs) <= idx {
			return fmt.Errorf("MissingSignerSeeds: TokenProgram.%s requires a trailing seed array for a PDA %s", method, spec.SeedGateField)
		}
		arr, ok := callArgs[idx].(ast.ArrayLit)
		if !ok {
			return fmt.Errorf("UnsupportedExpression: TokenProgram.%s's trailing argument must be a seed array literal", method)
		}
		seedToks, _, err := b.walkSeeds(arr.Elements, true, scalarArgs)
		if err != nil {
			return err
		}
		fmt.Fprintf(&body, "let signer_seeds: &[&[&[u8]]; 1] = &[&[%s]];\n", strings.Join(seedToks, ", "))
		fmt.Fprintf(&body, "let cpi_accounts = %s;\n", structLit)
		body.WriteString("let cpi_ctx = CpiContext::new_with_signer(ctx.accounts.token_program.to_account_info(), cpi_accounts, signer_seeds);\n")
	} else {
		fmt.Fprintf(&body, "let cpi_accounts = %s;\n", structLit)
		body.WriteString("let cpi_ctx = CpiContext::new(ctx.accounts.token_program.to_account_info(), cpi_accounts);\n")
	}

	callParts := []string{"cpi_ctx"}
	if spec.HasAmount {
		callParts = append(callParts, amountTok)
	}
	if spec.HasDecimals {
		callParts = append(callParts, decimalsTok)
	}
	fmt.Fprintf(&body, "%s(%s)?;", funcName, strings.Join(callParts, ", "))

	ix.Body = append(ix.Body, body.String())
	return nil
}
