package build

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/model"
)

// processExprStmt handles one instruction-body expression statement:
// a bare SDK call (SystemProgram.transfer, TokenProgram.<method>) or a
// fluent constraint-declaration chain on an instruction account
// (derive/deriveWithBump, init, initIfNeeded, close, has), per
// spec.md §4.4.
func (b *Builder) processExprStmt(ix *model.ProgramInstruction, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument, expr ast.Expr) error {
	call, ok := expr.(ast.CallExpr)
	if !ok {
		b.warnf("statement is not a call expression, skipped")
		return nil
	}
	base, chain := unfoldChain(call)
	if base == "" || len(chain) == 0 {
		b.warnf("unrecognized call chain shape, skipped")
		return nil
	}

	if base == "SystemProgram" && len(chain) == 1 && chain[0].Method == "transfer" {
		return b.emitSystemTransfer(ix, accounts, scalarArgs, chain[0].Args)
	}
	if base == "TokenProgram" && len(chain) == 1 {
		return b.emitTokenProgramCall(ix, accounts, scalarArgs, chain[0].Method, chain[0].Args)
	}

	acc, ok := accounts[toSnake(base)]
	if !ok {
		b.warnf("constraint chain on unrecognized account %q skipped", base)
		return nil
	}

	for _, step := range chain {
		switch step.Method {
		case "derive", "deriveWithBump":
			if err := b.applyDerive(ix, acc, step, scalarArgs); err != nil {
				return err
			}
		case "init":
			acc.IsInit = true
			ix.UsesSystemProgram = true
			setPayer(acc, step.Args)
		case "initIfNeeded":
			acc.IsInitIfNeeded = true
			ix.UsesSystemProgram = true
			setPayer(acc, step.Args)
		case "close":
			acc.IsClose = true
			acc.IsMut = true
			if len(step.Args) > 0 {
				if id, ok := step.Args[0].(ast.Ident); ok {
					acc.Close = toSnake(id.Name)
				}
			}
		case "has":
			if len(step.Args) > 0 {
				if arr, ok := step.Args[0].(ast.ArrayLit); ok {
					for _, el := range arr.Elements {
						if id, ok := el.(ast.Ident); ok {
							acc.HasOne = append(acc.HasOne, toSnake(id.Name))
						}
					}
				}
			}
		default:
			b.warnf("unrecognized chained method %q on account %q skipped", step.Method, base)
		}
	}
	return nil
}

func setPayer(acc *model.InstructionAccount, args []ast.Expr) {
	if len(args) == 0 {
		return
	}
	if id, ok := args[0].(ast.Ident); ok {
		acc.Payer = toSnake(id.Name)
	}
}

// applyDerive handles one derive/deriveWithBump call, branching on the
// account's source tag per spec.md §4.4: associated-token accounts
// take (mint, authority); plain token accounts take (seeds, mint,
// authority); Mint accounts take (seeds, authority, decimals[,
// freeze-authority]); everything else takes a plain PDA seed array.
// deriveWithBump additionally consumes a trailing bump-source argument.
func (b *Builder) applyDerive(ix *model.ProgramInstruction, acc *model.InstructionAccount, step callStep, scalarArgs map[string]model.InstructionArgument) error {
	args := step.Args
	withBump := step.Method == "deriveWithBump"
	var bumpExpr ast.Expr
	if withBump {
		if len(args) == 0 {
			return fmt.Errorf("ArgumentCountMismatch: deriveWithBump requires a trailing bump-source argument")
		}
		bumpExpr = args[len(args)-1]
		args = args[:len(args)-1]
	}

	switch acc.SourceTag {
	case "AssociatedTokenAccount":
		if len(args) < 2 {
			return fmt.Errorf("ArgumentCountMismatch: associated-token derive requires (mint, authority)")
		}
		mint, err := identArg(args[0])
		if err != nil {
			return err
		}
		authority, err := renderScalarExpr(args[1])
		if err != nil {
			return err
		}
		acc.Ata = &model.AtaDescriptor{Mint: toSnake(mint), Authority: authority, IsATA: true}
		acc.IsMut = true

	case "TokenAccount":
		if len(args) < 3 {
			return fmt.Errorf("ArgumentCountMismatch: token-account derive requires (seeds, mint, authority)")
		}
		if err := b.applySeedArg(ix, acc, args[0], scalarArgs); err != nil {
			return err
		}
		mint, err := identArg(args[1])
		if err != nil {
			return err
		}
		authority, err := renderScalarExpr(args[2])
		if err != nil {
			return err
		}
		acc.Ata = &model.AtaDescriptor{Mint: toSnake(mint), Authority: authority, IsATA: false}
		acc.IsMut = true

	case "Mint":
		if len(args) > 0 {
			if arr, ok := args[0].(ast.ArrayLit); ok && len(arr.Elements) > 0 {
				if err := b.applySeedArg(ix, acc, args[0], scalarArgs); err != nil {
					return err
				}
			}
		}
		if len(args) >= 3 {
			authority, err := renderScalarExpr(args[1])
			if err != nil {
				return err
			}
			decimals, err := renderScalarExpr(args[2])
			if err != nil {
				return err
			}
			mint := &model.MintDescriptor{MintAuthorityToken: authority, DecimalsToken: decimals}
			if len(args) >= 4 {
				freeze, err := renderScalarExpr(args[3])
				if err != nil {
					return err
				}
				mint.FreezeAuthorityToken = freeze
			}
			acc.Mint = mint
		}
		acc.IsMut = true

	default:
		if len(args) < 1 {
			return fmt.Errorf("ArgumentCountMismatch: derive requires a seed array argument")
		}
		if err := b.applySeedArg(ix, acc, args[0], scalarArgs); err != nil {
			return err
		}
	}

	if withBump {
		expr, err := renderBumpSource(bumpExpr)
		if err != nil {
			return err
		}
		acc.Bump = "bump = " + expr
	} else {
		acc.Bump = "bump"
	}
	return nil
}

func (b *Builder) applySeedArg(ix *model.ProgramInstruction, acc *model.InstructionAccount, e ast.Expr, scalarArgs map[string]model.InstructionArgument) error {
	arr, ok := e.(ast.ArrayLit)
	if !ok {
		return fmt.Errorf("UnsupportedExpression: derive's seed argument must be an array literal")
	}
	toks, attrs, err := b.walkSeeds(arr.Elements, false, scalarArgs)
	if err != nil {
		return err
	}
	acc.Seeds = toks
	ix.InstructionAttributes = append(ix.InstructionAttributes, attrs...)
	return nil
}

func identArg(e ast.Expr) (string, error) {
	id, ok := e.(ast.Ident)
	if !ok {
		return "", fmt.Errorf("IdentNotFound: expected a bare identifier")
	}
	return id.Name, nil
}

// renderBumpSource renders deriveWithBump's trailing bump-source
// argument, which names a previously-parsed field: `foo.bar`.
func renderBumpSource(e ast.Expr) (string, error) {
	m, ok := e.(ast.MemberExpr)
	if !ok {
		return "", fmt.Errorf("UnsupportedExpression: deriveWithBump's bump source must be a member expression")
	}
	obj, ok := m.Object.(ast.Ident)
	if !ok {
		return "", fmt.Errorf("IdentNotFound: deriveWithBump's bump source object must be a bare identifier")
	}
	return fmt.Sprintf("%s.%s", toSnake(obj.Name), toSnake(m.Property)), nil
}
