package build

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/model"
)

// processAssignStmt handles `lhs.field = rhs`, per spec.md §4.4's
// assignment rules, grounded on original_source's Expr::Assign arm in
// program_instruction.rs. The left side always resolves through
// ctx.accounts.<account>.<field> and marks the account mutable.
func (b *Builder) processAssignStmt(ix *model.ProgramInstruction, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument, stmt ast.AssignStmt) error {
	left, ok := stmt.Left.(ast.MemberExpr)
	if !ok {
		return fmt.Errorf("MemberNotFound: assignment target must be account.field")
	}
	obj, ok := left.Object.(ast.Ident)
	if !ok {
		return fmt.Errorf("IdentNotFound: assignment target object must be a bare identifier")
	}
	name := toSnake(obj.Name)
	acc, ok := accounts[name]
	if !ok {
		b.warnf("assignment to unrecognized account %q skipped", obj.Name)
		return nil
	}
	acc.IsMut = true

	rhs, err := b.renderAssignRHS(stmt.Right, accounts, scalarArgs)
	if err != nil {
		return err
	}
	ix.Body = append(ix.Body, fmt.Sprintf("ctx.accounts.%s.%s = %s;", name, toSnake(left.Property), rhs))
	return nil
}

// renderAssignRHS covers every right-hand-side shape spec.md §4.4
// names: a `new Type(n)` signed literal, a bare identifier, an
// `x.y.<op>(n)` arithmetic/comparison/conversion call, `x.getBump()`,
// `other.key`, and any other `other.field` member access.
func (b *Builder) renderAssignRHS(e ast.Expr, accounts map[string]*model.InstructionAccount, scalarArgs map[string]model.InstructionArgument) (string, error) {
	switch v := e.(type) {
	case ast.NewExpr:
		if len(v.Args) != 1 {
			return "", fmt.Errorf("MissingLiteral: new %s(...) expects exactly one numeric-literal argument", v.Type)
		}
		num, ok := v.Args[0].(ast.NumberLit)
		if !ok {
			return "", fmt.Errorf("MissingLiteral: new %s(...) argument must be a numeric literal", v.Type)
		}
		return formatNumber(num), nil

	case ast.Ident:
		return toSnake(v.Name), nil

	case ast.CallExpr:
		me, ok := v.Callee.(ast.MemberExpr)
		if !ok {
			return "", fmt.Errorf("MemberNotFound: unsupported assignment rhs call")
		}
		if me.Property == "getBump" {
			if obj, ok := me.Object.(ast.Ident); ok {
				return fmt.Sprintf("ctx.bumps.%s", toSnake(obj.Name)), nil
			}
		}
		if sub, ok := me.Object.(ast.MemberExpr); ok {
			if subObj, ok := sub.Object.(ast.Ident); ok {
				lhs := fmt.Sprintf("ctx.accounts.%s.%s", toSnake(subObj.Name), toSnake(sub.Property))
				return renderOpCall(me.Property, lhs, v.Args)
			}
		}
		return "", fmt.Errorf("UnsupportedExpression: unsupported assignment rhs call shape")

	case ast.MemberExpr:
		obj, ok := v.Object.(ast.Ident)
		if !ok {
			return "", fmt.Errorf("IdentNotFound: unsupported assignment rhs member expression")
		}
		name := toSnake(obj.Name)
		if _, isAccount := accounts[name]; isAccount && v.Property == "key" {
			return fmt.Sprintf("ctx.accounts.%s.key()", name), nil
		}
		return fmt.Sprintf("ctx.accounts.%s.%s", name, toSnake(v.Property)), nil

	default:
		return "", fmt.Errorf("UnsupportedExpression: unsupported assignment rhs")
	}
}

// renderOpCall handles the `x.y.<op>(literal)` family. toBytes ignores
// its argument, matching original_source's own arm (the literal exists
// only so the call parses as a method call in the source dialect).
func renderOpCall(op, lhs string, args []ast.Expr) (string, error) {
	if op == "toBytes" {
		return lhs + ".to_bytes()", nil
	}
	if len(args) != 1 {
		return "", fmt.Errorf("MissingLiteral: %s(...) expects exactly one numeric-literal argument", op)
	}
	num, ok := args[0].(ast.NumberLit)
	if !ok {
		return "", fmt.Errorf("MissingLiteral: %s(...) argument must be a numeric literal", op)
	}
	rhs := formatNumber(num)
	switch op {
	case "add":
		return lhs + " + " + rhs, nil
	case "sub":
		return lhs + " - " + rhs, nil
	case "mul":
		return lhs + " * " + rhs, nil
	case "div":
		return lhs + " / " + rhs, nil
	case "eq":
		return lhs + " == " + rhs, nil
	case "neq":
		return lhs + " != " + rhs, nil
	case "lt":
		return lhs + " < " + rhs, nil
	case "lte":
		return lhs + " <= " + rhs, nil
	case "gt":
		return lhs + " > " + rhs, nil
	case "gte":
		return lhs + " >= " + rhs, nil
	default:
		return "", fmt.Errorf("UnsupportedExpression: unrecognized operator %q", op)
	}
}
