package parser

import (
	"strconv"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/lexer"
)

// parseExpr parses a postfix chain rooted at one primary expression:
// identifiers, literals, `new Type(args)`, followed by any number of
// `.prop` and `(args)` suffixes. This is exactly the shape the
// instruction builder needs to unfold fluent chains like
// `account.derive([...]).init(payer)` into (obj, prop, chaincall*prop,
// derive_args).
func (p *Parser) parseExpr() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().IsPunct("."):
			p.advance()
			prop, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = ast.MemberExpr{Object: expr, Property: prop.Value, Line: prop.Line}
		case p.cur().IsPunct("("):
			line := p.cur().Line
			p.advance()
			var args []ast.Expr
			for !p.cur().IsPunct(")") {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur().IsPunct(",") {
					p.advance()
				}
			}
			p.advance() // )
			expr = ast.CallExpr{Callee: expr, Args: args, Line: line}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch {
	case tok.IsKeyword("new"):
		return p.parseNew()
	case tok.Type == lexer.TokNumber:
		p.advance()
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errf(tok, "malformed numeric literal %q", tok.Value)
		}
		return ast.NumberLit{Value: val, Raw: tok.Value, Line: tok.Line}, nil
	case tok.Type == lexer.TokString:
		p.advance()
		return ast.StringLit{Value: tok.Value, Line: tok.Line}, nil
	case tok.IsPunct("["):
		return p.parseArrayLit()
	case tok.IsPunct("("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tok.Type == lexer.TokIdent || tok.Type == lexer.TokKeyword:
		p.advance()
		return ast.Ident{Name: tok.Value, Line: tok.Line}, nil
	default:
		return nil, p.errf(tok, "unexpected token in expression: %s", tok)
	}
}

func (p *Parser) parseNew() (ast.Expr, error) {
	tok := p.advance() // new
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.cur().IsPunct("(") {
		p.advance()
		for !p.cur().IsPunct(")") {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().IsPunct(",") {
				p.advance()
			}
		}
		p.advance() // )
	}
	return ast.NewExpr{Type: name.Value, Args: args, Line: tok.Line}, nil
}

func (p *Parser) parseArrayLit() (ast.Expr, error) {
	tok := p.advance() // [
	var elems []ast.Expr
	for !p.cur().IsPunct("]") {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if p.cur().IsPunct(",") {
			p.advance()
		}
	}
	p.advance() // ]
	return ast.ArrayLit{Elements: elems, Line: tok.Line}, nil
}
