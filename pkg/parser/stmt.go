package parser

import "github.com/anchorize/anchorize/pkg/ast"

// parseStmt parses one method-body statement. The documented dialect
// only uses expression statements (derive chains, SDK calls) and field
// assignments; anything else (control flow, etc.) is tolerated
// syntactically and folded into an OtherStmt that the instruction
// builder skips with a warning, per the resolved open question in
// SPEC_FULL.md §9.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.cur().IsKeyword("let") || p.cur().IsKeyword("const"):
		return p.parseDeclStmt()
	case isControlWord(p.cur().Value):
		return p.skipUnknownStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func isControlWord(s string) bool {
	switch s {
	case "if", "while", "for", "return":
		return true
	default:
		return false
	}
}

func (p *Parser) parseDeclStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // let/const
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.cur().IsPunct("=") {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if p.cur().IsPunct(";") {
		p.advance()
	}
	return ast.DeclStmt{Name: name.Value, Init: init, Line: line}, nil
}

// skipUnknownStmt consumes one statement of an unsupported shape
// (if/while/for/return), balancing parens and braces so the parser
// stays in sync with the token stream, and returns an OtherStmt.
func (p *Parser) skipUnknownStmt() (ast.Stmt, error) {
	line := p.cur().Line
	parenDepth, braceDepth := 0, 0
	sawBrace := false
	for {
		switch {
		case p.cur().IsPunct("("):
			parenDepth++
		case p.cur().IsPunct(")"):
			parenDepth--
		case p.cur().IsPunct("{"):
			braceDepth++
			sawBrace = true
		case p.cur().IsPunct("}"):
			if braceDepth == 0 {
				return ast.OtherStmt{Line: line}, nil
			}
			braceDepth--
			if braceDepth == 0 && sawBrace {
				p.advance()
				return ast.OtherStmt{Line: line}, nil
			}
		case p.cur().IsPunct(";") && parenDepth == 0 && braceDepth == 0:
			p.advance()
			return ast.OtherStmt{Line: line}, nil
		}
		p.advance()
	}
}

func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	line := p.cur().Line
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().IsPunct("=") {
		p.advance()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return ast.AssignStmt{Left: left, Right: right, Line: line}, nil
	}
	if p.cur().IsPunct(";") {
		p.advance()
	}
	return ast.ExprStmt{X: left, Line: line}, nil
}
