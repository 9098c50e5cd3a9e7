// Package parser is a recursive-descent parser over the token stream
// produced by pkg/lexer, the syntactic counterpart to chazu-procyon's
// own pkg/parser split between a generic expression parser and a
// dedicated class-shaped parser — the same split appears here as
// parser.go (file/class/interface grammar), stmt.go (statements) and
// expr.go (expressions).
package parser

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/ast"
	"github.com/anchorize/anchorize/pkg/lexer"
)

// ParseError is a typed parse failure carrying the offending token's
// position, matching the textual-category error style the rest of
// this compiler uses.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Parser consumes a token slice with one token of lookahead.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// ParseFile tokenizes and parses a complete source file.
func ParseFile(src string) (*ast.File, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseFile()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekN(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(tok lexer.Token, format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

func (p *Parser) expectPunct(val string) (lexer.Token, error) {
	if p.cur().IsPunct(val) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errf(p.cur(), "expected %q, got %s", val, p.cur())
}

func (p *Parser) expectKeyword(val string) (lexer.Token, error) {
	if p.cur().IsKeyword(val) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errf(p.cur(), "expected keyword %q, got %s", val, p.cur())
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	if p.cur().Type == lexer.TokIdent || p.cur().Type == lexer.TokKeyword {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errf(p.cur(), "expected identifier, got %s", p.cur())
}

func (p *Parser) parseFile() (*ast.File, error) {
	file := &ast.File{}
	for p.cur().Type != lexer.TokEOF {
		switch {
		case p.cur().IsKeyword("import"):
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imp)

		case p.cur().IsKeyword("export") && p.peekN(1).IsKeyword("default"):
			if file.Class != nil {
				return nil, p.errf(p.cur(), "multiple default-exported classes in one file")
			}
			p.advance() // export
			p.advance() // default
			class, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			file.Class = class

		case p.cur().IsKeyword("export") && p.peekN(1).IsKeyword("interface"):
			p.advance() // export
			iface, err := p.parseInterface()
			if err != nil {
				return nil, err
			}
			file.Interfaces = append(file.Interfaces, iface)

		default:
			return nil, p.errf(p.cur(), "invalid top-level syntax, cannot match token %s", p.cur())
		}
	}
	return file, nil
}

func (p *Parser) parseImport() (ast.ImportDecl, error) {
	p.advance() // import
	var names []string
	if _, err := p.expectPunct("{"); err != nil {
		return ast.ImportDecl{}, err
	}
	for !p.cur().IsPunct("}") {
		name, err := p.expectIdent()
		if err != nil {
			return ast.ImportDecl{}, err
		}
		local := name.Value
		if p.cur().IsKeyword("as") || (p.cur().Type == lexer.TokIdent && p.cur().Value == "as") {
			p.advance()
			alias, err := p.expectIdent()
			if err != nil {
				return ast.ImportDecl{}, err
			}
			local = alias.Value
		}
		names = append(names, local)
		if p.cur().IsPunct(",") {
			p.advance()
		}
	}
	p.advance() // }
	if _, err := p.expectKeyword("from"); err != nil {
		return ast.ImportDecl{}, err
	}
	src, err := p.expectString()
	if err != nil {
		return ast.ImportDecl{}, err
	}
	if p.cur().IsPunct(";") {
		p.advance()
	}
	return ast.ImportDecl{Source: src, Names: names}, nil
}

func (p *Parser) expectString() (string, error) {
	if p.cur().Type != lexer.TokString {
		return "", p.errf(p.cur(), "expected string literal, got %s", p.cur())
	}
	return p.advance().Value, nil
}

func (p *Parser) parseInterface() (ast.InterfaceDecl, error) {
	nameTok, err := p.expectKeyword("interface")
	if err != nil {
		return ast.InterfaceDecl{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return ast.InterfaceDecl{}, err
	}
	extends := ""
	if p.cur().IsKeyword("extends") {
		p.advance()
		ext, err := p.expectIdent()
		if err != nil {
			return ast.InterfaceDecl{}, err
		}
		extends = ext.Value
	}
	if _, err := p.expectPunct("{"); err != nil {
		return ast.InterfaceDecl{}, err
	}
	var fields []ast.FieldDecl
	for !p.cur().IsPunct("}") {
		field, err := p.parseField()
		if err != nil {
			return ast.InterfaceDecl{}, err
		}
		fields = append(fields, field)
		if p.cur().IsPunct(";") || p.cur().IsPunct(",") {
			p.advance()
		}
	}
	p.advance() // }
	return ast.InterfaceDecl{Name: name.Value, Extends: extends, Fields: fields, Line: nameTok.Line}, nil
}

func (p *Parser) parseField() (ast.FieldDecl, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.FieldDecl{}, err
	}
	optional := false
	if p.cur().IsPunct("?") {
		p.advance()
		optional = true
	}
	if _, err := p.expectPunct(":"); err != nil {
		return ast.FieldDecl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.FieldDecl{}, err
	}
	typ.Optional = optional
	return ast.FieldDecl{Name: name.Value, Type: typ}, nil
}

// parseType parses `Name` or `Name<Arg, Arg>` where each Arg is itself
// a type or a bare number literal (used for string/vector capacities).
func (p *Parser) parseType() (ast.TypeExpr, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.TypeExpr{}, err
	}
	t := ast.TypeExpr{Name: name.Value}
	if p.cur().IsPunct("<") {
		p.advance()
		for !p.cur().IsPunct(">") {
			if p.cur().Type == lexer.TokNumber {
				n := p.advance()
				var val int
				fmt.Sscanf(n.Value, "%d", &val)
				t.Args = append(t.Args, ast.TypeExpr{Name: n.Value, NumArg: &val})
			} else {
				inner, err := p.parseType()
				if err != nil {
					return ast.TypeExpr{}, err
				}
				t.Args = append(t.Args, inner)
			}
			if p.cur().IsPunct(",") {
				p.advance()
			}
		}
		p.advance() // >
	}
	return t, nil
}

func (p *Parser) parseClass() (*ast.ClassDecl, error) {
	tok, err := p.expectKeyword("class")
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDecl{Name: name.Value, Line: tok.Line}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for !p.cur().IsPunct("}") {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		class.Members = append(class.Members, member)
	}
	p.advance() // }
	return class, nil
}

func (p *Parser) parseClassMember() (ast.ClassMember, error) {
	isStatic := false
	if p.cur().IsKeyword("static") {
		p.advance()
		isStatic = true
	}
	name, err := p.expectIdent()
	if err != nil {
		return ast.ClassMember{}, err
	}

	if p.cur().IsPunct("=") {
		// Static (or instance) property: `NAME = <expr>;`
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return ast.ClassMember{}, err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return ast.ClassMember{Property: &ast.PropertyDecl{Name: name.Value, Static: isStatic, Init: init, Line: name.Line}}, nil
	}

	// Method: `name(params): RetType { body }` — the optional return
	// type annotation, if present, is parsed and discarded; it carries
	// no semantic weight for the instruction builder.
	method := &ast.MethodDecl{Name: name.Value, Line: name.Line}
	if _, err := p.expectPunct("("); err != nil {
		return ast.ClassMember{}, err
	}
	for !p.cur().IsPunct(")") {
		param, err := p.parseParam()
		if err != nil {
			return ast.ClassMember{}, err
		}
		method.Params = append(method.Params, param)
		if p.cur().IsPunct(",") {
			p.advance()
		}
	}
	p.advance() // )
	if p.cur().IsPunct(":") {
		p.advance()
		if _, err := p.parseType(); err != nil {
			return ast.ClassMember{}, err
		}
	}
	if _, err := p.expectPunct("{"); err != nil {
		return ast.ClassMember{}, err
	}
	for !p.cur().IsPunct("}") {
		stmt, err := p.parseStmt()
		if err != nil {
			return ast.ClassMember{}, err
		}
		method.Body = append(method.Body, stmt)
	}
	p.advance() // }
	return ast.ClassMember{Method: method}, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.Param{}, err
	}
	optional := false
	if p.cur().IsPunct("?") {
		p.advance()
		optional = true
	}
	if _, err := p.expectPunct(":"); err != nil {
		return ast.Param{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}
	typ.Optional = optional
	return ast.Param{Name: name.Value, Type: typ}, nil
}
