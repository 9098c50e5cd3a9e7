// Package ast defines the syntax tree produced by pkg/parser for the
// restricted input dialect: import statements (discarded by the
// extractor), exported interfaces extending Account, and a single
// default-exported class whose methods become instructions.
package ast

// File is the root node: one compiled source file.
type File struct {
	Imports    []ImportDecl
	Interfaces []InterfaceDecl
	Class      *ClassDecl
}

// ImportDecl is `import { a, b as c } from "pkg"`. Parsed for
// completeness but discarded by the top-level extractor per the
// original dialect's own behavior.
type ImportDecl struct {
	Source string
	Names  []string
}

// InterfaceDecl is `export interface Name extends Account { ... }`.
type InterfaceDecl struct {
	Name    string
	Extends string
	Fields  []FieldDecl
	Line    int
}

// FieldDecl is one property signature inside an interface body.
type FieldDecl struct {
	Name string
	Type TypeExpr
}

// TypeExpr is a (possibly generic) type reference, e.g. `u64`,
// `Str<50>`, `Vec<Str<50>, 5>`.
type TypeExpr struct {
	Name     string
	Args     []TypeExpr // nested type arguments (e.g. the Str<50> inside Vec<Str<50>,5>)
	NumArg   *int       // a literal-number type argument (capacity/length), if present
	Optional bool
}

// ClassDecl is the single default-exported program class.
type ClassDecl struct {
	Name    string
	Members []ClassMember
	Line    int
}

// ClassMember is one class body member: either a static property or a method.
type ClassMember struct {
	Property *PropertyDecl
	Method   *MethodDecl
}

// PropertyDecl is a static class property, e.g. `static PROGRAM_ID = new Pubkey("...")`.
type PropertyDecl struct {
	Name   string
	Static bool
	Init   Expr
	Line   int
}

// MethodDecl is one instance method; each becomes one ProgramInstruction.
type MethodDecl struct {
	Name   string
	Params []Param
	Body   []Stmt
	Line   int
}

// Param is one method parameter.
type Param struct {
	Name string
	Type TypeExpr
}

// Stmt is a method-body statement.
type Stmt interface{ stmtNode() }

// ExprStmt wraps a bare expression used for its side effects (derive
// chains, init/close/has calls, SDK CPI calls).
type ExprStmt struct {
	X    Expr
	Line int
}

// AssignStmt is `lhs.field = rhs`.
type AssignStmt struct {
	Left  Expr
	Right Expr
	Line  int
}

// DeclStmt is a `let`/`const` local variable declaration. Reserved for
// future expansion (seed aliasing); currently parsed but ignored by
// the instruction builder.
type DeclStmt struct {
	Name string
	Init Expr
	Line int
}

// OtherStmt is any statement shape the restricted grammar does not
// otherwise name (e.g. if/while/return). The builder silently skips
// these, recording a warning per the documented open-question
// resolution; the parser still needs to consume and discard their
// tokens so a later statement in the same body is not misparsed.
type OtherStmt struct {
	Line int
}

func (ExprStmt) stmtNode()   {}
func (AssignStmt) stmtNode() {}
func (DeclStmt) stmtNode()   {}
func (OtherStmt) stmtNode()  {}

// Expr is any method-body expression.
type Expr interface{ exprNode() }

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Line int
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
	Raw   string
	Line  int
}

// StringLit is a string literal.
type StringLit struct {
	Value string
	Line  int
}

// ArrayLit is `[a, b, c]`.
type ArrayLit struct {
	Elements []Expr
	Line     int
}

// MemberExpr is `object.property`.
type MemberExpr struct {
	Object   Expr
	Property string
	Line     int
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Line   int
}

// NewExpr is `new TypeName(args...)`.
type NewExpr struct {
	Type string
	Args []Expr
	Line int
}

func (Ident) exprNode()      {}
func (NumberLit) exprNode()  {}
func (StringLit) exprNode() {}
func (ArrayLit) exprNode()   {}
func (MemberExpr) exprNode() {}
func (CallExpr) exprNode()   {}
func (NewExpr) exprNode()    {}
