package build

import "github.com/anchorize/anchorize/pkg/ast"

// callStep is one `.method(args)` link in a fluent method chain.
type callStep struct {
	Method string
	Args   []ast.Expr
}

// unfoldChain walks a nested CallExpr/MemberExpr tree produced for
// `obj.m1(a).m2(b).m3(c)` and returns the base identifier ("obj") plus
// the ordered list of chained calls, innermost (m1) first. Grounded on
// chazu-procyon's ir/builder.go recursive AST-walker pattern, adapted
// here to decompose the fluent derive().init()/has().close() call
// chains the restricted dialect uses as declarative constraint syntax
// instead of chazu-procyon's statement-sequencing use of the same shape.
func unfoldChain(e ast.Expr) (base string, calls []callStep) {
	switch v := e.(type) {
	case ast.CallExpr:
		me, ok := v.Callee.(ast.MemberExpr)
		if !ok {
			return "", nil
		}
		base, calls = unfoldChain(me.Object)
		calls = append(calls, callStep{Method: me.Property, Args: v.Args})
		return base, calls
	case ast.Ident:
		return v.Name, nil
	case ast.MemberExpr:
		return unfoldChain(v.Object)
	default:
		return "", nil
	}
}
