package emit

import "github.com/dave/jennifer/jen"

// renderParenList renders a comma-separated, parenthesized token list
// using jennifer's low-level Custom/Options primitive rather than its
// Go-keyword sugar (Params, Call, etc, which assume Go syntax). jen.Id
// does not validate that its argument is a lexically valid Go
// identifier — it writes the string verbatim — so it doubles here as
// a raw-token injector for Rust-shaped fragments like `payer = user`
// or `space = 48`. This is the one piece of the emitter that goes
// through jennifer, per SPEC_FULL.md §9's jennifer-reuse decision;
// the surrounding block-level Rust shapes (struct bodies, fn
// signatures, mod blocks) are assembled with plain string formatting
// since jennifer's statement model has no block-level Rust grammar.
func renderParenList(open, close string, parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	items := make([]jen.Code, len(parts))
	for i, p := range parts {
		items[i] = jen.Id(p)
	}
	return jen.Custom(jen.Options{Open: open, Close: close, Separator: ", "}, items...).GoString()
}
