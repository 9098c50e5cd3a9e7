package lexer

import "testing"

func TestTokenizeBasics(t *testing.T) {
	src := `export default class Vote {
	static PROGRAM_ID = new Pubkey("HC2oqz2pMeCwF1UxjPsy7VTYZtoGiXYfHhnhFxXTxeE5");
	initialize(user: Signer, state: VoteState) {
		state.derive(["vote"]).init(user);
	}
}`
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[len(toks)-1].Type != TokEOF {
		t.Fatalf("expected trailing EOF token, got %v", toks[len(toks)-1])
	}

	var kinds []Type
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	wantFirst := []Type{TokKeyword, TokKeyword, TokKeyword, TokIdent, TokPunct}
	for i, w := range wantFirst {
		if kinds[i] != w {
			t.Fatalf("token %d: got %s, want %s (%v)", i, kinds[i], w, toks[i])
		}
	}
}

func TestTokenizeStringAndNumber(t *testing.T) {
	toks, err := New(`"vote" 50 3.14`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Type != TokString || toks[0].Value != "vote" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Type != TokNumber || toks[1].Value != "50" {
		t.Fatalf("got %v", toks[1])
	}
	if toks[2].Type != TokNumber || toks[2].Value != "3.14" {
		t.Fatalf("got %v", toks[2])
	}
}

func TestUnterminatedStringFails(t *testing.T) {
	_, err := New(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("expected error for unterminated string literal")
	}
}
