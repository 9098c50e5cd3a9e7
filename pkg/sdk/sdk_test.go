package sdk

import "testing"

func TestEveryMethodNamesAValidSeedGateField(t *testing.T) {
	for name, m := range TokenProgramMethods {
		found := false
		for _, f := range m.AccountFields {
			if f == m.SeedGateField {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("method %q: SeedGateField %q is not one of its AccountFields %v", name, m.SeedGateField, m.AccountFields)
		}
	}
}

func TestArgCount(t *testing.T) {
	cases := []struct {
		method string
		want   int
	}{
		{"transfer", 4},          // from, to, authority, amount
		{"burn", 4},              // mint, from, authority, amount
		{"mintTo", 4},            // mint, to, authority, amount
		{"approve", 4},           // to, delegate, authority, amount
		{"approveChecked", 6},    // to, mint, delegate, authority, amount, decimals
		{"closeAccount", 3},      // account, destination, authority
		{"freezeAccount", 3},     // account, mint, authority
		{"initializeAccount", 3}, // account, mint, authority
		{"revoke", 2},            // source, authority
		{"syncNative", 1},        // account
		{"thawAccount", 3},       // account, mint, authority
		{"transferChecked", 6},   // from, mint, to, authority, amount, decimals
	}
	for _, c := range cases {
		m, ok := TokenProgramMethods[c.method]
		if !ok {
			t.Fatalf("missing method %q", c.method)
		}
		if got := m.ArgCount(); got != c.want {
			t.Fatalf("%s.ArgCount() = %d, want %d", c.method, got, c.want)
		}
	}
}
