package emit

import (
	"strings"
	"testing"

	"github.com/anchorize/anchorize/pkg/build"
	"github.com/anchorize/anchorize/pkg/extract"
	"github.com/anchorize/anchorize/pkg/parser"
)

const counterSource = `
export interface CounterState extends Account {
  count: u64;
}

export default class Counter {
  static PROGRAM_ID = new Pubkey("11111111111111111111111111111111111111111");

  initialize(user: Signer, state: CounterState) {
    state.derive(["counter"]).init(user);
    state.count = new u64(0);
  }
}
`

func TestRenderCounterScenario(t *testing.T) {
	file, err := parser.ParseFile(counterSource)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	ex, err := extract.Extract(file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	pm, _, err := build.Populate(ex, nil)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	out, err := Render(pm)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		`declare_id!("11111111111111111111111111111111111111111");`,
		"pub mod counter {",
		"pub fn initialize(ctx: Context<InitializeContext>) -> Result<()> {",
		"ctx.accounts.state.count = 0;",
		"#[derive(Accounts)]",
		"pub struct InitializeContext<'info> {",
		`#[account(init, payer = user, space = 16, seeds = [b"counter"], bump)]`,
		"pub state: Account<'info, CounterState>,",
		"pub system_program: Program<'info, System>,",
		"#[account]\npub struct CounterState {",
		"pub count: u64,",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q\n--- full output ---\n%s", want, out)
		}
	}
}
