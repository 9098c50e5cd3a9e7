package compiler

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// The six fixtures below each exercise one end-to-end shape the rest
// of the package's unit tests don't individually cover: PDA
// initialization with a fixed-space custom account, a signed CPI off
// a derived vault, an init_if_needed account with a vector-of-strings
// field, a has_one/close escrow settlement, a long fixed-capacity
// string account, and a zero-account instruction. Each is captured as
// a go-snaps golden file and paired with assertions on the specific
// invariant it exists to pin down.

const voteSource = `
export interface VoteState extends Account {
  vote: i64;
  bump: u8;
}

export default class VoteProgram {
  static PROGRAM_ID = new Pubkey("Counter1111111111111111111111111111111111");

  initialize(user: Signer, state: VoteState) {
    state.derive(["vote"]).init(user);
    state.vote = new i64(0);
    state.bump = state.getBump();
  }

  increment(user: Signer, state: VoteState) {
    state.derive(["vote"]);
    state.vote = state.vote.add(1);
  }

  decrement(user: Signer, state: VoteState) {
    state.derive(["vote"]);
    state.vote = state.vote.sub(1);
  }
}
`

func TestCompileVoteCounterScenario(t *testing.T) {
	result, err := Compile(voteSource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "vote_counter", result.Code)

	for _, want := range []string{
		`declare_id!("Counter1111111111111111111111111111111111");`,
		"pub mod vote_program {",
		"pub fn initialize(ctx: Context<InitializeContext>) -> Result<()> {",
		"pub fn increment(ctx: Context<IncrementContext>) -> Result<()> {",
		"pub fn decrement(ctx: Context<DecrementContext>) -> Result<()> {",
		"pub struct VoteState {\n    pub vote: i64,\n    pub bump: u8,\n}",
	} {
		if !strings.Contains(result.Code, want) {
			t.Fatalf("output missing %q\n--- code ---\n%s", want, result.Code)
		}
	}
	for _, ctx := range []string{"InitializeContext", "IncrementContext", "DecrementContext"} {
		structText, found := extractStruct(result.Code, ctx)
		if !found {
			t.Fatalf("context struct %s not found", ctx)
		}
		if !strings.Contains(structText, `seeds = [b"vote"]`) || !strings.Contains(structText, "bump") {
			t.Fatalf("%s missing seeds/bump attrs:\n%s", ctx, structText)
		}
	}
	initStruct, _ := extractStruct(result.Code, "InitializeContext")
	if !strings.Contains(initStruct, "init") || !strings.Contains(initStruct, "payer = user") || !strings.Contains(initStruct, "space = 17") {
		t.Fatalf("InitializeContext missing init/payer/space = 17:\n%s", initStruct)
	}
	for _, ctx := range []string{"IncrementContext", "DecrementContext"} {
		structText, _ := extractStruct(result.Code, ctx)
		if strings.Contains(structText, "init") {
			t.Fatalf("%s should not carry init:\n%s", ctx, structText)
		}
	}
}

const vaultSource = `
export interface VaultState extends Account {
  vaultBump: u8;
}

export default class VaultProgram {
  static PROGRAM_ID = new Pubkey("Vault111111111111111111111111111111111111");

  initialize(user: Signer, state: VaultState, vault: SystemAccount) {
    state.derive(["state", user.key]).init(user);
    vault.derive(["vault", state.key]);
    state.vaultBump = vault.getBump();
  }

  withdraw(user: Signer, state: VaultState, vault: SystemAccount, amount: u64) {
    state.derive(["state", user.key]);
    vault.derive(["vault", state.key]);
    SystemProgram.transfer(vault, user, amount, ["vault", state.key, state.vaultBump]);
  }
}
`

func TestCompileVaultScenario(t *testing.T) {
	result, err := Compile(vaultSource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "vault_withdraw", result.Code)

	wantSignerSeeds := `let signer_seeds: &[&[&[u8]]; 1] = &[&[b"vault", ctx.accounts.state.to_account_info().key.as_ref(), &[ctx.accounts.state.vault_bump]]];`
	if !strings.Contains(result.Code, wantSignerSeeds) {
		t.Fatalf("output missing signed-seeds array\n--- code ---\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "CpiContext::new_with_signer(ctx.accounts.system_program.to_account_info(), cpi_accounts, signer_seeds);") {
		t.Fatalf("output missing new_with_signer CPI context\n--- code ---\n%s", result.Code)
	}
}

const favoritesSource = `
export interface Favorites extends Account {
  number: u64;
  color: Str<50>;
  hobbies: Vec<Str<50>, 5>;
}

export default class FavoritesProgram {
  static PROGRAM_ID = new Pubkey("Favorites111111111111111111111111111111111");

  setFavorites(user: Signer, favorites: Favorites, number: u64, color: Str<50>) {
    favorites.derive(["favorites", user.key]).initIfNeeded(user);
    favorites.number = number;
    favorites.color = color;
  }
}
`

func TestCompileFavoritesScenario(t *testing.T) {
	result, err := Compile(favoritesSource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "favorites_set", result.Code)

	structText, found := extractStruct(result.Code, "SetFavoritesContext")
	if !found {
		t.Fatalf("SetFavoritesContext not found\n--- code ---\n%s", result.Code)
	}
	if !strings.Contains(structText, "init_if_needed") || !strings.Contains(structText, "space = 344") {
		t.Fatalf("SetFavoritesContext missing init_if_needed/space = 344:\n%s", structText)
	}
}

const escrowSource = `
export interface EscrowState extends Account {
  maker: Pubkey;
  makerMint: Pubkey;
  takerMint: Pubkey;
  amount: u64;
  bump: u8;
}

export default class EscrowProgram {
  static PROGRAM_ID = new Pubkey("Escrow111111111111111111111111111111111111");

  make(maker: Signer, escrow: EscrowState, makerMint: Mint, takerMint: Mint, vault: AssociatedTokenAccount, amount: u64) {
    escrow.derive(["escrow", maker.key]).init(maker);
    escrow.maker = maker.key;
    escrow.makerMint = makerMint.key;
    escrow.takerMint = takerMint.key;
    escrow.amount = amount;
    escrow.bump = escrow.getBump();
    vault.derive(makerMint, escrow);
  }

  take(taker: Signer, maker: SystemAccount, auth: SystemAccount, escrow: EscrowState, makerMint: Mint, takerMint: Mint, vault: AssociatedTokenAccount) {
    escrow.derive(["escrow", maker.key]).has([maker, makerMint, takerMint]).close(maker);
    vault.derive(makerMint, auth);
  }
}
`

func TestCompileEscrowScenario(t *testing.T) {
	result, err := Compile(escrowSource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "escrow_take", result.Code)

	takeStruct, found := extractStruct(result.Code, "TakeContext")
	if !found {
		t.Fatalf("TakeContext not found\n--- code ---\n%s", result.Code)
	}
	for _, want := range []string{"has_one = maker", "has_one = maker_mint", "has_one = taker_mint", "close = maker"} {
		if !strings.Contains(takeStruct, want) {
			t.Fatalf("TakeContext missing %q:\n%s", want, takeStruct)
		}
	}
	if !strings.Contains(takeStruct, "associated_token::mint = maker_mint") || !strings.Contains(takeStruct, "associated_token::authority = auth") {
		t.Fatalf("TakeContext's vault missing ATA constraints on maker_mint/auth:\n%s", takeStruct)
	}
}

const chatSource = `
export interface ChatMessage extends Account {
  author: Pubkey;
  username: Str<32>;
  message: Str<500>;
  timestamp: i64;
  bump: u8;
}

export default class ChatProgram {
  static PROGRAM_ID = new Pubkey("Chat1111111111111111111111111111111111111");

  sendMessage(author: Signer, chat: ChatMessage, username: Str<32>, message: Str<500>, timestamp: i64) {
    chat.derive(["message", author.key]).init(author);
    chat.author = author.key;
    chat.username = username;
    chat.message = message;
    chat.timestamp = timestamp;
    chat.bump = chat.getBump();
  }
}
`

func TestCompileChatScenario(t *testing.T) {
	result, err := Compile(chatSource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "chat_send_message", result.Code)

	structText, found := extractStruct(result.Code, "SendMessageContext")
	if !found {
		t.Fatalf("SendMessageContext not found\n--- code ---\n%s", result.Code)
	}
	// 8 (discriminator) + 32 (author) + (4+32) (username) + (4+500) (message) + 8 (timestamp) + 1 (bump) = 589.
	if !strings.Contains(structText, "space = 589") {
		t.Fatalf("SendMessageContext missing space = 589:\n%s", structText)
	}
}

const emptySource = `
export default class EmptyProgram {
  static PROGRAM_ID = new Pubkey("Empty111111111111111111111111111111111111");

  ping() {
  }
}
`

func TestCompileEmptyInstructionScenario(t *testing.T) {
	result, err := Compile(emptySource, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.SkippedMethods) != 0 {
		t.Fatalf("unexpected skipped methods: %+v", result.SkippedMethods)
	}
	snaps.MatchSnapshot(t, "empty_ping", result.Code)

	if !strings.Contains(result.Code, "pub struct PingContext {\n}\n") {
		t.Fatalf("PingContext should have no <'info> lifetime (zero accounts):\n%s", result.Code)
	}
	if strings.Contains(result.Code, "PingContext<'info>") {
		t.Fatalf("PingContext should not carry a lifetime parameter:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "pub fn ping(ctx: Context<PingContext>) -> Result<()> {\n        Ok(())\n    }") {
		t.Fatalf("ping's body should contain only the terminal success return:\n%s", result.Code)
	}
}

// extractStruct returns the exact `pub struct <name>... { ... }` block
// (including its leading #[derive(Accounts)]/#[instruction(...)]
// attributes) from a rendered program's Rust source, by scanning
// backward from the struct's own header line to the nearest preceding
// blank line.
func extractStruct(code, name string) (string, bool) {
	marker := "struct " + name
	idx := strings.Index(code, marker)
	if idx == -1 {
		return "", false
	}
	start := strings.LastIndex(code[:idx], "\n\n")
	if start == -1 {
		start = 0
	} else {
		start += 2
	}
	end := strings.Index(code[idx:], "\n}\n")
	if end == -1 {
		return "", false
	}
	return code[start : idx+end+len("\n}\n")], true
}
