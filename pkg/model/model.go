// Package model holds the semantic data model of spec.md §3: one
// ProgramModule per compiled file, its custom ProgramAccount state
// types, and its ProgramInstructions with their InstructionAccounts
// and InstructionArguments. Grounded on original_source's
// rs_types/program_module.rs, rs_types/program_account.rs, and
// rs_types/program_instruction.rs, translated from Rust struct +
// quote! token-builder idiom into plain Go structs populated by
// pkg/build and rendered by pkg/emit.
package model

// ImportSet is the three-level `source-package -> symbol-group ->
// {symbol -> optional alias}` mapping from spec.md §3. Aliases
// disambiguate identically-named symbols pulled from different
// groups (the token-program Transfer/transfer collision with the
// system-program's own Transfer/transfer, per SPEC_FULL.md §9).
type ImportSet struct {
	// ordered package names, so emission is deterministic regardless
	// of map iteration order.
	order    []string
	packages map[string]*importPackage
}

type importPackage struct {
	order   []string
	members map[string]*importMember
}

type importMember struct {
	order   []string
	symbols map[string]string // symbol -> alias ("" if none)
}

// NewImportSet returns an empty import set.
func NewImportSet() *ImportSet {
	return &ImportSet{packages: map[string]*importPackage{}}
}

// Add registers one `srcPkg::member::symbol` import, applying the
// token-program Transfer/transfer aliasing rule unconditionally
// whenever the symbol belongs to the token program's "token" member,
// matching original_source's add_import exactly (see SPEC_FULL.md §9
// point 4 — the alias is not conditioned on a co-occurring
// system-program Transfer).
func (s *ImportSet) Add(srcPkg, member, symbol string) {
	alias := ""
	if member == "token" {
		switch symbol {
		case "Transfer":
			alias = "TransferSPL"
		case "transfer":
			alias = "transfer_spl"
		}
	}
	s.AddAliased(srcPkg, member, symbol, alias)
}

// AddAliased registers an import with an explicit alias (possibly empty).
// Re-adding the same (package, member, symbol) never overwrites an
// alias already recorded for it, matching the "never overwriting"
// merge behavior of the grounding source.
func (s *ImportSet) AddAliased(srcPkg, member, symbol, alias string) {
	pkg, ok := s.packages[srcPkg]
	if !ok {
		pkg = &importPackage{members: map[string]*importMember{}}
		s.packages[srcPkg] = pkg
		s.order = append(s.order, srcPkg)
	}
	mem, ok := pkg.members[member]
	if !ok {
		mem = &importMember{symbols: map[string]string{}}
		pkg.members[member] = mem
		pkg.order = append(pkg.order, member)
	}
	if _, exists := mem.symbols[symbol]; !exists {
		mem.symbols[symbol] = alias
		mem.order = append(mem.order, symbol)
	}
}

// Package is one source-package's ordered member groups, used by
// pkg/emit to render `use src_pkg::{member::{sym, sym2 as alias}, ...};`.
type Package struct {
	Source  string
	Members []Member
}

// Member is one `member::{...}` group inside a package import.
type Member struct {
	Name    string
	Symbols []Symbol
}

// Symbol is one imported name with its optional alias.
type Symbol struct {
	Name  string
	Alias string
}

// Packages returns the import set's contents in deterministic
// insertion order, ready for rendering.
func (s *ImportSet) Packages() []Package {
	var out []Package
	for _, pkgName := range s.order {
		pkg := s.packages[pkgName]
		p := Package{Source: pkgName}
		for _, memName := range pkg.order {
			mem := pkg.members[memName]
			m := Member{Name: memName}
			for _, sym := range mem.order {
				m.Symbols = append(m.Symbols, Symbol{Name: sym, Alias: mem.symbols[sym]})
			}
			p.Members = append(p.Members, m)
		}
		out = append(out, p)
	}
	return out
}

// Empty reports whether no imports were ever registered.
func (s *ImportSet) Empty() bool { return len(s.order) == 0 }

// ProgramAccountField is one field of a custom state type.
type ProgramAccountField struct {
	Name   string
	RustType string
}

// ProgramAccount is a custom state type declared by an `interface
// ... extends Account` in the input, or a source for space
// computation referenced by an InstructionAccount.
type ProgramAccount struct {
	Name   string
	Fields []ProgramAccountField
	Space  uint32
}

// InstructionArgument is one scalar parameter of an instruction,
// order preserved from the source parameter list.
type InstructionArgument struct {
	Name     string
	RustType string
	Optional bool
}

// AtaDescriptor records the mint/authority pair and ATA-vs-classic
// distinction for a token-account-shaped InstructionAccount.
type AtaDescriptor struct {
	Mint      string
	Authority string
	IsATA     bool
}

// MintDescriptor records the three (or four) positional arguments of
// a Mint-typed account's derive call.
type MintDescriptor struct {
	MintAuthorityToken string
	DecimalsToken      string
	FreezeAuthorityToken string // empty if not provided
}

// InstructionAccount is one account slot in an instruction's context
// struct, per spec.md §3's InstructionAccount.
type InstructionAccount struct {
	Name         string // snake_case
	RustType     string // target-type token fragment
	SourceTag    string // Signer | UncheckedAccount | AccountInfo | SystemAccount | AssociatedTokenAccount | TokenAccount | Mint | <custom name>
	Optional     bool
	IsMut        bool
	IsInit       bool
	IsInitIfNeeded bool
	IsClose      bool
	IsCustom     bool

	Ata  *AtaDescriptor
	Mint *MintDescriptor

	HasOne []string
	Close  string // close-destination account name, if IsClose

	Seeds []string // pre-rendered target-language byte-expression tokens
	Bump  string    // "bump" or "bump = <expr>"

	Payer string
	Space uint32 // copied from the referenced custom account type, if any
}

// ProgramInstruction is one instruction entry point, per spec.md §3.
type ProgramInstruction struct {
	Name     string
	Accounts []*InstructionAccount
	Args     []InstructionArgument
	Body     []string // opaque pre-rendered body statement fragments

	SignerAccount string // designated signer account name, if any

	UsesSystemProgram          bool
	UsesTokenProgram           bool
	UsesAssociatedTokenProgram bool

	// InstructionAttributes are scalar argument (name, type) bindings
	// that must be surfaced on the `#[instruction(...)]` macro because
	// a seed expression in this instruction references them.
	InstructionAttributes []InstructionArgument
}

// ProgramModule is the root of the data model: one per input file.
type ProgramModule struct {
	ID   string // base-58 program id
	Name string // PascalCase program name (snake_case on emission)

	CustomTypes  map[string]*ProgramAccount
	Accounts     []*ProgramAccount
	Instructions []*ProgramInstruction
	Imports      *ImportSet
}

// NewProgramModule returns a ProgramModule with its import set
// initialized and its id/name defaulted the way
// original_source's ProgramModule::new() does, so a caller that
// forgets to populate either field still produces syntactically valid
// (if meaningless) output rather than an empty string.
func NewProgramModule() *ProgramModule {
	return &ProgramModule{
		ID:          "Poseidon11111111111111111111111111111111111",
		Name:        "AnchorProgram",
		CustomTypes: map[string]*ProgramAccount{},
		Imports:     NewImportSet(),
	}
}
