// Package sdk holds the fixed dispatch tables for the small set of
// blockchain SDK calls the instruction builder recognizes: the
// token-program's CPI method family. The system-program transfer has
// no table here; pkg/build/cpi.go handles it directly.
// Grounded on chazu-procyon's pkg/codegen/primitives.go (a
// className->selector dispatch table) and plugin.go (a
// method-name->handler registration table), translated from "builtin
// method on a scripting-language class" into "builtin method on the
// TokenProgram/SystemProgram SDK facade".
package sdk

// TokenMethod describes one TokenProgram.<name>(...) call's fixed
// positional argument layout and CPI shape, mirroring
// original_source's program_instruction.rs TokenProgram match arms.
type TokenMethod struct {
	// AnchorStruct is the CPI accounts struct name, e.g. "Transfer".
	AnchorStruct string
	// Func is the target snake_case CPI function, e.g. "transfer".
	Func string
	// AccountFields are the struct's account field names in the
	// positional order they appear as call arguments, e.g.
	// ["from", "to", "authority"] for Transfer.
	AccountFields []string
	HasAmount     bool
	HasDecimals   bool
	// SeedGateField names the AccountFields entry whose corresponding
	// InstructionAccount's recorded seeds gate whether this call emits
	// a signed (new_with_signer) or unsigned (new) CPI context.
	SeedGateField string
}

// TokenProgramMethods is the fixed table from spec.md §4.4: "dispatch
// by prop over a fixed method table (transfer, burn, mintTo, approve,
// approveChecked, closeAccount, freezeAccount, initializeAccount,
// revoke, syncNative, thawAccount, transferChecked)."
var TokenProgramMethods = map[string]TokenMethod{
	"transfer": {
		AnchorStruct: "Transfer", Func: "transfer",
		AccountFields: []string{"from", "to", "authority"},
		HasAmount:     true, SeedGateField: "authority",
	},
	"burn": {
		AnchorStruct: "Burn", Func: "burn",
		AccountFields: []string{"mint", "from", "authority"},
		HasAmount:     true, SeedGateField: "authority",
	},
	"mintTo": {
		AnchorStruct: "MintTo", Func: "mint_to",
		AccountFields: []string{"mint", "to", "authority"},
		HasAmount:     true, SeedGateField: "authority",
	},
	"approve": {
		AnchorStruct: "Approve", Func: "approve",
		AccountFields: []string{"to", "delegate", "authority"},
		HasAmount:     true, SeedGateField: "authority",
	},
	"approveChecked": {
		AnchorStruct: "ApproveChecked", Func: "approve_checked",
		AccountFields: []string{"to", "mint", "delegate", "authority"},
		HasAmount:     true, HasDecimals: true, SeedGateField: "authority",
	},
	"closeAccount": {
		AnchorStruct: "CloseAccount", Func: "close_account",
		AccountFields: []string{"account", "destination", "authority"},
		SeedGateField: "authority",
	},
	"freezeAccount": {
		AnchorStruct: "FreezeAccount", Func: "freeze_account",
		AccountFields: []string{"account", "mint", "authority"},
		SeedGateField: "authority",
	},
	"initializeAccount": {
		AnchorStruct: "InitializeAccount3", Func: "initialize_account3",
		AccountFields: []string{"account", "mint", "authority"},
		SeedGateField: "authority",
	},
	"revoke": {
		AnchorStruct: "Revoke", Func: "revoke",
		AccountFields: []string{"source", "authority"},
		SeedGateField: "authority",
	},
	"syncNative": {
		AnchorStruct: "SyncNative", Func: "sync_native",
		AccountFields: []string{"account"},
		SeedGateField: "account",
	},
	"thawAccount": {
		AnchorStruct: "ThawAccount", Func: "thaw_account",
		AccountFields: []string{"account", "mint", "authority"},
		SeedGateField: "authority",
	},
	"transferChecked": {
		AnchorStruct: "TransferChecked", Func: "transfer_checked",
		AccountFields: []string{"from", "mint", "to", "authority"},
		HasAmount:     true, HasDecimals: true, SeedGateField: "authority",
	},
}

// ArgCount is the number of positional call arguments this method
// consumes before an optional trailing signer-seeds array.
func (m TokenMethod) ArgCount() int {
	n := len(m.AccountFields)
	if m.HasAmount {
		n++
	}
	if m.HasDecimals {
		n++
	}
	return n
}
