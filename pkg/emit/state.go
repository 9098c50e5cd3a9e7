package emit

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/model"
)

// renderAccountStruct builds a custom state type's `#[account] pub
// struct <Name> { ... }` block, per original_source's
// ProgramAccount::to_tokens.
func renderAccountStruct(acc *model.ProgramAccount) string {
	var b strings.Builder
	b.WriteString("#[account]\n")
	fmt.Fprintf(&b, "pub struct %s {\n", acc.Name)
	for _, f := range acc.Fields {
		fmt.Fprintf(&b, "    pub %s: %s,\n", f.Name, f.RustType)
	}
	b.WriteString("}\n")
	return b.String()
}
