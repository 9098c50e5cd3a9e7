package emit

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/model"
)

// renderInstructionFn builds one instruction's function body, per
// original_source's ProgramInstruction::to_tokens: `fn <name>(ctx:
// Context<<Name>Context>, <args>) -> Result<()> { <body> Ok(()) }`.
func renderInstructionFn(ix *model.ProgramInstruction) string {
	var params []string
	params = append(params, fmt.Sprintf("ctx: Context<%sContext>", toPascal(ix.Name)))
	for _, arg := range ix.Args {
		params = append(params, fmt.Sprintf("%s: %s", arg.Name, arg.RustType))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    pub fn %s(%s) -> Result<()> {\n", ix.Name, strings.Join(params, ", "))
	for _, stmt := range ix.Body {
		for _, line := range strings.Split(stmt, "\n") {
			fmt.Fprintf(&b, "        %s\n", line)
		}
	}
	b.WriteString("        Ok(())\n")
	b.WriteString("    }\n")
	return b.String()
}
