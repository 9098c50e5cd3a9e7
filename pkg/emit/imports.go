package emit

import (
	"fmt"
	"strings"

	"github.com/anchorize/anchorize/pkg/model"
)

// renderImports renders the computed `use` tree, grouping by
// source-package then member, matching the deterministic
// insertion-order walk ImportSet.Packages() already guarantees.
func renderImports(imports *model.ImportSet) string {
	var b strings.Builder
	for _, pkg := range imports.Packages() {
		memberParts := make([]string, len(pkg.Members))
		for i, mem := range pkg.Members {
			symParts := make([]string, len(mem.Symbols))
			for j, sym := range mem.Symbols {
				if sym.Alias != "" {
					symParts[j] = fmt.Sprintf("%s as %s", sym.Name, sym.Alias)
				} else {
					symParts[j] = sym.Name
				}
			}
			memberParts[i] = mem.Name + renderParenList("{", "}", symParts...)
		}
		fmt.Fprintf(&b, "use %s::%s;\n", pkg.Source, renderParenList("{", "}", memberParts...))
	}
	return b.String()
}
