package emit

import "strings"

// toPascal mirrors pkg/build's casing helper: instruction names arrive
// already snake_case (pkg/build normalizes them), so emitting the
// matching context-struct type name only needs a PascalCase join.
func toPascal(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
