package importer

import "strings"

var idSeparators = strings.NewReplacer(" ", "_", "-", "_", ".", "_")

// NameToID converts a display name or file stem to a stable snake_case
// identifier. Spaces, hyphens and dots become underscores; any other
// character outside [a-z0-9_] is dropped.
//
// Postcondition: result is lowercase, contains only [a-z0-9_], and is
// idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	s := idSeparators.Replace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
