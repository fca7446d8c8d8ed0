package service

import "strings"

// normalizeName canonicalizes a merged display name: uppercase, internal
// whitespace collapsed, and "SURNAME SURNAME GIVEN..." rewritten as
// "SURNAME SURNAME, GIVEN..." when no comma is present yet.
//
// The function is idempotent: normalizing an already-normalized name is a
// no-op. The merge applies it exactly once per merged record, but idempotence
// keeps re-runs and caller-supplied pre-normalized data safe.
func normalizeName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	collapsed := strings.Join(strings.Fields(upper), " ")
	if collapsed == "" {
		return ""
	}

	// A comma means the surname split already happened; only fix the spacing
	// around it and leave the token layout alone.
	if strings.Contains(collapsed, ",") {
		parts := strings.SplitN(collapsed, ",", 2)
		left := strings.TrimSpace(parts[0])
		right := strings.TrimSpace(parts[1])
		if right == "" {
			return left + ","
		}
		return left + ", " + right
	}

	tokens := strings.Fields(collapsed)
	if len(tokens) <= 2 {
		return collapsed
	}
	return tokens[0] + " " + tokens[1] + ", " + strings.Join(tokens[2:], " ")
}
