package report

import "strings"

// MergeGenerated recombines a free-text field that holds both
// machine-generated fragments and user-typed additions.
//
// If the current text starts with exactly the previous generated block,
// that prefix is stripped (plus leading whitespace) to recover the
// user's own text; otherwise the entire current text is treated as user
// text, so a manual edit inside the generated block is never destroyed.
// The new value is the new generated block, a blank line, then the user
// text, each part omitted when empty.
//
// The caller must remember the new generated block as "previous" for
// the next call; this function holds no state.
//
// Known limitation: when the prefix no longer matches, any generated
// fragments still present in the text are kept as user text and the
// same fragment can appear twice after the next regeneration.
func MergeGenerated(current, previous, generated string) string {
	user := current
	if previous != "" && strings.HasPrefix(current, previous) {
		user = strings.TrimLeft(strings.TrimPrefix(current, previous), " \t\r\n")
	}

	if generated == "" {
		return user
	}
	if user == "" {
		return generated
	}
	return generated + "\n\n" + user
}
