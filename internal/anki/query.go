package anki

import (
	"fmt"
	"strings"
)

// DuplicateQuery builds the findNotes search used for duplicate detection:
// a deck-scoped substring match on the Word field. The match is deliberately
// substring-tolerant so inflected forms already on a card still count as
// duplicates.
func DuplicateQuery(deck, word string) string {
	return fmt.Sprintf(`deck:"%s" Word:*%s*`, escapeSearchTerm(deck), escapeSearchTerm(word))
}

// escapeSearchTerm escapes characters that would break out of a quoted or
// field-scoped Anki search term
func escapeSearchTerm(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
	)
	return replacer.Replace(s)
}
