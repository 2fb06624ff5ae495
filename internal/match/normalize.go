package match

import (
	"strings"
	"unicode"
)

// Normalize folds a type name for fuzzy comparison. The import path before
// the last '/' is dropped, letters are lowered and the separators '_', '-',
// ' ' and '.' are removed, so "typegraph/store.Order", "store.Order" and
// "store_order" all fold to "storeorder".
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder

	b.Grow(len(name))

	for _, r := range name {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Tokens splits a CamelCase or separated identifier into lowercase words.
//   - "OrderItem" -> ["order", "item"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "page_token" -> ["page", "token"]
func Tokens(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// orderID: lower to upper.
	if !unicode.IsUpper(prev) {
		return true
	}

	// XMLParser: the last capital of an acronym opens the next word.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
