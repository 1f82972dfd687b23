package control

import (
	"strings"
	"unicode"
)

// Label derives a display label from a key: camelCase, snake_case and
// kebab-case words are split and each word is capitalized.
//
//	backgroundColor → Background Color
//	HTMLColor       → HTML Color
//	shadow_blur     → Shadow Blur
func Label(key string) string {
	var words []string
	var cur []rune
	runes := []rune(key)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
