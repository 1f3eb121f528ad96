package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString strips HTML, null bytes and surrounding whitespace from
// user-entered text and caps its length. Used on everything a user types
// that ends up stored or forwarded: review text, game nicknames, skin names.
func SanitizeString(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// ValidateNickname checks a game nickname: non-empty after sanitization and
// short enough for display.
func ValidateNickname(nickname string) bool {
	n := len([]rune(nickname))
	return n >= 2 && n <= 64
}
