// Package names derives platform-safe identifiers from user-given names.
package names

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"
)

const (
	maxLabelLen = 63
	hashLen     = 10
	// stop inserting hyphens here so the trailing-hyphen trim keeps the
	// result inside the label limit.
	softCap = maxLabelLen - 1
)

// Dnsify converts value into a DNS-compliant label (RFC1035/RFC1123
// DNS_LABEL): lowercase alphanumerics and internal hyphens only, at most 63
// characters, with '-' never in the first or last position.
//
// Inputs of 63 characters or more are first rewritten to
// "<hash prefix>-<tail of the input>", where the prefix is the first 10 hex
// characters of the sha-224 of the whole input. The rewrite is
// deterministic, so long names map to stable labels.
func Dnsify(value string) string {
	runes := []rune(value)
	if len(runes) >= maxLabelLen {
		sum := sha256.Sum224([]byte(value))
		prefix := hex.EncodeToString(sum[:])[:hashLen]
		tail := runes[len(runes)-(maxLabelLen-hashLen-1):]
		runes = append([]rune(prefix+"-"), tail...)
	}

	res := make([]rune, 0, len(runes))
	endsInHyphen := func() bool {
		return len(res) > 0 && res[len(res)-1] == '-'
	}

	for _, ch := range runes {
		switch {
		case ch == '_' || ch == '-' || ch == '.':
			// separators collapse to a single internal hyphen
			if len(res) != 0 && !endsInHyphen() && len(res) < softCap {
				res = append(res, '-')
			}
		case !unicode.IsLetter(ch) && !unicode.IsDigit(ch):
			// trim other non-alphanumerics
		case unicode.IsLower(ch) || unicode.IsDigit(ch):
			res = append(res, ch)
		default:
			// upper-case: add a '-' before it for readability
			if len(res) != 0 && !endsInHyphen() && len(res) < softCap {
				res = append(res, '-')
			}
			res = append(res, unicode.ToLower(ch))
		}
	}

	if len(res) > 0 && res[len(res)-1] == '-' {
		res = res[:len(res)-1]
	}

	return string(res)
}
