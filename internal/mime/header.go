package mime

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
)

// encodedWordRegex matches RFC 2047 encoded words: =?charset?B|Q?text?=
var encodedWordRegex = regexp.MustCompile(`=\?([^?]+)\?([BbQq])\?([^?]*)\?=`)

// DecodeHeader replaces every RFC 2047 encoded word in a raw header value
// with its decoded text. Decoding is best-effort: a word that fails to
// decode is left verbatim. The charset tag is accepted but not applied,
// decoded bytes are treated as already-valid text.
func DecodeHeader(value string) string {
	return encodedWordRegex.ReplaceAllStringFunc(value, func(word string) string {
		m := encodedWordRegex.FindStringSubmatch(word)
		if m == nil {
			return word
		}
		encoding, text := strings.ToUpper(m[2]), m[3]

		switch encoding {
		case "B":
			decoded, err := base64.StdEncoding.DecodeString(text)
			if err != nil {
				return word
			}
			return string(decoded)
		case "Q":
			decoded, ok := decodeQWord(text)
			if !ok {
				return word
			}
			return decoded
		}
		return word
	})
}

// decodeQWord decodes the Q encoding: underscores become spaces and =XX
// hex escapes become the corresponding byte. An unknown escape fails the
// whole word.
func decodeQWord(text string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '_':
			sb.WriteByte(' ')
		case '=':
			if i+2 >= len(text) {
				return "", false
			}
			n, err := strconv.ParseUint(text[i+1:i+3], 16, 8)
			if err != nil {
				return "", false
			}
			sb.WriteByte(byte(n))
			i += 2
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), true
}
