package mime

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
)

var (
	softBreakRegex = regexp.MustCompile(`=\r?\n`)
	qpEscapeRegex  = regexp.MustCompile(`=([0-9A-Fa-f]{2})`)
	whitespaceOnly = regexp.MustCompile(`\s+`)
)

// DecodeTransfer reverses a part's declared content-transfer-encoding.
// It never fails: anything that cannot be decoded comes back as the
// original text so downstream logic always has something to work with.
func DecodeTransfer(body, encoding string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return decodeQuotedPrintable(body)
	case "base64":
		compact := whitespaceOnly.ReplaceAllString(body, "")
		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return body
		}
		return string(decoded)
	default:
		return strings.TrimSpace(body)
	}
}

// decodeQuotedPrintable removes soft line breaks and expands =XX escapes.
func decodeQuotedPrintable(body string) string {
	body = softBreakRegex.ReplaceAllString(body, "")
	return qpEscapeRegex.ReplaceAllStringFunc(body, func(esc string) string {
		n, err := strconv.ParseUint(esc[1:], 16, 8)
		if err != nil {
			return esc
		}
		return string([]byte{byte(n)})
	})
}
