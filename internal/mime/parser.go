package mime

import (
	"regexp"
	"strings"
)

var (
	addressRegex  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	boundaryRegex = regexp.MustCompile(`(?i)boundary="?([^";\r\n]+)"?`)
	filenameRegex = regexp.MustCompile(`(?i)(?:filename|name)="?([^";\r\n]+)"?`)
	trailerRegex  = regexp.MustCompile(`(?m)^--\S+--\s*$`)
)

// Parse reconstructs a structured email from a raw RFC 5322 message.
// Parsing is best-effort and never fails: malformed structure degrades
// to whatever text can be recovered.
func Parse(raw string) *ParsedEmail {
	headerBlock, bodyBlock := splitMessage(raw)
	headers := parseHeaders(headerBlock)

	email := &ParsedEmail{
		From:    senderAddress(headers["from"]),
		To:      addressRegex.FindAllString(headers["to"], -1),
		CC:      addressRegex.FindAllString(headers["cc"], -1),
		BCC:     addressRegex.FindAllString(headers["bcc"], -1),
		Subject: DecodeHeader(headers["subject"]),
		Date:    headers["date"],
	}

	contentType := headers["content-type"]
	boundary := multipartBoundary(contentType)
	if boundary != "" {
		parseMultipart(email, bodyBlock, boundary)
	} else {
		body := DecodeTransfer(bodyBlock, headers["content-transfer-encoding"])
		if strings.Contains(strings.ToLower(contentType), "text/html") {
			email.HTMLBody = body
			email.Body = FlattenHTML(body)
		} else {
			email.Body = body
		}
	}

	if email.Body == "" && email.HTMLBody != "" {
		email.Body = FlattenHTML(email.HTMLBody)
	}
	email.Body = strings.TrimSpace(trailerRegex.ReplaceAllString(email.Body, ""))

	return email
}

// splitMessage separates the header block from the body on the first
// blank line, accepting both CRLF and bare LF line endings. In a
// mixed-ending message whichever blank line comes first wins.
func splitMessage(raw string) (header, body string) {
	crlf := strings.Index(raw, "\r\n\r\n")
	lf := strings.Index(raw, "\n\n")
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return raw[:crlf], raw[crlf+4:]
	case lf >= 0:
		return raw[:lf], raw[lf+2:]
	}
	return raw, ""
}

// parseHeaders folds continuation lines per RFC 5322 and maps header
// names (lowercased) to values. Only the last occurrence of a repeated
// header is retained.
func parseHeaders(block string) map[string]string {
	headers := make(map[string]string)
	var current string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if current != "" {
				headers[current] += " " + strings.TrimSpace(line)
			}
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		current = strings.ToLower(strings.TrimSpace(name))
		headers[current] = strings.TrimSpace(value)
	}
	return headers
}

// senderAddress reduces a From header to its first address, falling
// back to the raw header text when nothing address-shaped is found.
func senderAddress(header string) string {
	if addr := addressRegex.FindString(header); addr != "" {
		return addr
	}
	return strings.TrimSpace(header)
}

// multipartBoundary returns the declared boundary parameter, or "" when
// the message is not multipart or the boundary is missing. A multipart
// declaration without a boundary is treated as not multipart.
func multipartBoundary(contentType string) string {
	if !strings.Contains(strings.ToLower(contentType), "multipart") {
		return ""
	}
	m := boundaryRegex.FindStringSubmatch(contentType)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseMultipart splits the body on the declared boundary and selects
// the first text/plain part as the canonical body and the first
// text/html part as the HTML body. Attachment parts contribute
// metadata only.
func parseMultipart(email *ParsedEmail, body, boundary string) {
	for _, part := range strings.Split(body, "--"+boundary) {
		part = strings.TrimSpace(part)
		if part == "" || part == "--" {
			continue
		}

		partHeaderBlock, partBody := splitMessage(part)
		partHeaders := parseHeaders(partHeaderBlock)
		contentType := strings.ToLower(partHeaders["content-type"])
		encoding := partHeaders["content-transfer-encoding"]

		if filename := attachmentFilename(partHeaders); filename != "" {
			email.Attachments = append(email.Attachments, Attachment{
				Filename:    filename,
				ContentType: mediaType(partHeaders["content-type"]),
				Size:        len(partBody),
			})
			continue
		}

		switch {
		case strings.Contains(contentType, "text/plain"):
			if email.Body == "" {
				email.Body = DecodeTransfer(partBody, encoding)
			}
		case strings.Contains(contentType, "text/html"):
			if email.HTMLBody == "" {
				email.HTMLBody = DecodeTransfer(partBody, encoding)
			}
		}
	}
}

// attachmentFilename returns the part's declared filename when the part
// is an attachment, or "" otherwise.
func attachmentFilename(headers map[string]string) string {
	disposition := strings.ToLower(headers["content-disposition"])
	if !strings.Contains(disposition, "attachment") {
		return ""
	}
	for _, source := range []string{headers["content-disposition"], headers["content-type"]} {
		if m := filenameRegex.FindStringSubmatch(source); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// mediaType strips content-type parameters, leaving only the type/subtype.
func mediaType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(base)
}
