package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jwillems/mailintake/internal/mime"
)

// PreviewFormatter renders parsed emails for console review before any
// record is committed.
type PreviewFormatter struct {
	maxLength       int
	whitespaceRegex *regexp.Regexp
	newlineRegex    *regexp.Regexp
}

// NewPreviewFormatter creates a new preview formatter
func NewPreviewFormatter() *PreviewFormatter {
	return &PreviewFormatter{
		maxLength:       2000,
		whitespaceRegex: regexp.MustCompile(`[^\S\n]+`),
		newlineRegex:    regexp.MustCompile(`\n{3,}`),
	}
}

// FormatEmail renders the email header block plus a readable body. For
// messages that carried HTML, the HTML part is rendered to multi-line
// text; otherwise the plain body is shown as-is.
func (f *PreviewFormatter) FormatEmail(email *mime.ParsedEmail) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From:    %s\n", email.From))
	if len(email.To) > 0 {
		sb.WriteString(fmt.Sprintf("To:      %s\n", strings.Join(email.To, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Subject: %s\n", email.Subject))
	if email.Date != "" {
		sb.WriteString(fmt.Sprintf("Date:    %s\n", email.Date))
	}
	for _, att := range email.Attachments {
		sb.WriteString(fmt.Sprintf("Attachment: %s (%s, %d bytes)\n",
			att.Filename, att.ContentType, att.Size))
	}
	sb.WriteString("\n")

	body := email.Body
	if email.HTMLBody != "" {
		if text, err := f.HTMLToText(email.HTMLBody); err == nil && text != "" {
			body = text
		}
	}
	sb.WriteString(f.truncate(body, f.maxLength))

	return sb.String()
}

// HTMLToText converts an HTML body to readable multi-line text, keeping
// line structure for block elements.
func (f *PreviewFormatter) HTMLToText(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	// Remove non-content elements
	doc.Find("script, style, head, meta, link").Remove()

	// Add newlines before block elements
	doc.Find("p, div, br, h1, h2, h3, h4, h5, h6, li, tr").Each(func(i int, s *goquery.Selection) {
		s.PrependHtml("\n")
	})

	text := doc.Text()

	// Clean up whitespace (but preserve newlines)
	text = f.whitespaceRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanLines = append(cleanLines, line)
		}
	}
	text = strings.Join(cleanLines, "\n")

	// Normalize newlines (max 2 consecutive)
	text = f.newlineRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text), nil
}

// truncate truncates text to maxLen characters
func (f *PreviewFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "\n... (truncated)"
}
