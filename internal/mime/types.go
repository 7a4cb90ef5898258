package mime

// ParsedEmail is the canonical result of parsing a raw RFC 5322 message.
// It is created once per Parse call and never mutated afterwards.
type ParsedEmail struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	CC          []string     `json:"cc,omitempty"`
	BCC         []string     `json:"bcc,omitempty"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	HTMLBody    string       `json:"html_body,omitempty"`
	Date        string       `json:"date,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment holds attachment metadata only; content is not retained.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}
