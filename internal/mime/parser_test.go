package mime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleMessage(t *testing.T) {
	raw := "From: Jan de Vries <jan@klant.nl>\r\n" +
		"To: verkoop@bedrijf.nl\r\n" +
		"Subject: Vraag over levering\r\n" +
		"Date: Mon, 12 Feb 2024 10:30:00 +0100\r\n" +
		"\r\n" +
		"Wanneer wordt mijn bestelling geleverd?\r\n"

	email := Parse(raw)

	assert.Equal(t, "jan@klant.nl", email.From)
	assert.Equal(t, []string{"verkoop@bedrijf.nl"}, email.To)
	assert.Equal(t, "Vraag over levering", email.Subject)
	assert.Equal(t, "Mon, 12 Feb 2024 10:30:00 +0100", email.Date)
	assert.Equal(t, "Wanneer wordt mijn bestelling geleverd?", email.Body)
	assert.Empty(t, email.HTMLBody)
}

func TestParse_EncodedSubject(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Subject: =?UTF-8?B?SGFsbG8=?=\r\n" +
		"\r\n" +
		"inhoud\r\n"

	email := Parse(raw)
	assert.Equal(t, "Hallo", email.Subject)
}

func TestParse_FoldedHeader(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Subject: Eerste deel\r\n" +
		"\ten vervolg\r\n" +
		"\r\n" +
		"inhoud\r\n"

	email := Parse(raw)
	assert.Equal(t, "Eerste deel en vervolg", email.Subject)
}

func TestParse_LastDuplicateHeaderWins(t *testing.T) {
	raw := "Subject: eerste\r\n" +
		"Subject: tweede\r\n" +
		"\r\n" +
		"inhoud\r\n"

	email := Parse(raw)
	assert.Equal(t, "tweede", email.Subject)
}

func TestParse_AddressListsWithDisplayNames(t *testing.T) {
	raw := "From: \"Jan de Vries\" <jan@klant.nl>\r\n" +
		"To: Verkoop <verkoop@bedrijf.nl>, support@bedrijf.nl\r\n" +
		"Cc: boekhouding@bedrijf.nl\r\n" +
		"\r\n" +
		"inhoud\r\n"

	email := Parse(raw)
	assert.Equal(t, "jan@klant.nl", email.From)
	assert.Equal(t, []string{"verkoop@bedrijf.nl", "support@bedrijf.nl"}, email.To)
	assert.Equal(t, []string{"boekhouding@bedrijf.nl"}, email.CC)
}

func TestParse_FromFallsBackToRawHeader(t *testing.T) {
	raw := "From: systeem zonder adres\r\n" +
		"\r\n" +
		"inhoud\r\n"

	email := Parse(raw)
	assert.Equal(t, "systeem zonder adres", email.From)
}

func TestParse_MultipartPrefersPlainText(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Subject: Offerte\r\n" +
		"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
		"\r\n" +
		"--b1\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"platte tekst\r\n" +
		"--b1\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>html tekst</p>\r\n" +
		"--b1--\r\n"

	email := Parse(raw)
	assert.Equal(t, "platte tekst", email.Body)
	assert.Equal(t, "<p>html tekst</p>", email.HTMLBody)
}

func TestParse_MultipartHTMLOnlyDerivesBody(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
		"\r\n" +
		"--b1\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>alleen <b>html</b></p>\r\n" +
		"--b1--\r\n"

	email := Parse(raw)
	require.NotEmpty(t, email.HTMLBody)
	assert.Equal(t, FlattenHTML(email.HTMLBody), email.Body)
	assert.Equal(t, "alleen html", email.Body)
}

func TestParse_MultipartQuotedPrintablePart(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Content-Type: multipart/mixed; boundary=\"grens\"\r\n" +
		"\r\n" +
		"--grens\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Prijs =3D 10 euro\r\n" +
		"--grens--\r\n"

	email := Parse(raw)
	assert.Equal(t, "Prijs = 10 euro", email.Body)
}

func TestParse_MultipartMissingBoundaryTreatedAsPlain(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Content-Type: multipart/mixed\r\n" +
		"\r\n" +
		"gewoon tekst zonder delen\r\n"

	email := Parse(raw)
	assert.Equal(t, "gewoon tekst zonder delen", email.Body)
}

func TestParse_HTMLOnlyTopLevel(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Hallo &amp; welkom</p></body></html>\r\n"

	email := Parse(raw)
	assert.Contains(t, email.HTMLBody, "<p>Hallo")
	assert.Equal(t, "Hallo & welkom", email.Body)
}

func TestParse_AttachmentMetadataOnly(t *testing.T) {
	raw := "From: jan@klant.nl\r\n" +
		"Content-Type: multipart/mixed; boundary=\"b2\"\r\n" +
		"\r\n" +
		"--b2\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"zie bijlage\r\n" +
		"--b2\r\n" +
		"Content-Type: application/pdf; name=\"offerte.pdf\"\r\n" +
		"Content-Disposition: attachment; filename=\"offerte.pdf\"\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"JVBERi0xLjQ=\r\n" +
		"--b2--\r\n"

	email := Parse(raw)
	assert.Equal(t, "zie bijlage", email.Body)
	require.Len(t, email.Attachments, 1)

	att := email.Attachments[0]
	assert.Equal(t, "offerte.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Greater(t, att.Size, 0)
}

func TestParse_SubjectIndependentOfBody(t *testing.T) {
	for _, body := range []string{"inhoud een", "<p>iets anders</p>", ""} {
		raw := "Subject: =?UTF-8?Q?Offerte_aanvraag?=\r\n\r\n" + body
		assert.Equal(t, "Offerte aanvraag", Parse(raw).Subject)
	}
}

func TestParse_MixedLineEndingsSplitOnFirstBlankLine(t *testing.T) {
	// LF headers with a CRLF paragraph break inside the body: the split
	// must land on the earlier LF blank line, not the later CRLF one
	raw := "From: jan@klant.nl\nSubject: Gemengd\n\n" +
		"eerste alinea\r\n\r\ntweede alinea\r\n"

	email := Parse(raw)
	assert.Equal(t, "Gemengd", email.Subject)
	assert.Contains(t, email.Body, "eerste alinea")
	assert.Contains(t, email.Body, "tweede alinea")
}

func TestParse_EmptyMessage(t *testing.T) {
	email := Parse("")
	assert.Empty(t, email.Body)
	assert.Empty(t, email.Subject)
}

func TestParse_LFOnlyLineEndings(t *testing.T) {
	raw := "From: jan@klant.nl\nSubject: Taak\n\nregel een\nregel twee\n"

	email := Parse(raw)
	assert.Equal(t, "Taak", email.Subject)
	assert.Equal(t, "regel een\nregel twee", email.Body)
}
