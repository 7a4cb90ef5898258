package mime

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagRegex         = regexp.MustCompile(`<[^>]+>`)
	spaceRunRegex    = regexp.MustCompile(`\s+`)
)

// entityReplacer unescapes the five standard entities plus &nbsp;.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// FlattenHTML reduces an HTML body to readable plain text: script and
// style blocks are removed entirely, remaining tags are stripped,
// standard entities are unescaped, and whitespace runs collapse to
// single spaces. The transform is idempotent, with one caveat: when
// unescaping itself produces tag-shaped text ("&lt;b&gt;" comes out as
// "<b>"), a second pass strips that text as a tag.
func FlattenHTML(html string) string {
	text := scriptBlockRegex.ReplaceAllString(html, "")
	text = styleBlockRegex.ReplaceAllString(text, "")
	text = tagRegex.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	text = spaceRunRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
