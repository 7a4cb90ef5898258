package quote

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultHourlyRate = 50
	defaultNotesMax   = 500
)

var (
	numberedRegex  = regexp.MustCompile(`^(\d+)[.)]\s+(.+)`)
	bulletRegex    = regexp.MustCompile(`^[-•*]\s+(.+)`)
	quantityRegex  = regexp.MustCompile(`(?i)(\d+)\s*(?:×|x\b|stuks\b|stuk\b)`)
	priceRegex     = regexp.MustCompile(`(?i)(?:€|eur\b|euro\b)\s*(\d+(?:[.,]\d+)?)`)
	bareDecimal    = regexp.MustCompile(`\b(\d+[.,]\d{2})\b`)
	hoursRegex     = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:uur|uren|hours?)\b`)
	rateRegex      = regexp.MustCompile(`(?i)(?:€|eur\b|euro\b)?\s*(\d+(?:[.,]\d+)?)\s*per\s*(?:uur|hour)`)
	tagStripRegex  = regexp.MustCompile(`<[^>]+>`)
	spaceRunRegex  = regexp.MustCompile(`[ \t]+`)
	productLabel   = regexp.MustCompile(`(?i)product:\s*(.+)`)
	workLabel      = regexp.MustCompile(`(?i)werk:\s*(.+)`)
	countRegex     = regexp.MustCompile(`(?i)\b(\d+)\s*x\b`)
	hourIndicators = []string{"uur", "hour"}
)

// serviceKeywords mark a line as labor when an hour indicator is also
// present.
var serviceKeywords = []string{
	"dienst", "service", "werk", "werkzaamheden", "uren", "uitvoeren",
	"installeren", "installatie", "plaatsen", "monteren", "repareren",
	"onderhoud",
}

// productKeywords is not consulted by the item/labor branch: lines that
// are not labor default to items. Kept for parity with the labor list.
var productKeywords = []string{
	"product", "materiaal", "onderdeel", "item", "artikel", "stuk",
	"stuks", "aantal", "hoeveelheid", "qty", "quantity",
}

// Extractor pulls a best-effort structured quotation out of free-text
// email bodies. The output pre-fills a human-reviewed form and carries
// no correctness guarantee.
type Extractor struct {
	hourlyRate float64
	notesMax   int
}

// NewExtractor creates an extractor. Zero arguments fall back to the
// defaults (rate 50, notes capped at 500 characters).
func NewExtractor(hourlyRate float64, notesMax int) *Extractor {
	if hourlyRate <= 0 {
		hourlyRate = defaultHourlyRate
	}
	if notesMax <= 0 {
		notesMax = defaultNotesMax
	}
	return &Extractor{hourlyRate: hourlyRate, notesMax: notesMax}
}

// Extract scans the body line by line for list-shaped entries, parsing
// quantities, prices and labor hours out of each. When no structured
// lines are found it falls back to explicit "product:"/"werk:" labels,
// and finally to a single placeholder item, so the result never comes
// back empty.
func (e *Extractor) Extract(body, subject string) Data {
	lines := flattenLines(body)

	data := Data{}
	for i, line := range lines {
		text, ok := listEntry(line)
		if !ok {
			continue
		}

		quantity := parseQuantity(text)
		price, priced := parsePrice(text)
		if !priced && i+1 < len(lines) {
			price, _ = followingLinePrice(lines[i+1])
		}

		if isLabor(text) {
			hours := quantity
			if m := hoursRegex.FindStringSubmatch(text); m != nil {
				hours = parseNumber(m[1])
			}
			rate := e.hourlyRate
			if m := rateRegex.FindStringSubmatch(text); m != nil {
				rate = parseNumber(m[1])
			} else if price > 0 {
				rate = price
			}
			data.Labor = append(data.Labor, NewLabor(text, hours, rate))
			continue
		}
		if text != "" {
			data.Items = append(data.Items, NewItem(text, quantity, price))
		}
	}

	if len(data.Items) == 0 && len(data.Labor) == 0 {
		e.extractLabeled(&data, strings.Join(lines, "\n"))
	}
	if len(data.Items) == 0 && len(data.Labor) == 0 {
		data.Items = append(data.Items, e.placeholderItem(body, subject))
	}

	for _, item := range data.Items {
		data.SuggestedTotal += item.Total
	}
	for _, labor := range data.Labor {
		data.SuggestedTotal += labor.Total
	}
	data.Notes = truncate(body, e.notesMax)

	return data
}

// extractLabeled scans the whole body once for explicit
// "product:"/"werk:" labels.
func (e *Extractor) extractLabeled(data *Data, body string) {
	if m := productLabel.FindStringSubmatch(body); m != nil {
		text := strings.TrimSpace(m[1])
		price, _ := parsePrice(text)
		data.Items = append(data.Items, NewItem(text, parseQuantity(text), price))
	}
	if m := workLabel.FindStringSubmatch(body); m != nil {
		text := strings.TrimSpace(m[1])
		hours := 1.0
		if hm := hoursRegex.FindStringSubmatch(text); hm != nil {
			hours = parseNumber(hm[1])
		}
		rate := e.hourlyRate
		if rm := rateRegex.FindStringSubmatch(text); rm != nil {
			rate = parseNumber(rm[1])
		}
		data.Labor = append(data.Labor, NewLabor(text, hours, rate))
	}
}

// placeholderItem is the guaranteed fallback: one zero-priced item whose
// quantity sums any standalone "<N> x" counts found across the body.
func (e *Extractor) placeholderItem(body, subject string) Item {
	quantity := 0.0
	for _, m := range countRegex.FindAllStringSubmatch(body, -1) {
		quantity += parseNumber(m[1])
	}
	if quantity == 0 {
		quantity = 1
	}
	return NewItem("Offerte aanvraag: "+subject, quantity, 0)
}

// listEntry reports whether a line looks like a list entry and returns
// its text. Numbered markers ("1." / "1)") and bullet markers are
// stripped; a bare leading digit keeps the full line as the text.
func listEntry(line string) (string, bool) {
	if m := numberedRegex.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2]), true
	}
	if m := bulletRegex.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if len(line) > 1 && line[0] >= '0' && line[0] <= '9' {
		return line, true
	}
	return "", false
}

// isLabor requires both an hour indicator and a service keyword.
func isLabor(text string) bool {
	lower := strings.ToLower(text)
	if !containsAny(lower, hourIndicators) {
		return false
	}
	return containsAny(lower, serviceKeywords)
}

func parseQuantity(text string) float64 {
	if m := quantityRegex.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1])
	}
	return 1
}

// parsePrice finds a currency-prefixed number. An uncurrencied decimal
// on the line itself is not a price; the second return reports whether
// one was found.
func parsePrice(text string) (float64, bool) {
	if m := priceRegex.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1]), true
	}
	return 0, false
}

// followingLinePrice scans a price-continuation line, where a bare
// price-shaped decimal also counts.
func followingLinePrice(text string) (float64, bool) {
	if price, ok := parsePrice(text); ok {
		return price, ok
	}
	if m := bareDecimal.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1]), true
	}
	return 0, false
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return n
}

// flattenLines strips HTML tags and returns the non-empty lines with
// inner whitespace collapsed.
func flattenLines(body string) []string {
	body = tagStripRegex.ReplaceAllString(body, "")
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(spaceRunRegex.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// truncate caps the notes text, rune-safe, appending an ellipsis when
// the original was longer.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
