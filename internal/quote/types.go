package quote

// Item is a priced product line extracted from a quote-like email.
type Item struct {
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Total        float64 `json:"total"`
}

// NewItem builds an Item with Total computed from quantity and unit
// price. Total must be recomputed through a new Item whenever either
// factor changes.
func NewItem(description string, quantity, pricePerUnit float64) Item {
	return Item{
		Description:  description,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		Total:        quantity * pricePerUnit,
	}
}

// Labor is a billed-hours line extracted from a quote-like email.
type Labor struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	Total       float64 `json:"total"`
}

// NewLabor builds a Labor entry with Total computed from hours and rate.
func NewLabor(description string, hours, hourlyRate float64) Labor {
	return Labor{
		Description: description,
		Hours:       hours,
		HourlyRate:  hourlyRate,
		Total:       hours * hourlyRate,
	}
}

// Data is the best-effort structured quotation extracted from an email.
// SuggestedTotal is zero when nothing priced was found; it is omitted
// from JSON in that case to distinguish "no priced data" from a genuine
// free quote.
type Data struct {
	Items          []Item  `json:"items"`
	Labor          []Labor `json:"labor,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	SuggestedTotal float64 `json:"suggested_total,omitempty"`
}
