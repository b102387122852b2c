package domain

import "encoding/json"

// PriceComponent is one labeled line of a price breakdown.
type PriceComponent struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PriceBreakdown is the concrete price record attached to a flow booking.
// Earlier revisions persisted a free-form object read via several possible
// key names; ParsePriceBreakdown still accepts those rows.
type PriceBreakdown struct {
	Amount     float64          `json:"amount"`
	Currency   string           `json:"currency"`
	Components []PriceComponent `json:"components,omitempty"`
}

// ParsePriceBreakdown decodes a stored price document, falling back to the
// legacy key names (price, total, amount) when the row predates the typed
// breakdown.
func ParsePriceBreakdown(raw []byte) (*PriceBreakdown, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var pb PriceBreakdown
	if err := json.Unmarshal(raw, &pb); err != nil {
		return nil, err
	}
	if pb.Amount != 0 {
		return &pb, nil
	}

	// Legacy rows: an open map keyed by price, total, or amount.
	var legacy map[string]any
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, err
	}
	for _, key := range []string{"price", "total", "amount"} {
		if v, ok := legacy[key]; ok {
			if n, ok := v.(float64); ok {
				pb.Amount = n
				break
			}
		}
	}
	if c, ok := legacy["currency"].(string); ok && pb.Currency == "" {
		pb.Currency = c
	}
	return &pb, nil
}
