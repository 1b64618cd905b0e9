package delivery

// Summary is the piece count overview of an order. Broken pieces are not counted: their
// replacements stand in for them.
type Summary struct {
	Total     int
	Ready     int
	Delivered int
	Remaining int
}

func NewSummary(total, ready, delivered int) Summary {
	return Summary{
		Total:     total,
		Ready:     ready,
		Delivered: delivered,
		Remaining: max(0, total-delivered),
	}
}

// Fulfilled reports whether requested units are all activated and every piece is delivered.
func (s Summary) Fulfilled(requested int) bool {
	return s.Total >= requested && s.Remaining == 0
}
