package review

import "docmap/internal/domain"

// Summary counts fields by review status.
type Summary struct {
	Total       int `json:"total"`
	Confirmed   int `json:"confirmed"`
	NeedsReview int `json:"needs_review"`
}

// Complete reports whether every field has been confirmed.
func (s Summary) Complete() bool {
	return s.NeedsReview == 0
}

// Summarize counts the header and item fields of out.
func Summarize(out domain.ParsedOutput) Summary {
	var s Summary
	count := func(f domain.ParsedDataField) {
		s.Total++
		if f.Status == domain.ReviewStatusConfirmed {
			s.Confirmed++
		} else {
			s.NeedsReview++
		}
	}
	for _, f := range out.HeaderData {
		count(f)
	}
	for _, row := range out.Items {
		for _, f := range row {
			count(f)
		}
	}
	return s
}
