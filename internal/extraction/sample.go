// Package extraction provides ExtractionSource implementations used to feed
// the mapping executor.
package extraction

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// sampleEpoch anchors generated dates so output does not depend on the clock.
var sampleEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Sample generates plausible values from the shape of the source field name.
// Every value and confidence is derived from the seed, so the same seed,
// partner and field always produce the same result.
type Sample struct {
	Seed string
}

// NewSample creates a Sample source for the given seed. Parse uses the
// caller-supplied seed, or the session id when none is given.
func NewSample(seed string) *Sample {
	return &Sample{Seed: seed}
}

var _ port.ExtractionSource = (*Sample)(nil)

// RowCount returns between 2 and 5 rows.
func (s *Sample) RowCount(ctx context.Context, partner domain.Partner) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r := s.rng(partner.Name, "#rows")
	return 2 + r.Intn(4), nil
}

// ValueFor returns a generated value with a confidence between 80 and 100.
func (s *Sample) ValueFor(ctx context.Context, req port.FieldRequest) (port.Extracted, error) {
	if err := ctx.Err(); err != nil {
		return port.Extracted{}, err
	}
	key := req.SourceField
	if req.Row != nil {
		key = fmt.Sprintf("%s#%d", key, *req.Row)
	}
	r := s.rng(req.Partner.Name, key)
	confidence := 80 + r.Float64()*20
	return port.Extracted{
		Value:      sampleValue(r, req.SourceField, req.Partner.Name),
		Confidence: confidence,
	}, nil
}

func (s *Sample) rng(parts ...string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.Seed))
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func sampleValue(r *rand.Rand, field, partnerName string) string {
	f := strings.ToLower(field)
	switch {
	case strings.Contains(f, "number") || strings.Contains(f, "id"):
		return fmt.Sprintf("DOC-%d", 1000+r.Intn(9000))
	case strings.Contains(f, "date"):
		return sampleEpoch.AddDate(0, 0, -r.Intn(115)).Format("2006-01-02")
	case strings.Contains(f, "amount") || strings.Contains(f, "charges") || strings.Contains(f, "price"):
		return fmt.Sprintf("$%.2f", 50+r.Float64()*2000)
	case strings.Contains(f, "name"):
		return partnerName
	case strings.Contains(f, "quantity"):
		return fmt.Sprintf("%d", 1+r.Intn(20))
	default:
		return "Sample value for " + field
	}
}
