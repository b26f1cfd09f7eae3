package extraction_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap/internal/domain"
	"docmap/internal/extraction"
	"docmap/internal/port"
)

var acme = domain.Partner{Name: "ACME Corporation", Type: domain.PartnerTypeVendor}

func intPtr(i int) *int { return &i }

func TestSample_ValueShapes(t *testing.T) {
	s := extraction.NewSample("doc-1.pdf")
	ctx := context.Background()

	tests := []struct {
		field   string
		pattern string
	}{
		{"Invoice Number", `^DOC-\d{4}$`},
		{"Report ID", `^DOC-\d{4}$`},
		{"Invoice Date", `^\d{4}-\d{2}-\d{2}$`},
		{"Total Amount", `^\$\d+\.\d{2}$`},
		{"Freight Charges", `^\$\d+\.\d{2}$`},
		{"Vendor Name", `^ACME Corporation$`},
		{"Quantity", `^\d{1,2}$`},
		{"Technician", `^Sample value for Technician$`},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := s.ValueFor(ctx, port.FieldRequest{SourceField: tt.field, Partner: acme})
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), got.Value)
			assert.GreaterOrEqual(t, got.Confidence, 80.0)
			assert.LessOrEqual(t, got.Confidence, 100.0)
		})
	}
}

func TestSample_Deterministic(t *testing.T) {
	ctx := context.Background()
	a := extraction.NewSample("doc-1.pdf")
	b := extraction.NewSample("doc-1.pdf")

	req := port.FieldRequest{SourceField: "Unit Price", Partner: acme, Row: intPtr(1)}
	va, err := a.ValueFor(ctx, req)
	require.NoError(t, err)
	vb, err := b.ValueFor(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, va, vb)

	ra, _ := a.RowCount(ctx, acme)
	rb, _ := b.RowCount(ctx, acme)
	assert.Equal(t, ra, rb)
	assert.GreaterOrEqual(t, ra, 2)
	assert.LessOrEqual(t, ra, 5)
}

func TestSample_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := extraction.NewSample("x").ValueFor(ctx, port.FieldRequest{SourceField: "Quantity"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = extraction.NewSample("x").RowCount(ctx, acme)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStructured(t *testing.T) {
	src, err := extraction.ParseStructured([]byte(`{
		"header": {"Invoice Number": {"value": "9881649894", "confidence": 98.5}},
		"rows": [
			{"Quantity": {"value": "16", "confidence": 91}},
			{"Quantity": {"value": "126", "confidence": 99}}
		]
	}`))
	require.NoError(t, err)
	ctx := context.Background()

	n, err := src.RowCount(ctx, acme)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := src.ValueFor(ctx, port.FieldRequest{SourceField: "Invoice Number"})
	require.NoError(t, err)
	assert.Equal(t, port.Extracted{Value: "9881649894", Confidence: 98.5}, got)

	got, err = src.ValueFor(ctx, port.FieldRequest{SourceField: "Quantity", Row: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "126", got.Value)

	_, err = src.ValueFor(ctx, port.FieldRequest{SourceField: "Due Date"})
	assert.ErrorIs(t, err, domain.ErrMissingFieldValue)
	_, err = src.ValueFor(ctx, port.FieldRequest{SourceField: "Quantity", Row: intPtr(2)})
	assert.ErrorIs(t, err, domain.ErrMissingFieldValue)
}

func TestParseStructured_Malformed(t *testing.T) {
	_, err := extraction.ParseStructured([]byte(`{"header": [}`))
	assert.Error(t, err)
}
