package mapping_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docmap/internal/catalog"
	"docmap/internal/domain"
	"docmap/internal/mapping"
	"docmap/internal/port"
	"docmap/mocks"
)

// fixedSource serves values keyed by source field (and row for items).
type fixedSource struct {
	rows    int
	values  map[string]port.Extracted
	calls   int
	onValue func(n int)
}

func (f *fixedSource) key(field string, row *int) string {
	if row == nil {
		return field
	}
	return fmt.Sprintf("%s#%d", field, *row)
}

func (f *fixedSource) ValueFor(_ context.Context, req port.FieldRequest) (port.Extracted, error) {
	f.calls++
	if f.onValue != nil {
		f.onValue(f.calls)
	}
	v, ok := f.values[f.key(req.SourceField, req.Row)]
	if !ok {
		return port.Extracted{}, domain.ErrMissingFieldValue
	}
	return v, nil
}

func (f *fixedSource) RowCount(context.Context, domain.Partner) (int, error) {
	return f.rows, nil
}

var acme = domain.Partner{Name: "ACME Corporation", Type: domain.PartnerTypeVendor}

func newExecutor(t *testing.T, maxRows int) (*mapping.Executor, *domain.MappingRuleSet) {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	rs := c.RuleSets[0].Clone()
	return mapping.NewExecutor(c, maxRows, zap.NewNop()), rs
}

func rs1Source() *fixedSource {
	return &fixedSource{
		rows: 2,
		values: map[string]port.Extracted{
			"Invoice Number":     {Value: "DOC-1234", Confidence: 97},
			"Invoice Date":       {Value: "2024-01-05", Confidence: 90},
			"Due Date":           {Value: "2024-02-05", Confidence: 99},
			"Total Amount":       {Value: "$120.00", Confidence: 95},
			"Vendor Name":        {Value: "", Confidence: 99},
			"Item Description#0": {Value: "9EA-00314", Confidence: 96},
			"Quantity#0":         {Value: "16", Confidence: 88},
			"Unit Price#0":       {Value: "37.32", Confidence: 100},
			"Item Description#1": {Value: "KW5-00359", Confidence: 81},
			"Quantity#1":         {Value: "126", Confidence: 99},
			"Unit Price#1":       {Value: "17.16", Confidence: 120},
		},
	}
}

func TestExecute_RS1Scenario(t *testing.T) {
	exec, rs := newExecutor(t, 0)

	out, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)

	require.Len(t, out.HeaderData, 5)
	for i, f := range out.HeaderData {
		assert.Equal(t, fmt.Sprintf("pdh-%d", i+1), f.ID)
		assert.Equal(t, rs.HeaderRules[i].TargetField, f.Field)
	}
	assert.Equal(t, domain.ReviewStatusConfirmed, out.HeaderData[0].Status)
	assert.Equal(t, domain.ReviewStatusNeedsReview, out.HeaderData[1].Status)
	assert.Equal(t, domain.ReviewStatusConfirmed, out.HeaderData[2].Status)
	// Exactly 95 is not above the threshold.
	assert.Equal(t, domain.ReviewStatusNeedsReview, out.HeaderData[3].Status)
	// Empty values always need review.
	assert.Equal(t, domain.ReviewStatusNeedsReview, out.HeaderData[4].Status)

	require.Len(t, out.Items, 2)
	for row, item := range out.Items {
		assert.Len(t, item, 3)
		for j, rule := range rs.ItemRules[0].Rules {
			f, ok := item[rule.TargetField]
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("pdi-%d-%d", row, j), f.ID)
			assert.Equal(t, rule.TargetField, f.Field)
		}
	}
	assert.Equal(t, "9EA-00314", out.Items[0]["Items[].ManufacturerPartNo"].Value)
	assert.Equal(t, 100.0, out.Items[1]["Items[].UnitPrice"].Confidence)
	assert.Equal(t, domain.ReviewStatusConfirmed, out.Items[1]["Items[].UnitPrice"].Status)
}

func TestExecute_StatusMatchesThreshold(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	out, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)

	check := func(f domain.ParsedDataField) {
		want := domain.ReviewStatusNeedsReview
		if f.Value != "" && f.Confidence > mapping.ConfirmThreshold {
			want = domain.ReviewStatusConfirmed
		}
		assert.Equal(t, want, f.Status, f.ID)
		assert.GreaterOrEqual(t, f.Confidence, 0.0)
		assert.LessOrEqual(t, f.Confidence, 100.0)
	}
	for _, f := range out.HeaderData {
		check(f)
	}
	for _, row := range out.Items {
		for _, f := range row {
			check(f)
		}
	}
}

func TestExecute_Deterministic(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	a, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)
	b, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExecute_MissingValueDegrades(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	src := rs1Source()
	delete(src.values, "Invoice Date")

	out, err := exec.Execute(context.Background(), acme, rs, src)
	require.NoError(t, err)
	f := out.HeaderData[1]
	assert.Empty(t, f.Value)
	assert.Zero(t, f.Confidence)
	assert.Equal(t, domain.ReviewStatusNeedsReview, f.Status)
}

func TestExecute_LastRuleWinsForDuplicateTarget(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	rs.ItemRules[0].Rules = append(rs.ItemRules[0].Rules,
		domain.MappingRule{ID: "ri-4", SourceField: "Quantity", TargetField: "Items[].UnitPrice"})

	out, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)
	f := out.Items[0]["Items[].UnitPrice"]
	assert.Equal(t, "16", f.Value)
	assert.Equal(t, "pdi-0-3", f.ID)
	assert.Len(t, out.Items[0], 3)
}

func TestExecute_LastHeaderRuleWinsForDuplicateTarget(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	rs.HeaderRules = append(rs.HeaderRules,
		domain.MappingRule{ID: "rh-6", SourceField: "Due Date", TargetField: "Invoice.InvoiceNo"})

	out, err := exec.Execute(context.Background(), acme, rs, rs1Source())
	require.NoError(t, err)
	require.Len(t, out.HeaderData, 5)

	var matches []domain.ParsedDataField
	for _, f := range out.HeaderData {
		if f.Field == "Invoice.InvoiceNo" {
			matches = append(matches, f)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "2024-02-05", matches[0].Value)
	assert.Equal(t, "pdh-1", matches[0].ID)
	assert.Equal(t, "Invoice.InvoiceNo", out.HeaderData[0].Field)
}

func TestExecute_UnknownBizModel(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	rs.BizModelID = "bm-missing"
	src := rs1Source()

	out, err := exec.Execute(context.Background(), acme, rs, src)
	assert.ErrorIs(t, err, domain.ErrUnknownBizModel)
	assert.Nil(t, out)
	assert.Zero(t, src.calls)
}

func TestExecute_NoItemRules(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	rs.ItemRules = nil

	src := new(mocks.MockExtractionSource)
	src.On("ValueFor", mock.Anything, mock.Anything).Return(port.Extracted{Value: "v", Confidence: 99}, nil)

	out, err := exec.Execute(context.Background(), acme, rs, src)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	src.AssertNotCalled(t, "RowCount", mock.Anything, mock.Anything)
}

func TestExecute_ZeroRowsAndRowCountErrors(t *testing.T) {
	exec, rs := newExecutor(t, 0)

	for name, setup := range map[string]func(*mocks.MockExtractionSource){
		"zero rows": func(m *mocks.MockExtractionSource) { m.On("RowCount", mock.Anything, acme).Return(0, nil) },
		"count error": func(m *mocks.MockExtractionSource) {
			m.On("RowCount", mock.Anything, acme).Return(0, errors.New("ocr down"))
		},
	} {
		t.Run(name, func(t *testing.T) {
			src := new(mocks.MockExtractionSource)
			src.On("ValueFor", mock.Anything, mock.Anything).Return(port.Extracted{Value: "v", Confidence: 50}, nil)
			setup(src)

			out, err := exec.Execute(context.Background(), acme, rs, src)
			require.NoError(t, err)
			assert.Len(t, out.HeaderData, 5)
			assert.Empty(t, out.Items)
		})
	}
}

func TestExecute_ExtractionErrorDegrades(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	src := new(mocks.MockExtractionSource)
	src.On("ValueFor", mock.Anything, mock.Anything).Return(port.Extracted{}, errors.New("timeout talking to extractor"))
	src.On("RowCount", mock.Anything, acme).Return(1, nil)

	out, err := exec.Execute(context.Background(), acme, rs, src)
	require.NoError(t, err)
	for _, f := range out.HeaderData {
		assert.Empty(t, f.Value)
		assert.Equal(t, domain.ReviewStatusNeedsReview, f.Status)
	}
	require.Len(t, out.Items, 1)
}

func TestExecute_RowsClampedToMax(t *testing.T) {
	exec, rs := newExecutor(t, 3)
	src := rs1Source()
	src.rows = 10_000

	out, err := exec.Execute(context.Background(), acme, rs, src)
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}

func TestExecute_NegativeConfidenceClamped(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	src := rs1Source()
	src.values["Invoice Number"] = port.Extracted{Value: "x", Confidence: -5}

	out, err := exec.Execute(context.Background(), acme, rs, src)
	require.NoError(t, err)
	assert.Zero(t, out.HeaderData[0].Confidence)
}

func TestExecute_CanceledMidRun(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	src := rs1Source()
	src.onValue = func(n int) {
		if n == 3 {
			cancel()
		}
	}

	out, err := exec.Execute(ctx, acme, rs, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestExecute_UsesPassedSnapshot(t *testing.T) {
	exec, rs := newExecutor(t, 0)
	snapshot := rs.Clone()
	rs.HeaderRules = rs.HeaderRules[:1]

	out, err := exec.Execute(context.Background(), acme, snapshot, rs1Source())
	require.NoError(t, err)
	assert.Len(t, out.HeaderData, 5)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, domain.ReviewStatusConfirmed, mapping.StatusFor("x", 95.01))
	assert.Equal(t, domain.ReviewStatusNeedsReview, mapping.StatusFor("x", 95))
	assert.Equal(t, domain.ReviewStatusNeedsReview, mapping.StatusFor("", 100))
}
