// Package mapping runs a rule set against an extraction source and produces
// a per-field-confidence ParsedOutput.
package mapping

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// ConfirmThreshold is the confidence above which a field starts out Confirmed.
const ConfirmThreshold = 95.0

// DefaultMaxRows bounds the number of item rows taken from an extraction source.
const DefaultMaxRows = 500

// BizModelLookup resolves business models by id.
type BizModelLookup interface {
	BizModel(id string) (*domain.BizModel, bool)
}

// Executor applies mapping rule sets.
type Executor struct {
	models  BizModelLookup
	maxRows int
	logger  *zap.Logger
}

// NewExecutor creates an Executor. maxRows <= 0 selects DefaultMaxRows.
func NewExecutor(models BizModelLookup, maxRows int, logger *zap.Logger) *Executor {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Executor{models: models, maxRows: maxRows, logger: logger.Named("mapping")}
}

// StatusFor derives the initial review status of an extracted value.
func StatusFor(value string, confidence float64) domain.ReviewStatus {
	if value != "" && confidence > ConfirmThreshold {
		return domain.ReviewStatusConfirmed
	}
	return domain.ReviewStatusNeedsReview
}

// Execute maps every header and item rule of rs. The rule set value passed in
// is the snapshot used for the whole run. Single-field extraction failures
// degrade to an empty NeedsReview field; only an unknown business model or
// cancellation fail the run, and then no output is returned.
func (e *Executor) Execute(ctx context.Context, partner domain.Partner, rs *domain.MappingRuleSet, source port.ExtractionSource) (*domain.ParsedOutput, error) {
	if _, ok := e.models.BizModel(rs.BizModelID); !ok {
		return nil, fmt.Errorf("executing rule set %s: %w", rs.ID, domain.ErrUnknownBizModel)
	}

	out := &domain.ParsedOutput{
		HeaderData: make([]domain.ParsedDataField, 0, len(rs.HeaderRules)),
		Items:      []domain.ItemRow{},
	}

	// A later rule for an already emitted target replaces that field in place.
	// The field keeps its position and the pdh id of the first rule.
	emitted := make(map[string]int, len(rs.HeaderRules))
	for i, rule := range rs.HeaderRules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if at, ok := emitted[rule.TargetField]; ok {
			out.HeaderData[at] = e.evaluate(ctx, source, partner, rule, nil, out.HeaderData[at].ID)
			continue
		}
		emitted[rule.TargetField] = len(out.HeaderData)
		out.HeaderData = append(out.HeaderData, e.evaluate(ctx, source, partner, rule, nil, fmt.Sprintf("pdh-%d", i+1)))
	}

	if !hasItemRules(rs) {
		return out, nil
	}

	rows, err := e.rowCount(ctx, source, partner, rs.ID)
	if err != nil {
		return nil, err
	}

	for row := 0; row < rows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := row
		item := domain.ItemRow{}
		j := 0
		for _, group := range rs.ItemRules {
			for _, rule := range group.Rules {
				// Later rules overwrite earlier ones for the same target.
				item[rule.TargetField] = e.evaluate(ctx, source, partner, rule, &r, fmt.Sprintf("pdi-%d-%d", row, j))
				j++
			}
		}
		out.Items = append(out.Items, item)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Info("rule set executed",
		zap.String("rule_set_id", rs.ID),
		zap.String("partner", partner.Name),
		zap.Int("header_fields", len(out.HeaderData)),
		zap.Int("item_rows", len(out.Items)))
	return out, nil
}

func hasItemRules(rs *domain.MappingRuleSet) bool {
	for _, g := range rs.ItemRules {
		if len(g.Rules) > 0 {
			return true
		}
	}
	return false
}

// rowCount asks the source for the number of item rows. Anything other than
// cancellation is absorbed: the document simply gets no item rows.
func (e *Executor) rowCount(ctx context.Context, src port.ExtractionSource, partner domain.Partner, ruleSetID string) (int, error) {
	n, err := src.RowCount(ctx, partner)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		e.logger.Warn("row count unavailable", zap.String("rule_set_id", ruleSetID), zap.Error(err))
		return 0, nil
	}
	if n <= 0 {
		e.logger.Warn("no item rows extracted",
			zap.String("rule_set_id", ruleSetID),
			zap.Error(domain.ErrEmptyExtraction))
		return 0, nil
	}
	if n > e.maxRows {
		e.logger.Warn("item rows truncated", zap.Int("extracted", n), zap.Int("max_rows", e.maxRows))
		n = e.maxRows
	}
	return n, nil
}

func (e *Executor) evaluate(ctx context.Context, src port.ExtractionSource, partner domain.Partner, rule domain.MappingRule, row *int, id string) domain.ParsedDataField {
	field := domain.ParsedDataField{
		ID:     id,
		Field:  rule.TargetField,
		Status: domain.ReviewStatusNeedsReview,
	}
	got, err := src.ValueFor(ctx, port.FieldRequest{SourceField: rule.SourceField, Partner: partner, Row: row})
	if err != nil {
		if !errors.Is(err, domain.ErrMissingFieldValue) && ctx.Err() == nil {
			e.logger.Warn("extraction failed",
				zap.String("source_field", rule.SourceField),
				zap.String("target_field", rule.TargetField),
				zap.Error(err))
		}
		return field
	}
	field.Value = got.Value
	field.Confidence = clamp(got.Confidence)
	field.Status = StatusFor(field.Value, field.Confidence)
	return field
}

func clamp(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}
