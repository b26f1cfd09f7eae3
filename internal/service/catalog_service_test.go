package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docmap/internal/catalog"
	"docmap/internal/domain"
	"docmap/internal/ruleset"
	"docmap/internal/service"
)

func newCatalogService(t *testing.T) service.CatalogService {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	store := ruleset.NewStore(cat, zap.NewNop())
	for i := range cat.RuleSets {
		require.NoError(t, store.Add(&cat.RuleSets[i]))
	}
	return service.NewCatalogService(cat, store, ruleset.NewIndex(cat.Templates, store), zap.NewNop())
}

func TestCatalogService_BizModels(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	models := svc.BizModels(ctx)
	require.Len(t, models, 1)
	assert.Equal(t, "bm-invoice-std", models[0].ID)

	_, err := svc.BizModel(ctx, "bm-missing")
	assert.ErrorIs(t, err, domain.ErrUnknownBizModel)

	paths, err := svc.TargetPaths(ctx, "bm-invoice-std")
	require.NoError(t, err)
	assert.Contains(t, paths.Header, "Invoice.InvoiceNo")
	assert.Contains(t, paths.Items["Items"], "Items[].UnitPrice")
}

func TestCatalogService_Templates(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	assert.Len(t, svc.Templates(ctx, nil), 4)

	globex := domain.Partner{Name: "Globex Inc.", Type: domain.PartnerTypeVendor}
	templates := svc.Templates(ctx, &globex)
	require.Len(t, templates, 3)
	assert.Equal(t, "t-4", templates[2].ID)
}

func TestCatalogService_UpsertHeaderRule_InvalidTarget(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.UpsertHeaderRule(ctx, "rs-1", domain.MappingRule{
		ID: "rh-1", SourceField: "Invoice Number", TargetField: "Invoice.NotARealField",
	})
	var target *domain.InvalidTargetFieldError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "Invoice.NotARealField", target.Path)

	rs, err := svc.GetRuleSet(ctx, "rs-1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice.InvoiceNo", rs.HeaderRules[0].TargetField)
}

func TestCatalogService_ItemRuleLifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	rs, err := svc.UpsertItemRule(ctx, "rs-1", 0, domain.MappingRule{
		ID: "ri-4", SourceField: "Quantity", TargetField: "Items[].InvoiceQuantity",
	})
	require.NoError(t, err)
	assert.Len(t, rs.ItemRules[0].Rules, 4)

	rs, err = svc.DeleteItemRule(ctx, "rs-1", 0, "ri-4")
	require.NoError(t, err)
	assert.Len(t, rs.ItemRules[0].Rules, 3)

	_, err = svc.DeleteItemRule(ctx, "rs-1", 3, "ri-1")
	assert.ErrorIs(t, err, domain.ErrItemGroupNotFound)

	_, err = svc.DeleteHeaderRule(ctx, "rs-1", "rh-404")
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestCatalogService_ReplaceRuleSet(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	rs, err := svc.GetRuleSet(ctx, "rs-1")
	require.NoError(t, err)
	rs.Name = "Renamed"
	rs.HeaderRules = rs.HeaderRules[:2]

	got, err := svc.ReplaceRuleSet(ctx, rs)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.HeaderRules, 2)

	rs.ID = "rs-404"
	_, err = svc.ReplaceRuleSet(ctx, rs)
	assert.ErrorIs(t, err, domain.ErrRuleSetNotFound)
}
