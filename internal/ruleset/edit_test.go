package ruleset_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap/internal/domain"
)

func TestUpsertHeaderRule_EditAndAppend(t *testing.T) {
	s, _ := seededStore(t)

	rs, err := s.UpsertHeaderRule("rs-1", domain.MappingRule{ID: "rh-1", SourceField: "Doc No", TargetField: "Invoice.InvoiceNo"})
	require.NoError(t, err)
	assert.Equal(t, "Doc No", rs.HeaderRules[0].SourceField)
	assert.Len(t, rs.HeaderRules, 5)

	rs, err = s.UpsertHeaderRule("rs-1", domain.MappingRule{ID: "rh-6", SourceField: "PO Number", TargetField: "Invoice.PONo"})
	require.NoError(t, err)
	assert.Len(t, rs.HeaderRules, 6)

	stored, _ := s.Get("rs-1")
	assert.Equal(t, rs, stored)
}

func TestUpsertHeaderRule_InvalidTargetLeavesStoreUntouched(t *testing.T) {
	s, _ := seededStore(t)
	before, _ := s.Get("rs-1")

	_, err := s.UpsertHeaderRule("rs-1", domain.MappingRule{ID: "rh-1", SourceField: "x", TargetField: "Invoice.NotARealField"})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetField)

	after, _ := s.Get("rs-1")
	assert.Equal(t, before, after)
}

func TestUpsertItemRule(t *testing.T) {
	s, _ := seededStore(t)

	rs, err := s.UpsertItemRule("rs-1", 0, domain.MappingRule{ID: "ri-4", SourceField: "Line", TargetField: "Items[].LineItemIdentification"})
	require.NoError(t, err)
	assert.Len(t, rs.ItemRules[0].Rules, 4)

	_, err = s.UpsertItemRule("rs-1", 3, domain.MappingRule{ID: "ri-5"})
	assert.ErrorIs(t, err, domain.ErrItemGroupNotFound)

	_, err = s.UpsertItemRule("rs-1", 0, domain.MappingRule{ID: "ri-5", SourceField: "x", TargetField: "Items[].Nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetField)
}

func TestDeleteRules(t *testing.T) {
	s, _ := seededStore(t)

	rs, err := s.DeleteHeaderRule("rs-1", "rh-3")
	require.NoError(t, err)
	assert.Len(t, rs.HeaderRules, 4)
	for _, r := range rs.HeaderRules {
		assert.NotEqual(t, "rh-3", r.ID)
	}

	_, err = s.DeleteHeaderRule("rs-1", "rh-3")
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)

	rs, err = s.DeleteItemRule("rs-1", 0, "ri-2")
	require.NoError(t, err)
	assert.Len(t, rs.ItemRules[0].Rules, 2)

	_, err = s.DeleteItemRule("rs-1", 1, "ri-1")
	assert.ErrorIs(t, err, domain.ErrItemGroupNotFound)

	_, err = s.DeleteItemRule("rs-404", 0, "ri-1")
	assert.ErrorIs(t, err, domain.ErrRuleSetNotFound)
}

func TestUpsertHeaderRule_ConcurrentEditsKeepEveryRule(t *testing.T) {
	s, _ := seededStore(t)
	before, _ := s.Get("rs-1")

	const editors = 200
	var wg sync.WaitGroup
	wg.Add(editors)
	for i := 0; i < editors; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := s.UpsertHeaderRule("rs-1", domain.MappingRule{
				ID: fmt.Sprintf("rh-new-%d", i), SourceField: "PO Number", TargetField: "Invoice.PONo",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	after, err := s.Get("rs-1")
	require.NoError(t, err)
	assert.Len(t, after.HeaderRules, len(before.HeaderRules)+editors)
}

func TestDeleteAndUpsert_ConcurrentItemEdits(t *testing.T) {
	s, _ := seededStore(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.DeleteItemRule("rs-1", 0, "ri-1")
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := s.UpsertItemRule("rs-1", 0, domain.MappingRule{ID: "ri-4", SourceField: "Line", TargetField: "Items[].LineItemIdentification"})
		assert.NoError(t, err)
	}()
	wg.Wait()

	rs, _ := s.Get("rs-1")
	ids := make([]string, 0, len(rs.ItemRules[0].Rules))
	for _, r := range rs.ItemRules[0].Rules {
		ids = append(ids, r.ID)
	}
	assert.NotContains(t, ids, "ri-1")
	assert.Contains(t, ids, "ri-4")
}

func TestUpsertHeaderRule_RejectsEmptySourceField(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.UpsertHeaderRule("rs-1", domain.MappingRule{ID: "rh-7", SourceField: "  ", TargetField: "Invoice.PONo"})
	assert.ErrorIs(t, err, domain.ErrMissingSourceField)
}
