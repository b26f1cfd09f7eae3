package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"docmap/internal/schema"
)

const invoiceSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "Invoice": {
        "type": "object",
        "properties": {
          "InvoiceNo": {"type": "string"},
          "InvoiceDate": {"type": "string"},
          "BillTo": {
            "type": "object",
            "properties": {
              "Name": {"type": "string"},
              "Address": {"type": "array", "items": {"type": "string"}}
            }
          },
          "Terms": {"type": "object", "properties": {"TermsDescription": {"type": "string"}}}
        }
      },
      "Items": {
        "type": "array",
        "items": {
          "type": "object",
          "properties": {
            "LineItemIdentification": {"type": "string"},
            "UnitPrice": {"type": "string"},
            "Tax": {"type": "object", "properties": {"Amount": {"type": "number"}}},
            "Serials": {"type": "array", "items": {"type": "string"}}
          }
        }
      },
      "Notes": {"type": "string"}
    }
  }
}`

func mustNode(t *testing.T, src string) *schema.Node {
	t.Helper()
	var n schema.Node
	require.NoError(t, json.Unmarshal([]byte(src), &n))
	return &n
}

func TestResolve_InvoiceSchema(t *testing.T) {
	tp := schema.Resolve(mustNode(t, invoiceSchema))

	assert.Equal(t, []string{
		"Invoice.InvoiceNo",
		"Invoice.InvoiceDate",
		"Invoice.BillTo.Name",
		"Invoice.BillTo.Address",
		"Invoice.Terms.TermsDescription",
		"Notes",
	}, tp.Header)
	assert.Equal(t, []string{"Items"}, tp.Arrays)
	assert.Equal(t, []string{
		"Items[].LineItemIdentification",
		"Items[].UnitPrice",
		"Items[].Tax.Amount",
		"Items[].Serials",
	}, tp.Items["Items"])

	assert.True(t, tp.HasHeader("Invoice.InvoiceNo"))
	assert.False(t, tp.HasHeader("Invoice.NotARealField"))
	assert.False(t, tp.HasHeader("Invoice"))
	assert.True(t, tp.HasItem("Items", "Items[].UnitPrice"))
	assert.False(t, tp.HasItem("Items", "Invoice.InvoiceNo"))
	assert.False(t, tp.HasItem("Lines", "Items[].UnitPrice"))
	assert.True(t, tp.HasArray("Items"))
}

func TestResolve_HeaderAndItemsDisjoint(t *testing.T) {
	tp := schema.Resolve(mustNode(t, invoiceSchema))
	seen := map[string]bool{}
	for _, p := range tp.Header {
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
	}
	for _, paths := range tp.Items {
		for _, p := range paths {
			assert.False(t, seen[p], "duplicate %s", p)
			seen[p] = true
		}
	}
}

func TestResolve_ObjectRoot(t *testing.T) {
	tp := schema.Resolve(mustNode(t, `{"type":"object","properties":{"Ref":{"type":"string"},"Lines":{"type":"array","items":{"type":"string"}}}}`))
	assert.Equal(t, []string{"Ref"}, tp.Header)
	assert.Equal(t, []string{"Lines[]"}, tp.Items["Lines"])
}

func TestResolve_EmptyOrMalformed(t *testing.T) {
	tests := map[string]*schema.Node{
		"nil":                nil,
		"no properties":      {Type: schema.KindObject},
		"array without item": {Type: schema.KindArray},
		"array of scalars":   {Type: schema.KindArray, Items: &schema.Node{Type: schema.KindString}},
	}
	for name, n := range tests {
		t.Run(name, func(t *testing.T) {
			tp := schema.Resolve(n)
			assert.True(t, tp.Empty())
			assert.False(t, tp.HasHeader("anything"))
			assert.NotNil(t, tp.Header)
			assert.NotNil(t, tp.Items)
		})
	}
}

func TestNode_PreservesPropertyOrder(t *testing.T) {
	src := `{"type":"object","properties":{"Zeta":{"type":"string"},"Alpha":{"type":"string"},"Mid":{"type":"string"}}}`
	n := mustNode(t, src)
	require.Len(t, n.Properties, 3)
	assert.Equal(t, "Zeta", n.Properties[0].Name)
	assert.Equal(t, "Mid", n.Properties[2].Name)

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
	assert.Less(t, strings.Index(string(out), "Zeta"), strings.Index(string(out), "Alpha"))
}

func TestNode_UnmarshalYAML(t *testing.T) {
	var n schema.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
type: object
properties:
  B: { type: string }
  A:
    type: array
    items: { type: object, properties: { X: { type: number } } }
`), &n))

	tp := schema.Resolve(&n)
	assert.Equal(t, []string{"B"}, tp.Header)
	assert.Equal(t, []string{"A[].X"}, tp.Items["A"])
	assert.NotNil(t, n.Property("A"))
	assert.Nil(t, n.Property("C"))
}

func TestNode_RejectsNonObject(t *testing.T) {
	var n schema.Node
	assert.Error(t, json.Unmarshal([]byte(`["type"]`), &n))
	assert.Error(t, yaml.Unmarshal([]byte(`- a`), &n))
}

func TestArrayOf(t *testing.T) {
	name, ok := schema.ArrayOf("Items[].UnitPrice")
	assert.True(t, ok)
	assert.Equal(t, "Items", name)

	_, ok = schema.ArrayOf("Invoice.InvoiceNo")
	assert.False(t, ok)
	assert.Equal(t, "Items[].UnitPrice", schema.ItemPath("Items", "UnitPrice"))
}
