// Package schema enumerates the addressable target field paths of a business
// model schema.
package schema

import "strings"

// ItemMarker is appended to an array name to build item paths, e.g. "Items[].UnitPrice".
const ItemMarker = "[]"

// TargetPaths holds the resolved paths for one schema.
type TargetPaths struct {
	Header []string            `json:"header"`
	Items  map[string][]string `json:"items"`
	Arrays []string            `json:"arrays"`

	headerSet map[string]struct{}
	itemSets  map[string]map[string]struct{}
}

// Empty reports whether the schema produced no paths at all.
func (t *TargetPaths) Empty() bool {
	return len(t.Header) == 0 && len(t.Arrays) == 0
}

// HasHeader reports whether path is a valid header target.
func (t *TargetPaths) HasHeader(path string) bool {
	_, ok := t.headerSet[path]
	return ok
}

// HasArray reports whether name is a top-level array of the schema.
func (t *TargetPaths) HasArray(name string) bool {
	_, ok := t.itemSets[name]
	return ok
}

// HasItem reports whether path is a valid item target within the named array.
func (t *TargetPaths) HasItem(array, path string) bool {
	set, ok := t.itemSets[array]
	if !ok {
		return false
	}
	_, ok = set[path]
	return ok
}

// ItemPath builds the bracket-notation path of a leaf inside an array's item shape.
func ItemPath(array, leaf string) string {
	return array + ItemMarker + "." + leaf
}

// Resolve walks the schema depth-first and returns its header and item paths.
// A nil or malformed schema yields empty path sets.
func Resolve(root *Node) *TargetPaths {
	tp := &TargetPaths{
		Header:    []string{},
		Items:     map[string][]string{},
		Arrays:    []string{},
		headerSet: map[string]struct{}{},
		itemSets:  map[string]map[string]struct{}{},
	}

	top := effectiveRoot(root)
	if top == nil {
		return tp
	}

	for _, prop := range top.Properties {
		if prop.Node == nil {
			continue
		}
		if prop.Node.Type == KindArray {
			tp.openGroup(prop.Name)
			if prop.Node.Items != nil {
				tp.walkItem(prop.Name, prop.Name+ItemMarker, prop.Node.Items)
			}
			continue
		}
		tp.walkHeader(prop.Name, prop.Node)
	}
	return tp
}

// effectiveRoot unwraps a root array (a list of documents) to its item object.
func effectiveRoot(root *Node) *Node {
	if root == nil {
		return nil
	}
	if root.Type == KindArray {
		if root.Items == nil || len(root.Items.Properties) == 0 {
			return nil
		}
		return root.Items
	}
	if len(root.Properties) == 0 {
		return nil
	}
	return root
}

func (t *TargetPaths) walkHeader(prefix string, n *Node) {
	if n.Type == KindObject && len(n.Properties) > 0 {
		for _, p := range n.Properties {
			if p.Node == nil {
				continue
			}
			t.walkHeader(prefix+"."+p.Name, p.Node)
		}
		return
	}
	// Leaves include scalars, empty objects and nested arrays.
	t.Header = append(t.Header, prefix)
	t.headerSet[prefix] = struct{}{}
}

func (t *TargetPaths) openGroup(name string) {
	if _, ok := t.itemSets[name]; ok {
		return
	}
	t.Arrays = append(t.Arrays, name)
	t.Items[name] = []string{}
	t.itemSets[name] = map[string]struct{}{}
}

func (t *TargetPaths) walkItem(array, prefix string, n *Node) {
	if n.Type == KindObject && len(n.Properties) > 0 {
		for _, p := range n.Properties {
			if p.Node == nil {
				continue
			}
			t.walkItem(array, prefix+"."+p.Name, p.Node)
		}
		return
	}
	// For an array of scalars the element itself ("Tags[]") is the only leaf.
	t.Items[array] = append(t.Items[array], prefix)
	t.itemSets[array][prefix] = struct{}{}
}

// ArrayOf returns the array name of an item path ("Items[].UnitPrice" -> "Items").
func ArrayOf(itemPath string) (string, bool) {
	idx := strings.Index(itemPath, ItemMarker)
	if idx <= 0 {
		return "", false
	}
	return itemPath[:idx], true
}
