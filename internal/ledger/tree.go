package ledger

import (
	"sort"

	"github.com/Jlford67/landlord-sub001/internal/models"
)

// Tree indexes a category forest by parent id and answers subtree rollup
// queries. A category whose declared parent is absent from the set is
// treated as a root. The tree itself is immutable after construction and
// safe for concurrent readers; rollup memo state is allocated per call
// and never shared between invocations.
type Tree struct {
	byID     map[string]models.Category
	children map[string][]string
	roots    []string
}

// NewTree builds the parent→children relation over the given categories.
// Sibling groups are ordered by name; the ordering only matters for
// presentation.
func NewTree(categories []models.Category) *Tree {
	t := &Tree{
		byID:     make(map[string]models.Category, len(categories)),
		children: make(map[string][]string),
	}
	for _, c := range categories {
		t.byID[c.ID] = c
	}
	for _, c := range categories {
		if c.ParentID != nil {
			if _, ok := t.byID[*c.ParentID]; ok {
				t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
				continue
			}
		}
		t.roots = append(t.roots, c.ID)
	}
	byName := func(ids []string) {
		sort.Slice(ids, func(i, j int) bool {
			return t.byID[ids[i]].Name < t.byID[ids[j]].Name
		})
	}
	byName(t.roots)
	for _, ids := range t.children {
		byName(ids)
	}
	return t
}

// Category returns the category with the given id, if present.
func (t *Tree) Category(id string) (models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Roots returns the root category ids, name-ordered.
func (t *Tree) Roots() []string {
	return t.roots
}

// Children returns the direct child ids of a category, name-ordered.
func (t *Tree) Children(id string) []string {
	return t.children[id]
}

// Len returns the number of indexed categories.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Rollup computes aggregate(id) = direct[id] + Σ aggregate(child) for
// every indexed category. The memo lives only for this call.
func (t *Tree) Rollup(direct map[string]int64) map[string]int64 {
	memo := make(map[string]int64, len(t.byID))
	var walk func(id string) int64
	walk = func(id string) int64 {
		if v, ok := memo[id]; ok {
			return v
		}
		memo[id] = 0 // terminates a malformed parent cycle
		total := direct[id]
		for _, child := range t.children[id] {
			total += walk(child)
		}
		memo[id] = total
		return total
	}
	for id := range t.byID {
		walk(id)
	}
	return memo
}
