package ledger

import (
	"time"

	"github.com/Jlford67/landlord-sub001/internal/models"
)

// KindSet is the set of category kinds a report admits.
type KindSet map[models.CategoryKind]bool

// Kinds builds a KindSet from the given kinds.
func Kinds(kinds ...models.CategoryKind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Has reports whether kind is in the set.
func (s KindSet) Has(kind models.CategoryKind) bool {
	return s[kind]
}

// AggregateInput carries everything one aggregation pass needs. Rows are
// expected to be pre-filtered for soft deletion and property scope by
// the loader; transactions outside [RangeStart, RangeEnd] or outside the
// admitted kinds are ignored here.
type AggregateInput struct {
	Categories   []models.Category
	Transactions []models.Transaction
	Annual       []models.AnnualCategoryAmount
	RangeStart   time.Time
	RangeEnd     time.Time
	Kinds        KindSet
	Policy       SignPolicy

	// ItemizedOnly skips the prorated annual layer (the cash view of a
	// cash-vs-accrual comparison).
	ItemizedOnly bool
}

// CategoryTotal is one flat per-category line.
type CategoryTotal struct {
	CategoryID string              `json:"category_id"`
	Name       string              `json:"name"`
	Kind       models.CategoryKind `json:"kind"`
	Total      int64               `json:"total"`
}

// CategoryNode is one node of a hierarchical report: the category's own
// contributions plus the rolled-up subtree total.
type CategoryNode struct {
	CategoryID string              `json:"category_id"`
	Name       string              `json:"name"`
	Kind       models.CategoryKind `json:"kind"`
	Direct     int64               `json:"direct"`
	Total      int64               `json:"total"`
	Children   []CategoryNode      `json:"children,omitempty"`
}

// Aggregation is the result of one aggregation pass. All state is local
// to the pass; concurrent passes over the same store never share memo or
// totals.
type Aggregation struct {
	tree       *Tree
	kinds      KindSet
	direct     map[string]int64
	byProperty map[string]map[string]int64
}

// Aggregate combines itemized transaction sums with prorated annual
// sums, grouped by category and property.
func Aggregate(in AggregateInput) *Aggregation {
	a := &Aggregation{
		tree:       NewTree(in.Categories),
		kinds:      in.Kinds,
		direct:     make(map[string]int64),
		byProperty: make(map[string]map[string]int64),
	}

	rangeStart := in.RangeStart
	rangeEnd := in.RangeEnd

	for _, tx := range in.Transactions {
		cat, ok := a.tree.Category(tx.CategoryID)
		if !ok || !in.Kinds.Has(cat.Kind) {
			continue
		}
		if tx.Date.Before(rangeStart) || tx.Date.After(rangeEnd) {
			continue
		}
		a.add(tx.PropertyID, cat.ID, in.Policy.Normalize(cat.Kind, cat.ID, tx.Amount))
	}

	if !in.ItemizedOnly {
		for _, row := range in.Annual {
			cat, ok := a.tree.Category(row.CategoryID)
			if !ok || !in.Kinds.Has(cat.Kind) {
				continue
			}
			amount := in.Policy.Normalize(cat.Kind, cat.ID, row.Amount)
			share := Prorate(amount, row.Year, rangeStart, rangeEnd)
			if share == 0 {
				continue
			}
			a.add(row.PropertyID, cat.ID, share)
		}
	}

	return a
}

func (a *Aggregation) add(propertyID, categoryID string, amount int64) {
	a.direct[categoryID] += amount
	perProp, ok := a.byProperty[propertyID]
	if !ok {
		perProp = make(map[string]int64)
		a.byProperty[propertyID] = perProp
	}
	perProp[categoryID] += amount
}

// Flat returns one line per admitted category, name-ordered. Categories
// with a zero total are retained.
func (a *Aggregation) Flat() []CategoryTotal {
	var lines []CategoryTotal
	a.walkFlat(a.tree.Roots(), &lines)
	return lines
}

func (a *Aggregation) walkFlat(ids []string, out *[]CategoryTotal) {
	for _, id := range ids {
		cat, _ := a.tree.Category(id)
		if a.kinds.Has(cat.Kind) {
			*out = append(*out, CategoryTotal{
				CategoryID: cat.ID,
				Name:       cat.Name,
				Kind:       cat.Kind,
				Total:      a.direct[id],
			})
		}
		a.walkFlat(a.tree.Children(id), out)
	}
}

// Hierarchical rolls totals up the category tree and returns the root
// nodes. Subtrees with no nonzero contribution anywhere are omitted; a
// node whose rolled-up total is zero survives when nonzero descendants
// cancel each other out.
func (a *Aggregation) Hierarchical() []CategoryNode {
	rolled := a.tree.Rollup(a.direct)
	return a.buildNodes(a.tree.Roots(), rolled)
}

func (a *Aggregation) buildNodes(ids []string, rolled map[string]int64) []CategoryNode {
	var nodes []CategoryNode
	for _, id := range ids {
		children := a.buildNodes(a.tree.Children(id), rolled)
		if a.direct[id] == 0 && len(children) == 0 {
			continue
		}
		cat, _ := a.tree.Category(id)
		nodes = append(nodes, CategoryNode{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Kind:       cat.Kind,
			Direct:     a.direct[id],
			Total:      rolled[id],
			Children:   children,
		})
	}
	return nodes
}

// CategoryTotalFor returns the direct total for one category.
func (a *Aggregation) CategoryTotalFor(categoryID string) int64 {
	return a.direct[categoryID]
}

// PropertyTotals returns the summed total per property across all
// admitted categories.
func (a *Aggregation) PropertyTotals() map[string]int64 {
	totals := make(map[string]int64, len(a.byProperty))
	for propertyID, perCat := range a.byProperty {
		var sum int64
		for _, v := range perCat {
			sum += v
		}
		totals[propertyID] = sum
	}
	return totals
}

// PropertyCategoryTotals returns the per-category totals for one property.
func (a *Aggregation) PropertyCategoryTotals(propertyID string) map[string]int64 {
	return a.byProperty[propertyID]
}

// Total returns the grand total across all admitted categories.
func (a *Aggregation) Total() int64 {
	var sum int64
	for _, v := range a.direct {
		sum += v
	}
	return sum
}
