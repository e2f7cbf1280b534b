package domain

import (
	"github.com/shopspring/decimal"
)

// NodeKind distinguishes directly priced instruments from derived portfolios.
type NodeKind string

const (
	NodeKindLeaf      NodeKind = "LEAF"
	NodeKindComposite NodeKind = "COMPOSITE"
)

// LeafPrice declares a directly priced instrument and the price it starts
// with. Prices arrive as float64 from CSVs, feeds and JSON; the graph builder
// validates them and converts to decimal before any math happens.
type LeafPrice struct {
	ID    string
	Price float64
}

// Edge is one holding line of a portfolio definition: parent holds Weight
// units of child. The same (parent, child) pair may appear more than once;
// each occurrence is kept as its own lot.
type Edge struct {
	ParentID string
	ChildID  string
	Weight   float64
}

// Holding is a resolved position line of a composite.
type Holding struct {
	ChildID string          `json:"childId"`
	Weight  decimal.Decimal `json:"weight"`
}

// NodeValue is one line of an update receipt or snapshot: a node and the
// value it holds after the latest recompute.
type NodeValue struct {
	ID    string          `json:"id"`
	Value decimal.Decimal `json:"value"`
}
