package quality

import (
	"errors"
	"fmt"
	"math"
)

// Kind names a rule type in a descriptor.
type Kind string

// Rule kinds.
const (
	KindNull   Kind = "null"
	KindUnique Kind = "unique"
	KindRange  Kind = "range"
)

// ErrInvalidDescriptor is returned when a descriptor cannot build a rule.
var ErrInvalidDescriptor = errors.New("invalid check descriptor")

// Descriptor declares one check: a rule kind, its target and parameters.
type Descriptor struct {
	Kind             Kind     `koanf:"kind" yaml:"kind" json:"kind"`
	Table            string   `koanf:"table" yaml:"table,omitempty" json:"table,omitempty"`
	Column           string   `koanf:"column" yaml:"column" json:"column"`
	ThresholdPercent float64  `koanf:"threshold_percent" yaml:"threshold_percent,omitempty" json:"threshold_percent,omitempty"`
	Min              *float64 `koanf:"min" yaml:"min,omitempty" json:"min,omitempty"`
	Max              *float64 `koanf:"max" yaml:"max,omitempty" json:"max,omitempty"`
	IntegerBounds    bool     `koanf:"integer_bounds" yaml:"integer_bounds,omitempty" json:"integer_bounds,omitempty"`
}

// Build returns the rule the descriptor declares.
func (d Descriptor) Build() (Rule, error) {
	if d.Table == "" || d.Column == "" {
		return nil, fmt.Errorf("%w: %s check needs a table and a column", ErrInvalidDescriptor, d.Kind)
	}
	switch d.Kind {
	case KindNull:
		if math.IsNaN(d.ThresholdPercent) || d.ThresholdPercent < 0 || d.ThresholdPercent > 100 {
			return nil, fmt.Errorf("%w: threshold %v for %s.%s is outside 0-100",
				ErrInvalidDescriptor, d.ThresholdPercent, d.Table, d.Column)
		}
		return NullRule{Table: d.Table, Column: d.Column, ThresholdPercent: d.ThresholdPercent}, nil
	case KindUnique:
		return UniqueRule{Table: d.Table, Column: d.Column}, nil
	case KindRange:
		for _, b := range []*float64{d.Min, d.Max} {
			if b != nil && math.IsNaN(*b) {
				return nil, fmt.Errorf("%w: NaN bound for %s.%s", ErrInvalidDescriptor, d.Table, d.Column)
			}
		}
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return nil, fmt.Errorf("%w: min %v is greater than max %v for %s.%s",
				ErrInvalidDescriptor, *d.Min, *d.Max, d.Table, d.Column)
		}
		return RangeRule{Table: d.Table, Column: d.Column, Min: d.Min, Max: d.Max, IntegerBounds: d.IntegerBounds}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDescriptor, d.Kind)
	}
}

// BuildAll builds every descriptor, filling an empty Table with table.
// Nothing is returned unless all descriptors are valid.
func BuildAll(table string, descs []Descriptor) ([]Rule, error) {
	rules := make([]Rule, 0, len(descs))
	for i, d := range descs {
		if d.Table == "" {
			d.Table = table
		}
		r, err := d.Build()
		if err != nil {
			return nil, fmt.Errorf("check %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// DefaultBattery is the standard set of checks for a sales table, in
// execution order.
func DefaultBattery(table string) []Descriptor {
	return []Descriptor{
		{Kind: KindNull, Table: table, Column: "OrderID", ThresholdPercent: 0},
		{Kind: KindNull, Table: table, Column: "ProductID", ThresholdPercent: 0},
		{Kind: KindNull, Table: table, Column: "CustomerSegment", ThresholdPercent: 5},
		{Kind: KindUnique, Table: table, Column: "OrderID"},
		{Kind: KindRange, Table: table, Column: "Quantity", Min: Float(1), IntegerBounds: true},
		{Kind: KindRange, Table: table, Column: "Discount", Min: Float(0), Max: Float(1)},
		{Kind: KindRange, Table: table, Column: "TotalSale", Min: Float(0)},
	}
}
