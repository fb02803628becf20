package quality

import (
	"context"
	"fmt"
	"sort"
)

// memTable is an in-memory table for rule tests: column name to values,
// with nil as NULL.
type memTable map[string][]any

// memSource evaluates predicates directly against memTables.
type memSource struct {
	tables map[string]memTable
	err    error
	calls  int
}

func newMemSource(table string, t memTable) *memSource {
	return &memSource{tables: map[string]memTable{table: t}}
}

func (m *memSource) table(name string) (memTable, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", name)
	}
	return t, nil
}

func (t memTable) rowCount() int {
	for _, vals := range t {
		return len(vals)
	}
	return 0
}

func (m *memSource) CountRows(_ context.Context, table string) (int64, error) {
	t, err := m.table(table)
	if err != nil {
		return 0, err
	}
	return int64(t.rowCount()), nil
}

func (m *memSource) CountWhere(_ context.Context, table string, where Predicate) (int64, error) {
	t, err := m.table(table)
	if err != nil {
		return 0, err
	}
	var n int64
	for i := 0; i < t.rowCount(); i++ {
		ok, err := eval(where, t, i)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (m *memSource) GroupedDuplicates(_ context.Context, table, column string) ([]DuplicateGroup, error) {
	t, err := m.table(table)
	if err != nil {
		return nil, err
	}
	vals, ok := t[column]
	if !ok {
		return nil, fmt.Errorf("no such column: %s", column)
	}

	counts := map[any]int64{}
	var order []any
	for _, v := range vals {
		if v == nil {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	var groups []DuplicateGroup
	for _, v := range order {
		if counts[v] > 1 {
			groups = append(groups, DuplicateGroup{Value: v, Count: counts[v]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return fmt.Sprint(groups[i].Value) < fmt.Sprint(groups[j].Value) })
	return groups, nil
}

func eval(p Predicate, t memTable, row int) (bool, error) {
	switch x := p.(type) {
	case isNull:
		vals, ok := t[x.column]
		if !ok {
			return false, fmt.Errorf("no such column: %s", x.column)
		}
		return vals[row] == nil, nil
	case comparison:
		vals, ok := t[x.column]
		if !ok {
			return false, fmt.Errorf("no such column: %s", x.column)
		}
		if vals[row] == nil {
			return false, nil
		}
		v := toFloat(vals[row])
		bound := x.value.(float64)
		if x.op == "<" {
			return v < bound, nil
		}
		return v > bound, nil
	case junction:
		if len(x.terms) == 0 {
			return x.op == "AND", nil
		}
		for _, term := range x.terms {
			ok, err := eval(term, t, row)
			if err != nil {
				return false, err
			}
			if x.op == "OR" && ok {
				return true, nil
			}
			if x.op == "AND" && !ok {
				return false, nil
			}
		}
		return x.op == "AND", nil
	}
	return false, fmt.Errorf("unknown predicate %T", p)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	panic(fmt.Sprintf("not numeric: %T", v))
}
