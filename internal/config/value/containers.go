package value

import (
	"cmp"
	"slices"

	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// NewList creates an ordered list value. Document order is preserved.
func NewList[E any](name string, def []E, elem valuetype.ListKind, opts ...Option) *Value[[]E] {
	v := newValue(name, slices.Clone(def), valuetype.TextArray, ShapeList,
		append(opts, WithListKind(elem)))
	v.decodeContainer = func(doc any) ([]E, error) {
		items, err := decodeElements[E](doc, elem, v.opts.registry)
		if err != nil {
			return nil, v.mismatch(doc, err)
		}
		return items, nil
	}
	v.encodeContainer = func(items []E) any {
		return encodeItems(items)
	}
	return v
}

// NewSet creates an unordered set value. Duplicate elements collapse.
func NewSet[E comparable](name string, def payload.Set[E], elem valuetype.ListKind, opts ...Option) *Value[payload.Set[E]] {
	v := newValue(name, def, valuetype.TextArray, ShapeSet, append(opts, WithListKind(elem)))
	v.decodeContainer = func(doc any) (payload.Set[E], error) {
		items, err := decodeElements[E](doc, elem, v.opts.registry)
		if err != nil {
			return payload.Set[E]{}, v.mismatch(doc, err)
		}
		return payload.NewSet(items...), nil
	}
	v.encodeContainer = func(s payload.Set[E]) any {
		return encodeItems(s.Items())
	}
	return v
}

// NewSortedSet creates a set value that enumerates in ascending order.
func NewSortedSet[E cmp.Ordered](name string, def payload.SortedSet[E], elem valuetype.ListKind, opts ...Option) *Value[payload.SortedSet[E]] {
	v := newValue(name, def, valuetype.TextArray, ShapeSortedSet, append(opts, WithListKind(elem)))
	v.decodeContainer = func(doc any) (payload.SortedSet[E], error) {
		items, err := decodeElements[E](doc, elem, v.opts.registry)
		if err != nil {
			return payload.SortedSet[E]{}, v.mismatch(doc, err)
		}
		return payload.NewSortedSet(items...), nil
	}
	v.encodeContainer = func(s payload.SortedSet[E]) any {
		return encodeItems(s.Items())
	}
	return v
}

func encodeItems[E any](items []E) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = documentOf(item)
	}
	return out
}
