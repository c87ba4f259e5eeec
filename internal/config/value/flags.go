package value

import "sync"

// Flags holds the visibility flags of a node.
type Flags struct {
	mu                     sync.RWMutex
	exclude                func() bool
	notAnOption            bool
	independentDescription bool
}

// SetExcluded sets the predicate that hides the node from public documents.
func (f *Flags) SetExcluded(pred func() bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exclude = pred
}

// SetNotAnOption hides the node from API documents.
func (f *Flags) SetNotAnOption() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notAnOption = true
}

// SetIndependentDescription marks the node as carrying its own description
// rather than one derived from its parent.
func (f *Flags) SetIndependentDescription() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.independentDescription = true
}

// Excluded reports whether the node is hidden from public documents.
func (f *Flags) Excluded() bool {
	f.mu.RLock()
	pred := f.exclude
	f.mu.RUnlock()
	return pred != nil && pred()
}

// IsNotAnOption reports whether the node is hidden from API documents.
func (f *Flags) IsNotAnOption() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.notAnOption
}

// HasIndependentDescription reports whether the node has its own description.
func (f *Flags) HasIndependentDescription() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.independentDescription
}
