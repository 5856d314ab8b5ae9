package filter

// noOpFilter is a filter that always returns true (no filtering).
// Useful as a Filter when a caller wants the interface without paying for
// a bit set, e.g. in tests that exercise callers of Filter directly.
type noOpFilter struct{}

var _ Filter = (*noOpFilter)(nil)

// MayContain always returns true, meaning no filtering is performed.
func (f *noOpFilter) MayContain(key []byte) bool {
	return true
}

// NewNoOpFilter creates a new no-op filter.
func NewNoOpFilter() Filter {
	return &noOpFilter{}
}
