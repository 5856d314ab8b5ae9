package filter

// Filter provides fast negative lookups for keys in a keyed collection.
// A bloom filter can definitively say a key is NOT present, but can only
// say a key MIGHT be present (false positives possible, false negatives not).
type Filter interface {
	// MayContain returns true if the key might be present.
	// Returns false if the key is definitely NOT present.
	MayContain(key []byte) bool
}
