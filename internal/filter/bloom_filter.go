package filter

import (
	"hash/fnv"
	"io"
	"math"

	"concise/concise"
	"concise/internal/common"
)

// bloomFilter implements a space-efficient probabilistic data structure
// for set membership testing with no false negatives. Its backing bit
// array is a concise.Set rather than a flat byte array: most of the
// positions a bloom filter touches cluster into short runs once enough
// keys have been hashed in, so the same run-length encoding that makes
// the core useful as a general-purpose set also pays off here.
type bloomFilter struct {
	bits *concise.Set
	k    uint32 // number of hash functions
	m    uint32 // number of bits in the bitmap
}

var _ Filter = (*bloomFilter)(nil)

// OptimalBloomFilterParams computes optimal bloom filter parameters.
// n: expected number of elements to insert
// p: desired false positive rate (e.g., 0.01 for 1%)
// Returns: k (number of hash functions), m (number of bits)
func OptimalBloomFilterParams(n uint32, p float64) (k uint32, m uint32) {
	m = uint32(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	k = uint32(math.Ceil(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k, m
}

// NewBloomFilter creates a new, empty bloom filter.
func NewBloomFilter(k, m uint32) Filter {
	return &bloomFilter{bits: concise.New(), k: k, m: m}
}

// NewBloomFilterFromBits reconstructs a bloom filter around an already
// populated bit set, used when deserializing.
func NewBloomFilterFromBits(k, m uint32, bits *concise.Set) Filter {
	return &bloomFilter{bits: bits, k: k, m: m}
}

// Add inserts a key into the bloom filter.
func (bf *bloomFilter) Add(key []byte) {
	h1, h2 := bf.hash(key)
	for i := uint32(0); i < bf.k; i++ {
		pos := int((h1 + uint64(i)*h2) % uint64(bf.m))
		bf.bits.Add(pos)
	}
}

// MayContain returns true if the key might be in the set.
// Returns false if the key is definitely NOT in the set.
func (bf *bloomFilter) MayContain(key []byte) bool {
	h1, h2 := bf.hash(key)
	for i := uint32(0); i < bf.k; i++ {
		pos := int((h1 + uint64(i)*h2) % uint64(bf.m))
		if !bf.bits.Contains(pos) {
			return false
		}
	}
	return true
}

// hash computes two hash values using FNV-1a for double hashing.
func (bf *bloomFilter) hash(key []byte) (uint64, uint64) {
	h1 := fnv.New64a()
	h1.Write(key)
	hash1 := h1.Sum64()

	h2 := fnv.New64a()
	h2.Write(key)
	h2.Write([]byte{0x01})
	hash2 := h2.Sum64()
	if hash2 == 0 {
		hash2 = 1
	}

	return hash1, hash2
}

// WriteBloomFilter serializes a bloom filter to a writer.
// Format: [k: uint32][m: uint32][concise.Set.MarshalBinary() bytes]
func WriteBloomFilter(w io.Writer, f Filter) (int, error) {
	bf := f.(*bloomFilter)
	total := 0

	n, err := common.WriteUint32(w, bf.k)
	total += n
	if err != nil {
		return total, err
	}

	n, err = common.WriteUint32(w, bf.m)
	total += n
	if err != nil {
		return total, err
	}

	data, err := bf.bits.MarshalBinary()
	if err != nil {
		return total, err
	}
	n, err = common.WriteBytes(w, data)
	total += n
	return total, err
}

// ReadBloomFilter deserializes a bloom filter from a reader.
func ReadBloomFilter(r io.Reader) (Filter, error) {
	k, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	m, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	bits := concise.New()
	if err := bits.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return NewBloomFilterFromBits(k, m, bits), nil
}
