// Package bloom implements a fixed-size approximate membership filter.
//
// The filter answers "possibly present" or "definitely absent". Bits are only
// ever set, so an inserted item is reported present for the lifetime of the
// filter. Capacity and hash count are fixed at construction; inserting more
// unique items than the filter was sized for raises the false positive rate
// but is not an error.
//
// PossiblyContains only reads, so concurrent lookups are safe. Insert must
// not run alongside any other call.
package bloom

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCapacity is returned when the bit array size is not positive
	ErrInvalidCapacity = errors.New("bloom: capacity must be positive")
	// ErrInvalidHashCount is returned when the number of hash probes is not positive
	ErrInvalidHashCount = errors.New("bloom: hash count must be positive")
)

// Filter is a bloom filter over string items
type Filter struct {
	bits          *bitset.BitSet
	m             uint
	k             int
	uniqueInserts int
}

// New creates a filter with m bits and k hash probes per item
func New(m, k int) (*Filter, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, m)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHashCount, k)
	}

	return &Filter{
		bits: bitset.New(uint(m)),
		m:    uint(m),
		k:    k,
	}, nil
}

// MustNew is like New but panics on invalid parameters
func MustNew(m, k int) *Filter {
	f, err := New(m, k)
	if err != nil {
		panic(err)
	}
	return f
}

// position returns probe i for item: xxhash64(item || i) mod m
func (f *Filter) position(item string, i int) uint {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.WriteString(item)
	_, _ = d.WriteString(strconv.Itoa(i))
	return uint(d.Sum64() % uint64(f.m))
}

// Positions returns the k bit positions probed for item
func (f *Filter) Positions(item string) []uint {
	positions := make([]uint, f.k)
	for i := range positions {
		positions[i] = f.position(item, i)
	}
	return positions
}

// Insert records item and reports whether it was new. An item is new when at
// least one of its probe bits was unset; those bits are set and the unique
// insert count grows by one. When every probe bit is already set the item is
// treated as present and nothing changes.
func (f *Filter) Insert(item string) bool {
	added := false
	for i := 0; i < f.k; i++ {
		pos := f.position(item, i)
		if !f.bits.Test(pos) {
			f.bits.Set(pos)
			added = true
		}
	}

	if added {
		f.uniqueInserts++
	}
	return added
}

// PossiblyContains reports whether all probe bits for item are set.
// False positives are possible, false negatives are not.
func (f *Filter) PossiblyContains(item string) bool {
	for i := 0; i < f.k; i++ {
		if !f.bits.Test(f.position(item, i)) {
			return false
		}
	}
	return true
}

// Capacity returns m, the number of bits
func (f *Filter) Capacity() int {
	return int(f.m)
}

// HashCount returns k, the number of probes per item
func (f *Filter) HashCount() int {
	return f.k
}

// Stats returns a snapshot of the filter's fill state
func (f *Filter) Stats() Stats {
	set := int(f.bits.Count())
	load := float64(set) / float64(f.m)

	return Stats{
		Capacity:                   int(f.m),
		HashCount:                  f.k,
		UniqueInserts:              f.uniqueInserts,
		BitsSet:                    set,
		LoadFactor:                 load,
		EstimatedFalsePositiveRate: math.Pow(load, float64(f.k)),
	}
}

// Stats is a read-only snapshot of a Filter
type Stats struct {
	Capacity      int `json:"capacity" yaml:"capacity"`
	HashCount     int `json:"hash_count" yaml:"hash_count"`
	UniqueInserts int `json:"unique_inserts" yaml:"unique_inserts"`
	BitsSet       int `json:"bits_set" yaml:"bits_set"`
	// LoadFactor is BitsSet / Capacity
	LoadFactor float64 `json:"load_factor" yaml:"load_factor"`
	// EstimatedFalsePositiveRate is LoadFactor^HashCount. It is an
	// estimate from the fill state, not a measurement.
	EstimatedFalsePositiveRate float64 `json:"estimated_false_positive_rate" yaml:"estimated_false_positive_rate"`
}

// MarshalZerologObject formats these stats for logging purposes
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("capacity", s.Capacity)
	e.Int("hash_count", s.HashCount)
	e.Int("unique_inserts", s.UniqueInserts)
	e.Int("bits_set", s.BitsSet)
	e.Float64("load_factor", s.LoadFactor)
	e.Float64("est_fp_rate", s.EstimatedFalsePositiveRate)
}

// OptimalParameters sizes a filter for n expected items at false positive
// target p. Both results are at least 1.
func OptimalParameters(n int, p float64) (m, k int) {
	if n <= 0 {
		n = 1
	}
	if p <= 0 || p >= 1 {
		p = 0.01
	}

	m = int(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m < 1 {
		m = 1
	}
	k = int(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return m, k
}
