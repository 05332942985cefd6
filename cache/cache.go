// Package cache models a configurable set-associative cache with pluggable
// replacement policies (LRU, FIFO, Random, LFU).
package cache

import (
	"fmt"
	"math/bits"
	"math/rand"
	"strings"
)

// Config holds cache configuration parameters. All sizes are in bytes.
type Config struct {
	// Name identifies the cache in reports, e.g. "L1".
	Name string `json:"name"`

	// Size is the total capacity in bytes.
	Size int `json:"size"`

	// Associativity is the number of ways per set.
	Associativity int `json:"associativity"`

	// BlockSize is the cache line size in bytes. The bit-shift address
	// decomposition expects a power of two; this is not validated.
	BlockSize int `json:"block_size"`

	// Policy names the replacement policy. Unrecognized names behave as
	// LRU (see ParsePolicy).
	Policy Policy `json:"replacement_policy"`

	// HitTime is the latency of probing this cache, in time units.
	HitTime uint64 `json:"hit_time"`
}

// A ConfigError rejects an invalid cache configuration at construction
// time. Fields names the offending configuration fields.
type ConfigError struct {
	Fields []string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache config: %s (%s)",
		e.Msg, strings.Join(e.Fields, ", "))
}

// defaultRandSeed seeds the Random policy when no source is injected, so
// repeated runs are reproducible by default.
const defaultRandSeed = 1

// Cache is a set-associative store of blocks. It owns address
// decomposition, hit/miss detection, victim selection, and per-cache
// counters. It is not safe for concurrent use.
type Cache struct {
	config Config
	policy Policy
	finder VictimFinder
	rng    *rand.Rand

	numSets    int
	offsetBits uint
	indexBits  uint

	sets []*Set

	hits        uint64
	misses      uint64
	accessCount uint64
}

// Option configures a Cache at construction.
type Option func(*Cache)

// WithRandSource sets the random source the Random replacement policy draws
// from. Inject a distinct seeded source per experiment so runs stay
// independently reproducible.
func WithRandSource(src rand.Source) Option {
	return func(c *Cache) {
		c.rng = rand.New(src)
	}
}

// New creates a cache from the given configuration. It returns a
// *ConfigError if size, block size, or associativity is not positive, or if
// the size is not divisible by associativity*blockSize.
func New(config Config, opts ...Option) (*Cache, error) {
	if err := validate(config); err != nil {
		return nil, err
	}

	c := &Cache{
		config: config,
		policy: ParsePolicy(string(config.Policy)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(defaultRandSeed))
	}

	c.numSets = config.Size / (config.Associativity * config.BlockSize)
	c.offsetBits = floorLog2(config.BlockSize)
	c.indexBits = floorLog2(c.numSets)

	c.sets = make([]*Set, c.numSets)
	for i := range c.sets {
		c.sets[i] = NewSet(config.Associativity)
	}

	c.finder = NewVictimFinder(c.policy, c.rng)

	return c, nil
}

func validate(config Config) error {
	var fields []string
	if config.Size <= 0 {
		fields = append(fields, "size")
	}
	if config.Associativity <= 0 {
		fields = append(fields, "associativity")
	}
	if config.BlockSize <= 0 {
		fields = append(fields, "block_size")
	}
	if len(fields) > 0 {
		return &ConfigError{
			Fields: fields,
			Msg:    "size, associativity, and block_size must be positive",
		}
	}

	if config.Size%(config.Associativity*config.BlockSize) != 0 {
		return &ConfigError{
			Fields: []string{"size", "associativity", "block_size"},
			Msg:    "size must be divisible by associativity*block_size",
		}
	}

	return nil
}

// floorLog2 returns the truncated base-2 logarithm of n. floorLog2(1) is 0.
func floorLog2(n int) uint {
	return uint(bits.Len(uint(n)) - 1)
}

// addressParts splits a byte address into tag, index, and block offset.
func (c *Cache) addressParts(addr uint64) (tag, index, offset uint64) {
	offset = addr & ((1 << c.offsetBits) - 1)
	if c.indexBits > 0 {
		index = (addr >> c.offsetBits) & ((1 << c.indexBits) - 1)
	}
	tag = addr >> (c.offsetBits + c.indexBits)
	return tag, index, offset
}

// Access looks up addr at hierarchy logical time now and returns true on a
// hit. A hit refreshes per-block metadata according to the replacement
// policy; a miss installs the tag into a victim block. Access never fails:
// any non-negative address is accepted, even one wider than the derived tag
// field.
func (c *Cache) Access(addr uint64, now uint64) bool {
	tag, index, _ := c.addressParts(addr)
	c.accessCount++
	set := c.sets[index]

	for _, b := range set.Blocks {
		if b.Valid && b.Tag == tag {
			c.hits++
			switch c.policy {
			case PolicyLRU:
				b.Timestamp = now
			case PolicyLFU:
				b.Frequency++
			}
			// FIFO and Random keep block metadata untouched on hits.
			return true
		}
	}

	c.misses++
	victim := c.finder.FindVictim(set)
	victim.Valid = true
	victim.Tag = tag
	victim.Timestamp = now
	victim.Frequency = 1
	return false
}

// ResetStats clears the counters and invalidates every block. The
// configuration is untouched, so the cache is observably identical to a
// freshly constructed one.
func (c *Cache) ResetStats() {
	c.hits = 0
	c.misses = 0
	c.accessCount = 0
	for _, s := range c.sets {
		for _, b := range s.Blocks {
			b.Valid = false
			b.Tag = 0
			b.Timestamp = 0
			b.Frequency = 0
		}
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Name returns the cache name.
func (c *Cache) Name() string {
	return c.config.Name
}

// Policy returns the effective replacement policy after name normalization.
func (c *Cache) Policy() Policy {
	return c.policy
}

// HitTime returns the probe latency of this cache.
func (c *Cache) HitTime() uint64 {
	return c.config.HitTime
}

// NumSets returns the number of sets the cache is partitioned into.
func (c *Cache) NumSets() int {
	return c.numSets
}

// Hits returns the number of accesses that hit.
func (c *Cache) Hits() uint64 {
	return c.hits
}

// Misses returns the number of accesses that missed.
func (c *Cache) Misses() uint64 {
	return c.misses
}

// AccessCount returns the total number of accesses.
func (c *Cache) AccessCount() uint64 {
	return c.accessCount
}

// HitRatio returns hits over accesses, or 0 if the cache was never
// accessed.
func (c *Cache) HitRatio() float64 {
	if c.accessCount == 0 {
		return 0.0
	}
	return float64(c.hits) / float64(c.accessCount)
}

// MissRatio returns misses over accesses, or 0 if the cache was never
// accessed.
func (c *Cache) MissRatio() float64 {
	if c.accessCount == 0 {
		return 0.0
	}
	return float64(c.misses) / float64(c.accessCount)
}

// Stats returns a read-only snapshot of the counters and derived ratios.
func (c *Cache) Stats() StatsRecord {
	return StatsRecord{
		Name:          c.config.Name,
		Hits:          c.hits,
		Misses:        c.misses,
		Accesses:      c.accessCount,
		HitRatio:      c.HitRatio(),
		MissRatio:     c.MissRatio(),
		NumSets:       c.numSets,
		Associativity: c.config.Associativity,
		BlockSize:     c.config.BlockSize,
	}
}
