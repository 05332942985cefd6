package experiment

import (
	"fmt"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
)

// DefaultMainMemoryTime is the main-memory latency sweeps charge on a full
// miss, in simulated time units.
const DefaultMainMemoryTime = 100

// An AssociativityRow is one point of an associativity sweep.
type AssociativityRow struct {
	Associativity int     `json:"associativity" structs:"associativity"`
	HitRatio      float64 `json:"hit_ratio" structs:"hit_ratio"`
	AMAT          float64 `json:"amat" structs:"amat"`
}

// A BlockSizeRow is one point of a block-size sweep.
type BlockSizeRow struct {
	BlockSize int     `json:"block_size" structs:"block_size"`
	HitRatio  float64 `json:"hit_ratio" structs:"hit_ratio"`
	AMAT      float64 `json:"amat" structs:"amat"`
}

// A CacheSizeRow is one point of a cache-size sweep.
type CacheSizeRow struct {
	CacheSize int     `json:"cache_size" structs:"cache_size"`
	HitRatio  float64 `json:"hit_ratio" structs:"hit_ratio"`
	AMAT      float64 `json:"amat" structs:"amat"`
}

// A PolicyRow is one point of a replacement-policy comparison.
type PolicyRow struct {
	Policy   string  `json:"policy" structs:"policy"`
	HitRatio float64 `json:"hit_ratio" structs:"hit_ratio"`
	AMAT     float64 `json:"amat" structs:"amat"`
}

// runSingleLevel builds a one-level hierarchy around the given cache config
// and runs the trace through it.
func runSingleLevel(name string, config cache.Config, addrs []uint64,
	opts ...cache.Option) (Result, error) {
	c, err := cache.New(config, opts...)
	if err != nil {
		return Result{}, err
	}

	h, err := hierarchy.New([]*cache.Cache{c}, DefaultMainMemoryTime)
	if err != nil {
		return Result{}, err
	}

	return Run(name, h, addrs), nil
}

// SweepAssociativity runs the trace against single-level hierarchies that
// differ only in associativity.
func SweepAssociativity(size, blockSize int, associativities []int,
	addrs []uint64) ([]AssociativityRow, error) {
	rows := make([]AssociativityRow, 0, len(associativities))
	for _, assoc := range associativities {
		name := fmt.Sprintf(
			"Associativity %d-way (size=%dB, block=%dB)",
			assoc, size, blockSize)
		res, err := runSingleLevel(name, cache.Config{
			Name:          "L1",
			Size:          size,
			Associativity: assoc,
			BlockSize:     blockSize,
			Policy:        cache.PolicyLRU,
			HitTime:       1,
		}, addrs)
		if err != nil {
			return nil, err
		}

		rows = append(rows, AssociativityRow{
			Associativity: assoc,
			HitRatio:      res.PerCache[0].HitRatio,
			AMAT:          res.AMAT,
		})
	}
	return rows, nil
}

// SweepBlockSizes runs the trace against single-level hierarchies that
// differ only in block size.
func SweepBlockSizes(size, associativity int, blockSizes []int,
	addrs []uint64) ([]BlockSizeRow, error) {
	rows := make([]BlockSizeRow, 0, len(blockSizes))
	for _, block := range blockSizes {
		name := fmt.Sprintf(
			"BlockSize %dB (size=%dB, assoc=%d)",
			block, size, associativity)
		res, err := runSingleLevel(name, cache.Config{
			Name:          "L1",
			Size:          size,
			Associativity: associativity,
			BlockSize:     block,
			Policy:        cache.PolicyLRU,
			HitTime:       1,
		}, addrs)
		if err != nil {
			return nil, err
		}

		rows = append(rows, BlockSizeRow{
			BlockSize: block,
			HitRatio:  res.PerCache[0].HitRatio,
			AMAT:      res.AMAT,
		})
	}
	return rows, nil
}

// SweepCacheSizes runs the trace against single-level hierarchies that
// differ only in total capacity.
func SweepCacheSizes(blockSize, associativity int, sizes []int,
	addrs []uint64) ([]CacheSizeRow, error) {
	rows := make([]CacheSizeRow, 0, len(sizes))
	for _, size := range sizes {
		name := fmt.Sprintf(
			"CacheSize %dB (block=%dB, assoc=%d)",
			size, blockSize, associativity)
		res, err := runSingleLevel(name, cache.Config{
			Name:          "L1",
			Size:          size,
			Associativity: associativity,
			BlockSize:     blockSize,
			Policy:        cache.PolicyLRU,
			HitTime:       1,
		}, addrs)
		if err != nil {
			return nil, err
		}

		rows = append(rows, CacheSizeRow{
			CacheSize: size,
			HitRatio:  res.PerCache[0].HitRatio,
			AMAT:      res.AMAT,
		})
	}
	return rows, nil
}

// ComparePolicies runs the trace under each replacement policy on an
// otherwise identical single-level hierarchy. Options are forwarded to the
// caches so the Random policy can be seeded per comparison.
func ComparePolicies(size, associativity, blockSize int,
	policies []cache.Policy, addrs []uint64,
	opts ...cache.Option) ([]PolicyRow, error) {
	rows := make([]PolicyRow, 0, len(policies))
	for _, policy := range policies {
		res, err := runSingleLevel(
			fmt.Sprintf("Policy %s", policy), cache.Config{
				Name:          "L1",
				Size:          size,
				Associativity: associativity,
				BlockSize:     blockSize,
				Policy:        policy,
				HitTime:       1,
			}, addrs, opts...)
		if err != nil {
			return nil, err
		}

		rows = append(rows, PolicyRow{
			Policy:   string(policy),
			HitRatio: res.PerCache[0].HitRatio,
			AMAT:     res.AMAT,
		})
	}
	return rows, nil
}
