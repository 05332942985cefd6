package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/cachesim/cache"
)

// Config describes a hierarchy: the cache levels and the main-memory access
// time charged when every level misses. Levels may appear in any order;
// construction sorts them by hit time.
type Config struct {
	Levels               []cache.Config `json:"levels"`
	MainMemoryAccessTime uint64         `json:"main_memory_access_time"`
}

// DefaultConfig returns a two-level configuration: a small fast L1 backed
// by a larger L2 and a 100-unit main memory.
func DefaultConfig() *Config {
	return &Config{
		Levels: []cache.Config{
			{
				Name:          "L1",
				Size:          512,
				Associativity: 2,
				BlockSize:     32,
				Policy:        cache.PolicyLRU,
				HitTime:       1,
			},
			{
				Name:          "L2",
				Size:          4096,
				Associativity: 4,
				BlockSize:     64,
				Policy:        cache.PolicyLRU,
				HitTime:       10,
			},
		},
		MainMemoryAccessTime: 100,
	}
}

// LoadConfig loads a Config from a JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy config file: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize hierarchy config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write hierarchy config: %w", err)
	}

	return nil
}

// Build constructs the hierarchy the config describes. Options are passed
// to every cache, so a single WithRandSource injection covers all levels.
func (c *Config) Build(opts ...cache.Option) (*Hierarchy, error) {
	caches := make([]*cache.Cache, 0, len(c.Levels))
	for _, level := range c.Levels {
		cc, err := cache.New(level, opts...)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", level.Name, err)
		}
		caches = append(caches, cc)
	}

	return New(caches, c.MainMemoryAccessTime)
}
