package cache

// Policy selects the replacement algorithm a cache uses once a set is full.
type Policy string

// The supported replacement policies.
const (
	// PolicyLRU evicts the least recently used block.
	PolicyLRU Policy = "LRU"
	// PolicyFIFO evicts the block that was loaded first.
	PolicyFIFO Policy = "FIFO"
	// PolicyRandom evicts a uniformly random block.
	PolicyRandom Policy = "Random"
	// PolicyLFU evicts the least frequently used block.
	PolicyLFU Policy = "LFU"
)

// ParsePolicy maps a policy name to a Policy. Unrecognized names fall back
// to LRU rather than failing. The fallback is long-standing simulator
// behavior that existing configurations rely on; it is deliberate, not an
// oversight, and is pinned by tests.
func ParsePolicy(name string) Policy {
	switch Policy(name) {
	case PolicyLRU, PolicyFIFO, PolicyRandom, PolicyLFU:
		return Policy(name)
	default:
		return PolicyLRU
	}
}
