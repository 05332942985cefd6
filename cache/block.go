package cache

// A Block holds the metadata of one cache line within a set.
type Block struct {
	// Valid indicates whether the block currently holds a tag. Tag is
	// meaningful only while Valid is true.
	Valid bool

	// Tag identifies the memory block stored in this line.
	Tag uint64

	// Timestamp orders blocks in hierarchy logical time. LRU refreshes it
	// on every hit; FIFO and LFU keep the time the block was loaded.
	Timestamp uint64

	// Frequency counts uses since the block was loaded. Only LFU reads it.
	Frequency uint64
}

// A Set is the fixed group of blocks that one index maps to. Its length
// equals the cache associativity and never changes after construction.
type Set struct {
	Blocks []*Block
}

// NewSet creates a set with the given number of ways, all invalid.
func NewSet(ways int) *Set {
	s := &Set{Blocks: make([]*Block, ways)}
	for i := range s.Blocks {
		s.Blocks[i] = &Block{}
	}
	return s
}
