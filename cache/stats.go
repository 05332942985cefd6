package cache

// A StatsRecord is a snapshot of one cache's counters and the ratios
// derived from them. Building a record never mutates cache state.
type StatsRecord struct {
	Name          string  `json:"name" structs:"name"`
	Hits          uint64  `json:"hits" structs:"hits"`
	Misses        uint64  `json:"misses" structs:"misses"`
	Accesses      uint64  `json:"accesses" structs:"accesses"`
	HitRatio      float64 `json:"hit_ratio" structs:"hit_ratio"`
	MissRatio     float64 `json:"miss_ratio" structs:"miss_ratio"`
	NumSets       int     `json:"num_sets" structs:"num_sets"`
	Associativity int     `json:"associativity" structs:"associativity"`
	BlockSize     int     `json:"block_size" structs:"block_size"`
}
