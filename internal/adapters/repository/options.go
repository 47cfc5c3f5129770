package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*storeConfig)

type storeConfig struct {
	capacity int
}

// WithCapacity bounds the number of stored moments. When full, the oldest
// moment and its leaderboard entries are evicted. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(c *storeConfig) {
		if n >= 0 {
			c.capacity = n
		}
	}
}
