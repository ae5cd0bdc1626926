package cache

// node is an entry in the recency list. The head is the most recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// LRU maps keys to values and evicts the least recently used entry once it
// holds more than its capacity.
type LRU[K comparable, V any] struct {
	entries  map[K]*node[K, V]
	head     *node[K, V]
	tail     *node[K, V]
	capacity int
	onEvict  func(K, V)

	hits, misses, evictions uint64
}

// NewLRU creates a cache holding at most capacity entries. A capacity of 0
// means unlimited. onEvict, if not nil, is called for every entry that leaves
// the cache through eviction, Remove, Purge or replacement by Put.
func NewLRU[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	return &LRU[K, V]{
		entries:  make(map[K]*node[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(n)
	return n.value, true
}

// Peek returns the value for key without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	if n, ok := c.entries[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key as the most recently used entry. A previous
// value under the same key is released through onEvict.
func (c *LRU[K, V]) Put(key K, value V) {
	if n, ok := c.entries[key]; ok {
		old := n.value
		n.value = value
		c.moveToFront(n)
		c.release(key, old)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)
	for c.capacity > 0 && len(c.entries) > c.capacity {
		c.removeNode(c.tail)
		c.evictions++
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeNode(n)
	return true
}

// Oldest returns the least recently used key.
func (c *LRU[K, V]) Oldest() (K, bool) {
	if c.tail == nil {
		var zero K
		return zero, false
	}
	return c.tail.key, true
}

// Purge removes every entry, oldest first.
func (c *LRU[K, V]) Purge() {
	for c.tail != nil {
		c.removeNode(c.tail)
	}
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return len(c.entries) }

// Stats returns the hit, miss and eviction counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Stats contains cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

func (c *LRU[K, V]) removeNode(n *node[K, V]) {
	c.unlink(n)
	delete(c.entries, n.key)
	c.release(n.key, n.value)
}

func (c *LRU[K, V]) release(key K, value V) {
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// unlink removes n from the list and clears its links.
func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
