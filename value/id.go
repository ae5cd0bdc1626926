package value

import (
	"fmt"
	"hash/fnv"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ID is the interned name of a value: a 32-bit hash of the NFC normalized
// name. The zero ID is the empty name.
type ID uint32

var (
	namesMu sync.RWMutex
	names   = make(map[ID]string)
)

// NewID returns the ID for name. Names that differ only in Unicode
// normalization map to the same ID.
func NewID(name string) ID {
	if name == "" {
		return 0
	}
	name = norm.NFC.String(name)
	h := fnv.New32a()
	h.Write([]byte(name))
	id := ID(h.Sum32())

	namesMu.Lock()
	if _, ok := names[id]; !ok {
		names[id] = name
	}
	namesMu.Unlock()
	return id
}

// String returns the name the ID was created from, or its hex value if the
// ID was built from a number.
func (id ID) String() string {
	if id == 0 {
		return ""
	}
	namesMu.RLock()
	name, ok := names[id]
	namesMu.RUnlock()
	if ok {
		return name
	}
	return fmt.Sprintf("#%08x", uint32(id))
}
