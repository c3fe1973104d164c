package youtube

import "sync"

// KeyRotator owns the ordered API key pool for the process lifetime. The
// index only moves forward; once every key is spent the rotator stays
// exhausted until restart. With zero configured keys it reports a permanent
// mock state for deterministic offline behavior.
type KeyRotator struct {
	mu        sync.Mutex
	keys      []string
	index     int
	exhausted bool
}

// NewKeyRotator creates a rotator over an ordered key list (max 12)
func NewKeyRotator(keys []string) *KeyRotator {
	if len(keys) > 12 {
		keys = keys[:12]
	}
	return &KeyRotator{
		keys:      keys,
		exhausted: len(keys) == 0,
	}
}

// CurrentKey returns the active key, empty when exhausted or in mock state
func (r *KeyRotator) CurrentKey() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exhausted {
		return ""
	}
	return r.keys[r.index]
}

// Rotate advances past a quota-rejected key and reports whether a usable key
// remains. The caller decides when to rotate; the rotator performs no network
// calls. Passing the key that failed keeps two concurrent rotations from
// skipping two keys for one failure.
func (r *KeyRotator) Rotate(failedKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exhausted {
		return false
	}
	// Another caller already advanced past this key
	if r.keys[r.index] != failedKey {
		return true
	}
	if r.index+1 >= len(r.keys) {
		r.exhausted = true
		return false
	}
	r.index++
	return true
}

// Exhausted reports whether no usable key remains
func (r *KeyRotator) Exhausted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exhausted
}

// Mock reports whether the rotator was built without any keys
func (r *KeyRotator) Mock() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys) == 0
}
