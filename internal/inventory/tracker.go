// Package inventory remembers which inv items have already been seen so the
// node only fetches announcements once.
package inventory

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

const defaultCapacity = 50000

// Tracker is a bounded record of recently announced inventory. Old entries
// are evicted least-recently-seen first, so a hash announced again long after
// eviction counts as new.
type Tracker struct {
	seen *lru.Cache[wire.InvVect, struct{}]
}

func New(capacity int) (*Tracker, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	cache, err := lru.New[wire.InvVect, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &Tracker{seen: cache}, nil
}

// Mark records an item and reports whether it was already known.
func (t *Tracker) Mark(iv wire.InvVect) bool {
	if _, known := t.seen.Get(iv); known {
		return true
	}
	t.seen.Add(iv, struct{}{})
	return false
}

// Known reports whether an item has been seen, without recording it.
func (t *Tracker) Known(iv wire.InvVect) bool {
	return t.seen.Contains(iv)
}

// FilterNew records every item and returns the ones seen for the first time.
func (t *Tracker) FilterNew(items []wire.InvVect) []wire.InvVect {
	fresh := make([]wire.InvVect, 0, len(items))
	for _, iv := range items {
		if !t.Mark(iv) {
			fresh = append(fresh, iv)
		}
	}
	return fresh
}

func (t *Tracker) Len() int {
	return t.seen.Len()
}
