package results

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/ranking"
)

const maxCachedEvents = 1024

type cachedRanking struct {
	fingerprint uint64
	slots       []ranking.RankedSlot
}

// rankingCache keeps the full ranking of recently viewed events. An entry is only
// served while the fingerprint of the event's data still matches.
type rankingCache struct {
	mu      sync.Mutex
	entries map[string]cachedRanking
}

func newRankingCache() *rankingCache {
	return &rankingCache{entries: make(map[string]cachedRanking)}
}

// rank returns the complete ranking of e, computing it on a miss.
func (c *rankingCache) rank(e event.EventWithAvailability) []ranking.RankedSlot {
	fp := fingerprint(e)

	c.mu.Lock()
	entry, ok := c.entries[e.Id]
	c.mu.Unlock()
	if ok && entry.fingerprint == fp {
		return entry.slots
	}

	slots := ranking.ComputeRanking(e, math.MaxInt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= maxCachedEvents {
		clear(c.entries)
	}
	c.entries[e.Id] = cachedRanking{fingerprint: fp, slots: slots}
	return slots
}

func (c *rankingCache) evict(eventId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, eventId)
}

func (c *rankingCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fingerprint hashes everything the ranking depends on.
func fingerprint(e event.EventWithAvailability) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeString := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for _, d := range e.Dates {
		writeString(d)
	}
	writeInt(uint64(e.StartHour))
	writeInt(uint64(e.EndHour))
	writeInt(math.Float64bits(ranking.Weight(e.Event)))
	for _, a := range e.Availability {
		writeString(a.ParticipantName)
		writeInt(uint64(len(a.Slots)))
		for _, s := range a.Slots {
			writeString(s)
		}
		writeInt(uint64(len(a.SlotsIfNeeded)))
		for _, s := range a.SlotsIfNeeded {
			writeString(s)
		}
	}
	return h.Sum64()
}
