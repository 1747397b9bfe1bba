// Package solver implements a heads-up river subgame CFR solver: a lazy
// infoset store with regret matching, a heads-up river game tree builder,
// a Discounted CFR trainer, and best-response exploitability.
package solver

import (
	"fmt"
	"hash/fnv"
	"sync"
)

const shardCount = 64
const shardMask = shardCount - 1

// entry is the infoset storage cell: a single flat buffer of length
// 2*numActions, laid out as [regretSum | cumStrategy] in one allocation.
type entry struct {
	mu         sync.Mutex
	numActions int
	buf        []float64
}

func newEntry(numActions int) *entry {
	return &entry{numActions: numActions, buf: make([]float64, 2*numActions)}
}

// RegretView returns the regret half of the buffer. Access to the buffer
// is not synchronized (Get only locks the shard's key lookup); Trainer.Step
// only reads entries during its concurrent traversal and writes them in
// its sequential apply phase.
func (e *entry) RegretView() []float64 { return e.buf[:e.numActions] }

// StrategyView returns the cumulative-strategy half of the buffer.
func (e *entry) StrategyView() []float64 { return e.buf[e.numActions:] }

// NumActions reports the action count this entry was created with.
func (e *entry) NumActions() int { return e.numActions }

// Strategy computes the current regret-matching strategy:
// r+[i] = max(0, regret[i]); strategy[i] = r+[i]/S if S > 0, else uniform.
func (e *entry) Strategy() []float64 {
	return RegretMatch(e.RegretView())
}

// AverageStrategy computes avg[i] = cumStrategy[i] / sum(cumStrategy),
// uniform if the sum is zero.
func (e *entry) AverageStrategy() []float64 {
	return normalize(e.StrategyView())
}

// RegretMatch is the pure regret-matching function.
func RegretMatch(regrets []float64) []float64 {
	out := make([]float64, len(regrets))
	sum := 0.0
	for i, r := range regrets {
		if r > 0 {
			out[i] = r
			sum += r
		}
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(regrets))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(values))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i, v := range values {
		out[i] = v / sum
	}
	return out
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// InfosetStore is a lazy key -> buffer map, sharded by FNV-1a hash of the
// key string to keep concurrent traversal from contending on one lock.
type InfosetStore struct {
	shards [shardCount]*shard
}

// NewInfosetStore constructs an empty store.
func NewInfosetStore() *InfosetStore {
	s := &InfosetStore{}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return s
}

func hashKey(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

func (s *InfosetStore) shardFor(key string) *shard {
	return s.shards[hashKey(key)&shardMask]
}

// Get returns the entry for key, creating a zero-initialized one on a
// miss. On a hit with a mismatched numActions it returns an error.
func (s *InfosetStore) Get(key string, numActions int) (*entry, error) {
	sh := s.shardFor(key)

	sh.mu.RLock()
	e, ok := sh.entries[key]
	sh.mu.RUnlock()
	if ok {
		if e.numActions != numActions {
			return nil, fmt.Errorf("solver: infoset %q: numActions mismatch (have %d, want %d)", key, e.numActions, numActions)
		}
		return e, nil
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok := sh.entries[key]; ok {
		if e.numActions != numActions {
			return nil, fmt.Errorf("solver: infoset %q: numActions mismatch (have %d, want %d)", key, e.numActions, numActions)
		}
		return e, nil
	}
	e = newEntry(numActions)
	sh.entries[key] = e
	return e, nil
}

// Size returns the total number of infosets stored.
func (s *InfosetStore) Size() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Entries returns a snapshot of every stored key and entry, for blueprint
// extraction (average strategy per infoset).
func (s *InfosetStore) Entries() map[string]*entry {
	out := make(map[string]*entry)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for k, e := range sh.entries {
			out[k] = e
		}
		sh.mu.RUnlock()
	}
	return out
}
