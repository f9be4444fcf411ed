//
//   Copyright 2023 The original authors
//
//   Licensed under the Apache License, Version 2.0 (the "License");
//   you may not use this file except in compliance with the License.
//   You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
//   Unless required by applicable law or agreed to in writing, software
//   distributed under the License is distributed on an "AS IS" BASIS,
//   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//   See the License for the specific language governing permissions and
//   limitations under the License.
//

package table

import (
	"math/bits"
	"sync"

	"github.com/dolthub/swiss"

	"xpug.it/stationstats/internal/key"
	"xpug.it/stationstats/internal/stats"
)

// DefaultShards is the shard count used when none is given.
const DefaultShards = 64

// Shared is a station table that many goroutines can merge into at once.
// Stations are spread over mutex-guarded shards by key.Key.Hash.
type Shared struct {
	shards []shard
	mask   uint64
}

type shard struct {
	mu sync.Mutex
	m  *swiss.Map[key.Key, *stats.Accumulator]
}

// NewShared returns an empty table with n shards rounded up to a power of
// two. n <= 0 means DefaultShards.
func NewShared(n int) *Shared {
	if n <= 0 {
		n = DefaultShards
	}
	n = 1 << bits.Len(uint(n-1))

	s := &Shared{shards: make([]shard, n), mask: uint64(n - 1)}
	for i := range s.shards {
		s.shards[i].m = swiss.NewMap[key.Key, *stats.Accumulator](64)
	}
	return s
}

func (s *Shared) shardOf(k key.Key) int {
	return int(k.Hash() & s.mask)
}

// Merge folds acc into the accumulator of k.
func (s *Shared) Merge(k key.Key, acc stats.Accumulator) {
	sh := &s.shards[s.shardOf(k)]
	sh.mu.Lock()
	sh.merge(k, acc)
	sh.mu.Unlock()
}

// MergeLocal folds every station of l in, taking each shard lock at most
// once.
func (s *Shared) MergeLocal(l *Local) {
	byShard := make([][]int32, len(s.shards))
	for i, k := range l.keys {
		n := s.shardOf(k)
		byShard[n] = append(byShard[n], int32(i))
	}

	for n, idx := range byShard {
		if len(idx) == 0 {
			continue
		}
		sh := &s.shards[n]
		sh.mu.Lock()
		for _, i := range idx {
			sh.merge(l.keys[i], l.accs[i])
		}
		sh.mu.Unlock()
	}
}

func (sh *shard) merge(k key.Key, acc stats.Accumulator) {
	if prev, ok := sh.m.Get(k); ok {
		prev.Merge(acc)
		return
	}
	sh.m.Put(k, &acc)
}

// Len returns the number of distinct stations.
func (s *Shared) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += sh.m.Count()
		sh.mu.Unlock()
	}
	return n
}

// Results projects every station and sorts them by name. Call it once
// all merges are done.
func (s *Shared) Results() []stats.Result {
	results := make([]stats.Result, 0, s.Len())
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.m.Iter(func(k key.Key, acc *stats.Accumulator) bool {
			results = append(results, stats.Project(k.String(), *acc))
			return false
		})
		sh.mu.Unlock()
	}
	stats.Sort(results)
	return results
}
