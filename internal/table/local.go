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

// Package table holds the two levels of station tables: a Local table
// owned by one worker and a Shared table the workers merge into once they
// are done.
package table

import (
	"github.com/dolthub/swiss"

	"xpug.it/stationstats/internal/key"
	"xpug.it/stationstats/internal/stats"
)

const minLocalHint = 16

// Local maps stations to accumulators for a single goroutine. The swiss
// map only stores an index; accumulators sit in one dense slice.
type Local struct {
	index *swiss.Map[key.Key, int32]
	keys  []key.Key
	accs  []stats.Accumulator
}

// NewLocal returns an empty table sized for about hint stations.
func NewLocal(hint int) *Local {
	hint = max(hint, minLocalHint)
	return &Local{
		index: swiss.NewMap[key.Key, int32](uint32(hint)),
		keys:  make([]key.Key, 0, hint),
		accs:  make([]stats.Accumulator, 0, hint),
	}
}

// Add folds value into the accumulator of k.
func (l *Local) Add(k key.Key, value int64) {
	i, ok := l.index.Get(k)
	if !ok {
		i = int32(len(l.accs))
		l.index.Put(k, i)
		l.keys = append(l.keys, k)
		l.accs = append(l.accs, stats.New())
	}
	l.accs[i].Add(value)
}

// Len returns the number of distinct stations.
func (l *Local) Len() int {
	return len(l.keys)
}

// Each calls fn for every station in first-seen order.
func (l *Local) Each(fn func(k key.Key, acc stats.Accumulator)) {
	for i, k := range l.keys {
		fn(k, l.accs[i])
	}
}
