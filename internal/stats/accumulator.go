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

// Package stats holds the running min/max/sum/count of a station and its
// projection into printable results.
package stats

import "math"

// Accumulator is the running state of one station. Values are scaled by
// fixedpoint.Scale.
type Accumulator struct {
	Min, Max int64
	Sum      int64
	Count    int64
}

// New returns an Accumulator that has seen no values.
func New() Accumulator {
	return Accumulator{Min: math.MaxInt64, Max: math.MinInt64}
}

// Add folds one value in.
func (a *Accumulator) Add(v int64) {
	a.Min = min(a.Min, v)
	a.Max = max(a.Max, v)
	a.Sum += v
	a.Count++
}

// Merge folds in the values seen by o. Merge is commutative and
// associative.
func (a *Accumulator) Merge(o Accumulator) {
	a.Min = min(a.Min, o.Min)
	a.Max = max(a.Max, o.Max)
	a.Sum += o.Sum
	a.Count += o.Count
}
