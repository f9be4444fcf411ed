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

package stats

import (
	"math"
	"slices"
	"strings"

	"xpug.it/stationstats/internal/fixedpoint"
)

// Result is the final statistics of one station in display units.
type Result struct {
	Station        string
	Min, Mean, Max float64
	Count          int64
}

// Project converts acc into display units. The mean is rounded to one
// decimal, ties towards positive infinity. acc must have seen a value.
func Project(station string, acc Accumulator) Result {
	return Result{
		Station: station,
		Min:     float64(acc.Min) / fixedpoint.Scale,
		Mean:    roundJava(float64(acc.Sum)/float64(acc.Count)) / fixedpoint.Scale,
		Max:     float64(acc.Max) / fixedpoint.Scale,
		Count:   acc.Count,
	}
}

// Sort orders results by the bytes of their station names.
func Sort(results []Result) {
	slices.SortFunc(results, func(a, b Result) int {
		return strings.Compare(a.Station, b.Station)
	})
}

// roundJava returns the closest integer to the argument, with ties
// rounding to positive infinity, see java's Math.round
func roundJava(x float64) float64 {
	t := math.Trunc(x)
	if d := math.Abs(x - t); d > 0.5 || (d == 0.5 && x > 0) {
		t += math.Copysign(1, x)
	}

	if t == 0 { // check -0
		return 0.0
	}
	return t
}
