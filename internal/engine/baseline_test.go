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

package engine

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"xpug.it/stationstats/internal/stats"
)

type cityData struct {
	min   float64
	max   float64
	sum   int64
	count int64
}

// baseline is the straightforward line-by-line aggregation the engine
// must agree with.
func baseline(t testing.TB, data []byte) []stats.Result {
	t.Helper()
	cities := map[string]cityData{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), ";")
		if len(parts) != 2 {
			t.Fatalf("baseline: bad line %q", scanner.Text())
		}
		city := parts[0]
		temp, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			t.Fatalf("baseline: %v", err)
		}
		tenths := int64(math.Round(temp * 10))

		cd, present := cities[city]
		if !present {
			cities[city] = cityData{min: temp, max: temp, sum: tenths, count: 1}
			continue
		}
		cd.count++
		cd.sum += tenths
		cd.min = math.Min(cd.min, temp)
		cd.max = math.Max(cd.max, temp)
		cities[city] = cd
	}

	results := make([]stats.Result, 0, len(cities))
	for city, cd := range cities {
		results = append(results, stats.Project(city, stats.Accumulator{
			Min:   int64(math.Round(cd.min * 10)),
			Max:   int64(math.Round(cd.max * 10)),
			Sum:   cd.sum,
			Count: cd.count,
		}))
	}
	stats.Sort(results)
	return results
}
