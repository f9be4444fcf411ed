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

// Package report prints aggregated station statistics.
package report

import (
	"bufio"
	"fmt"
	"io"

	"xpug.it/stationstats/internal/stats"
)

// Write prints one "<station>: <min>/<mean>/<max> (<count>)" line per
// result, in the given order.
func Write(w io.Writer, results []stats.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s: %.1f/%.1f/%.1f (%d)\n", r.Station, r.Min, r.Mean, r.Max, r.Count); err != nil {
			return fmt.Errorf("write %s: %w", r.Station, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
