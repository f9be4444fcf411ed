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
	"fmt"
	"strings"
	"sync"
	"testing"

	"xpug.it/stationstats/internal/key"
	"xpug.it/stationstats/internal/stats"
)

var stations = []string{
	"Abha", "Bulawayo", "Cabo San Lucas", "Dushanbe",
	"Las Palmas de Gran Canaria", "Petropavlovsk-Kamchatsky",
	strings.Repeat("s", key.Capacity), strings.Repeat("s", key.Capacity+1),
}

func TestLocal(t *testing.T) {
	l := NewLocal(2)
	for i := 0; i < 100; i++ {
		name := []byte(stations[i%len(stations)])
		l.Add(key.Encode(name), int64(i))
	}
	if l.Len() != len(stations) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(stations))
	}

	var order []string
	var count int64
	l.Each(func(k key.Key, acc stats.Accumulator) {
		order = append(order, k.String())
		count += acc.Count
	})
	if count != 100 {
		t.Errorf("counts add up to %d, want 100", count)
	}
	for i, name := range order {
		if name != stations[i] {
			t.Errorf("Each() position %d = %q, want first-seen %q", i, name, stations[i])
		}
	}
}

func TestSharedMatchesSingleTable(t *testing.T) {
	want := NewLocal(0)
	locals := make([]*Local, 9)
	for w := range locals {
		locals[w] = NewLocal(0)
		for i := 0; i < 500; i++ {
			name := stations[(w*7+i)%len(stations)]
			v := int64((w*31+i*17)%1999 - 999)
			locals[w].Add(key.Encode([]byte(name)), v)
			want.Add(key.Encode([]byte(name)), v)
		}
	}
	expected := NewShared(1)
	expected.MergeLocal(want)

	for _, shards := range []int{0, 1, 3, 16, 1000} {
		t.Run(fmt.Sprintf("shards=%d", shards), func(t *testing.T) {
			s := NewShared(shards)
			var wg sync.WaitGroup
			for _, l := range locals {
				wg.Add(1)
				go func(l *Local) {
					defer wg.Done()
					s.MergeLocal(l)
				}(l)
			}
			wg.Wait()

			if s.Len() != len(stations) {
				t.Fatalf("Len() = %d, want %d", s.Len(), len(stations))
			}
			got, exp := s.Results(), expected.Results()
			if len(got) != len(exp) {
				t.Fatalf("got %d results, want %d", len(got), len(exp))
			}
			for i := range got {
				if got[i] != exp[i] {
					t.Errorf("result %d = %+v, want %+v", i, got[i], exp[i])
				}
			}
		})
	}
}

func TestSharedMerge(t *testing.T) {
	s := NewShared(4)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			acc := stats.New()
			acc.Add(int64(w))
			s.Merge(key.Encode([]byte("Oslo")), acc)
		}(w)
	}
	wg.Wait()

	results := s.Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	want := stats.Result{Station: "Oslo", Min: 0, Mean: 0.4, Max: 0.7, Count: 8}
	if results[0] != want {
		t.Errorf("Results() = %+v, want %+v", results[0], want)
	}
}

func TestResultsSorted(t *testing.T) {
	s := NewShared(8)
	l := NewLocal(0)
	for _, name := range []string{"Paris", "London", "Zagreb", "Amsterdam", "Petropavlovsk-Kamchatsky"} {
		l.Add(key.Encode([]byte(name)), 10)
	}
	s.MergeLocal(l)

	var got []string
	for _, r := range s.Results() {
		got = append(got, r.Station)
	}
	want := "Amsterdam,London,Paris,Petropavlovsk-Kamchatsky,Zagreb"
	if strings.Join(got, ",") != want {
		t.Errorf("Results() order = %v, want %s", got, want)
	}
}
