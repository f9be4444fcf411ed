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

// Package engine aggregates a whole measurements buffer in parallel.
//
// The buffer is split into one record-aligned chunk per worker. Each
// worker scans its chunk into a private table.Local and merges it into a
// single table.Shared when it is done, so the shared table sees one merge
// per station per worker instead of one update per record.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"xpug.it/stationstats/internal/key"
	"xpug.it/stationstats/internal/scan"
	"xpug.it/stationstats/internal/stats"
	"xpug.it/stationstats/internal/table"
)

const (
	// initial per-worker table size
	stationsHint = 1024

	// records between checks for a failed sibling worker
	cancelCheckEvery = 1 << 16
)

// Config controls a run.
type Config struct {
	// Workers is the number of chunks and goroutines. Values <= 0 mean
	// runtime.NumCPU().
	Workers int

	// Strict validates every record and fails on the first malformed one.
	// Without it the input is trusted.
	Strict bool

	// Shards is the shard count of the shared table, see table.NewShared.
	Shards int
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Run aggregates data and returns the results sorted by station.
func Run(data []byte, cfg Config) ([]stats.Result, error) {
	shared, err := Aggregate(data, cfg)
	if err != nil {
		return nil, err
	}
	return shared.Results(), nil
}

// Aggregate scans data with up to cfg.Workers goroutines and returns the
// merged table once all of them have finished. If any worker fails the
// others stop early and only the first error is returned.
//
// Long station names in the result borrow from data, which must outlive
// the table.
func Aggregate(data []byte, cfg Config) (*table.Shared, error) {
	chunks := scan.Split(data, cfg.workers())
	shared := table.NewShared(cfg.Shards)

	g, ctx := errgroup.WithContext(context.Background())
	offset := 0
	for i, chunk := range chunks {
		i, chunk, start := i, chunk, offset
		g.Go(func() error {
			if err := processChunk(ctx, chunk, cfg.Strict, shared); err != nil {
				return fmt.Errorf("chunk %d at byte %d: %w", i, start, err)
			}
			return nil
		})
		offset += len(chunk)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shared, nil
}

func processChunk(ctx context.Context, chunk []byte, strict bool, shared *table.Shared) error {
	s := scan.New(chunk)
	if strict {
		s = scan.NewStrict(chunk)
	}

	local := table.NewLocal(stationsHint)
	for n := 1; s.Next(); n++ {
		local.Add(key.Encode(s.Key()), s.Value())
		if n%cancelCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if err := s.Err(); err != nil {
		return err
	}

	shared.MergeLocal(local)
	return nil
}
