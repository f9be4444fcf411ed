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

// Command calculate_average prints the min/mean/max temperature and the
// number of measurements of every station in a measurements file.
//
//	calculate_average [flags] [measurements.txt]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"xpug.it/stationstats/internal/engine"
	"xpug.it/stationstats/internal/mapped"
	"xpug.it/stationstats/internal/report"
	"xpug.it/stationstats/internal/table"
)

const defaultDataFile = "measurements.txt"

type options struct {
	workers    int
	shards     int
	strict     bool
	profile    string
	profileDir string
	verbose    bool
}

func main() {
	var opts options
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of chunks scanned in parallel")
	flag.IntVar(&opts.shards, "shards", table.DefaultShards, "number of shards of the merged station table")
	flag.BoolVar(&opts.strict, "strict", false, "validate every record and fail on the first malformed one")
	flag.StringVar(&opts.profile, "profile", os.Getenv("PROFILE"), "write a `cpu|mem|trace` profile")
	flag.StringVar(&opts.profileDir, "profiledir", ".", "directory for profiles")
	flag.BoolVar(&opts.verbose, "v", false, "log phase timings")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [%s]\n", os.Args[0], defaultDataFile)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("calculate_average: ")

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(dataFileName(), opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func dataFileName() string {
	name := defaultDataFile
	if flag.NArg() == 1 {
		name = flag.Arg(0)
	}
	return name
}

func run(name string, opts options, out io.Writer) error {
	p, err := startProfile(opts.profile, opts.profileDir)
	if err != nil {
		return err
	}
	if p != nil {
		defer p.Stop()
	}

	logf := func(format string, args ...any) {
		if opts.verbose {
			log.Printf(format, args...)
		}
	}

	start := time.Now()
	in, err := mapped.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()
	logf("mapped %d bytes in %v", len(in.Bytes()), time.Since(start))

	start = time.Now()
	results, err := engine.Run(in.Bytes(), engine.Config{
		Workers: opts.workers,
		Strict:  opts.strict,
		Shards:  opts.shards,
	})
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", name, err)
	}
	logf("aggregated %d stations with %d workers in %v", len(results), opts.workers, time.Since(start))

	start = time.Now()
	if err := report.Write(out, results); err != nil {
		return err
	}
	logf("printed in %v", time.Since(start))
	return nil
}

func startProfile(mode, dir string) (interface{ Stop() }, error) {
	var kind func(*profile.Profile)
	switch mode {
	case "":
		return nil, nil
	case "cpu", "true":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	case "trace":
		kind = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile %q, want cpu, mem or trace", mode)
	}
	return profile.Start(kind, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
}
