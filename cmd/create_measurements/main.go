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

// # Based on https://github.com/gunnarmorling/1brc/blob/main/src/main/java/dev/morling/onebrc/CreateMeasurements.java and https://github.com/gunnarmorling/1brc/blob/main/src/main/python/create_measurements.py

// Command create_measurements writes a random measurements file for
// calculate_average.
//
//	create_measurements [-stations data/weather_stations.csv] [-out measurements.txt] <rows>
//
// An -out name ending in ".zst" is written zstd compressed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/shopspring/decimal"
)

const (
	coldestTenths = -999
	hottestTenths = 999
)

type FileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

type RealFileOpener struct{}

func (r RealFileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

type FileWriter interface {
	Create(name string) (io.WriteCloser, error)
}

type RealFileWriter struct{}

func (RealFileWriter) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

type Random interface {
	Float64() float64
	Intn(n int) int
}

type StdRandom struct{}

func (StdRandom) Float64() float64 {
	return rand.Float64()
}

func (StdRandom) Intn(n int) int {
	return rand.Intn(n)
}

func checkArgs(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("incorrect number of arguments - see example usage, create_measurements 1000")
	}
	numRows, err := strconv.Atoi(args[0])
	if err != nil || numRows <= 0 {
		return 0, fmt.Errorf("argument must be a positive integer - see example usage, create_measurements 1000")
	}
	return numRows, nil
}

func buildWeatherStationNameList(opener FileOpener, name string) ([]string, error) {
	var stationNames []string

	file, err := opener.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening station list: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		station, _, _ := strings.Cut(line, ";")
		stationNames = append(stationNames, station)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading station list: %w", err)
	}
	if len(stationNames) == 0 {
		return nil, fmt.Errorf("no stations in %s", name)
	}
	return stationNames, nil
}

func estimateFileSize(weatherStationNames []string, numRowsToCreate int) string {
	totalNameBytes := 0
	for _, name := range weatherStationNames {
		totalNameBytes += len(name)
	}
	avgNameBytes := totalNameBytes / len(weatherStationNames)
	avgTempBytes := 4.400200100050025
	avgLineLength := avgNameBytes + int(avgTempBytes) + 2
	fileSize := numRowsToCreate * avgLineLength
	return fmt.Sprintf("Estimated max file size is: %s.", convertBytes(fileSize))
}

func convertBytes(num int) string {
	units := []string{"bytes", "KiB", "MiB", "GiB"}
	var i int
	for num >= 1024 && i < len(units)-1 {
		num /= 1024
		i++
	}
	return fmt.Sprintf("%d %s", num, units[i])
}

// formatTemperature renders a value in tenths of a degree with exactly one
// fractional digit.
func formatTemperature(tenths int64) string {
	return decimal.New(tenths, -1).StringFixed(1)
}

func randomTenths(random Random) int64 {
	return coldestTenths + int64(random.Float64()*float64(hottestTenths-coldestTenths+1))
}

func buildTestData(weatherStationNames []string, numRowsToCreate int, outName string, fileWriter FileWriter, random Random) (err error) {
	startTime := time.Now()

	// Adjust the batchSize based on numRowsToCreate if less than 10,000
	batchSize := 10000
	if numRowsToCreate < batchSize {
		batchSize = numRowsToCreate
	}

	fmt.Println("Building test data...")

	file, err := fileWriter.Create(outName)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file: %w", cerr)
		}
	}()

	var sink io.Writer = file
	if strings.HasSuffix(outName, ".zst") {
		enc, zerr := zstd.NewWriter(file)
		if zerr != nil {
			return fmt.Errorf("error creating compressor: %w", zerr)
		}
		defer func() {
			if cerr := enc.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("error finishing compression: %w", cerr)
			}
		}()
		sink = enc
	}

	writer := bufio.NewWriter(sink)

	// Generate and write data in batches
	for i := 0; i < numRowsToCreate; i += batchSize {
		end := i + batchSize
		if end > numRowsToCreate {
			end = numRowsToCreate
		}

		for j := i; j < end; j++ {
			stationName := weatherStationNames[random.Intn(len(weatherStationNames))]
			line := stationName + ";" + formatTemperature(randomTenths(random)) + "\n"
			if _, err := writer.WriteString(line); err != nil {
				return fmt.Errorf("error writing string: %w", err)
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("error flushing: %w", err)
	}

	fmt.Println("\nTest data successfully written.")
	fmt.Printf("Elapsed time: %s\n", time.Since(startTime))
	return nil
}

func main() {
	stationsFile := flag.String("stations", "data/weather_stations.csv", "`file` of station names, one per line before an optional ';'")
	outName := flag.String("out", "measurements.txt", "output `file`, zstd compressed if it ends in .zst")
	flag.Parse()

	numRowsToCreate, err := checkArgs(flag.Args())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	opener := RealFileOpener{}
	weatherStationNames, err := buildWeatherStationNameList(opener, *stationsFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println(estimateFileSize(weatherStationNames, numRowsToCreate))

	fileWriter := RealFileWriter{}
	random := StdRandom{}

	// Call buildTestData with the concrete implementations.
	err = buildTestData(weatherStationNames, numRowsToCreate, *outName, fileWriter, random)
	if err != nil {
		fmt.Printf("Failed to build test data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test data build complete.")
}
