// Package main provides a performance benchmarking tool for the homebase CLI.
// It generates synthetic traces of increasing length and measures analyze
// across worker counts, running each case multiple times, treating the first
// successful run as cold and averaging the rest as warm. Results are written
// as CSV for performance analysis and documentation.
//
// Prerequisites:
// - homebase binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated traces and the SQLite report store
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of one trace size and worker count.
type BenchmarkResult struct {
	Days     int
	Workers  int
	NoneTime string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Workers   []int
	NoneRuns  int
	StoreRuns int
	TraceDays []int
}

// Trace coordinates match the default geofences.
var (
	homePoint = map[string]float64{"lat": 40.72539, "lon": -74.07099}
	workPoint = map[string]float64{"lat": 40.74096, "lon": -74.00212}
	parkPoint = map[string]float64{"lat": 40.78286, "lon": -73.96536}
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:   os.Args[1],
		Timeout:   5 * time.Minute,
		Workers:   []int{1, 4, 14},
		NoneRuns:  3,
		StoreRuns: 4,
		TraceDays: []int{30, 365, 3650},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the homebase binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("homebase"); err != nil {
		return fmt.Errorf("homebase binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes every trace size and worker count
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d trace sizes, %v timeout, workers %v, none: %d runs, sqlite: %d runs\n",
		len(config.TraceDays), config.Timeout, config.Workers, config.NoneRuns, config.StoreRuns)

	for _, days := range config.TraceDays {
		tracePath := filepath.Join(config.WorkDir, fmt.Sprintf("trace_%d.json", days))
		if err := writeTrace(tracePath, days); err != nil {
			fmt.Printf("Skipping %d days: %v\n", days, err)
			continue
		}
		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, tracePath, days, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs analyze without a store and then with the SQLite store
func runBenchmarkSuite(config BenchmarkConfig, tracePath string, days, workers int) BenchmarkResult {
	fmt.Printf("Running analyze on %d days with %d workers\n", days, workers)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, tracePath, backend, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noneAvg := runPhase("none", config.NoneRuns, "No-store")
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "SQLite")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noneAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Days:     days,
		Workers:  workers,
		NoneTime: noneAvg,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes analyze numRuns times and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, tracePath, backend string, workers, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"analyze", tracePath,
		"--output", "csv",
		"--output-file", os.DevNull,
		"--workers", strconv.Itoa(workers),
		"--report-backend", backend,
	}
	if backend == "sqlite" {
		args = append(args, "--report-db-connect", filepath.Join(config.WorkDir, "benchmark_report.db"))
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		err := exec.CommandContext(ctx, "homebase", args...).Run()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// writeTrace writes a synthetic trace of n commuting days starting on a Monday.
func writeTrace(path string, n int) error {
	zone := time.FixedZone("", -4*3600)
	start := time.Date(2013, 3, 4, 0, 0, 0, 0, zone)
	stamp := func(t time.Time) string { return t.Format("20060102T150405-0700") }
	place := func(kind string, loc map[string]float64, from, to time.Time) map[string]any {
		return map[string]any{
			"type": "place", "startTime": stamp(from), "endTime": stamp(to),
			"place": map[string]any{"type": kind, "location": loc},
		}
	}
	move := func(from, to time.Time, points ...map[string]float64) map[string]any {
		return map[string]any{
			"type": "move", "startTime": stamp(from), "endTime": stamp(to),
			"activities": []map[string]any{{"activity": "walking", "trackPoints": points}},
		}
	}

	days := make([]map[string]any, n)
	for i := range days {
		d := start.AddDate(0, 0, i)
		jitter := time.Duration(i%5) * 7 * time.Minute
		var segments []map[string]any
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			segments = []map[string]any{
				place("home", homePoint, d, d.Add(11*time.Hour+jitter)),
				move(d.Add(11*time.Hour+jitter), d.Add(12*time.Hour), homePoint, parkPoint),
				place("unknown", parkPoint, d.Add(12*time.Hour), d.Add(15*time.Hour)),
				move(d.Add(15*time.Hour), d.Add(16*time.Hour), parkPoint, homePoint),
				place("home", homePoint, d.Add(16*time.Hour), d.Add(23*time.Hour)),
			}
		} else {
			leave := d.Add(8*time.Hour + jitter)
			segments = []map[string]any{
				place("home", homePoint, d.Add(6*time.Hour), leave),
				move(leave, leave.Add(30*time.Minute), homePoint, workPoint),
				place("work", workPoint, leave.Add(30*time.Minute), d.Add(17*time.Hour)),
				move(d.Add(17*time.Hour), d.Add(18*time.Hour-jitter), workPoint, homePoint),
				place("home", homePoint, d.Add(18*time.Hour-jitter), d.Add(23*time.Hour)),
			}
		}
		days[i] = map[string]any{"date": d.Format("20060102"), "segments": segments}
	}

	data, err := json.Marshal(days)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) (err error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("homebase_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"days", "workers", "none_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		record := []string{strconv.Itoa(result.Days), strconv.Itoa(result.Workers), result.NoneTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %5d days, %2d workers: No-store: %s, Cold: %s, Warm: %s\n",
			result.Days, result.Workers, result.NoneTime, result.ColdTime, result.WarmTime)
	}
}
