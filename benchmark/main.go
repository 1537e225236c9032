// Package main provides a performance benchmarking tool for the docdiff CLI.
// It generates synthetic corpus pairs of increasing size, runs the diff command
// several times per pair and worker count, treating the first successful cached run
// as cold and averaging the rest as warm, and writes the timings as CSV.
//
// Prerequisites:
// - docdiff binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated corpora and reports (default: a temp dir)
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Corpus      string
	Workers     int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir          string
	Timeout          time.Duration
	Workers          []int
	NoCacheRuns      int
	CacheRuns        int
	Sizes            map[string]int // corpus name -> class count
	Order            []string
	MembersPerClass  int
	ParamsPerMethod  int
	ChangeEveryClass int
}

// class and member mirror the document shape docdiff reads.
type member struct {
	Name   string   `json:"name"`
	Type   string   `json:"type,omitempty"`
	Access string   `json:"access,omitempty"`
	Items  []member `json:"items,omitempty"`
}

type group struct {
	Type  string   `json:"$type"`
	Items []member `json:"items"`
}

type class struct {
	Name    string  `json:"name"`
	Type    string  `json:"$type"`
	Extends string  `json:"extends,omitempty"`
	Items   []group `json:"items"`
}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "docdiff-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:          workDir,
		Timeout:          5 * time.Minute,
		Workers:          []int{1, 8},
		NoCacheRuns:      3,
		CacheRuns:        4,
		Sizes:            map[string]int{"small": 200, "medium": 2000, "large": 10000},
		Order:            []string{"small", "medium", "large"},
		MembersPerClass:  24,
		ParamsPerMethod:  3,
		ChangeEveryClass: 7,
	}

	if _, err := exec.LookPath("docdiff"); err != nil {
		fmt.Printf("Prerequisites check failed: docdiff binary not found in PATH\n")
		os.Exit(1)
	}

	// Clear the cache using docdiff cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("docdiff", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks generates every corpus pair and benchmarks it for each worker count.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d corpora, %v timeout, workers %v, no-cache: %d runs, cache: %d runs\n",
		len(config.Order), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.Order {
		oldPath, newPath, err := generateCorpusPair(config, name)
		if err != nil {
			return nil, err
		}
		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, name, oldPath, newPath, workers))
		}
	}
	return results, nil
}

// generateCorpusPair writes an old and a new document for one corpus size.
// Every ChangeEveryClass-th class is renamed, gets a new base class and a retyped member.
func generateCorpusPair(config BenchmarkConfig, name string) (string, string, error) {
	count := config.Sizes[name]
	oldDoc := make([]class, 0, count)
	newDoc := make([]class, 0, count)

	for i := range count {
		c := syntheticClass(config, i, false)
		oldDoc = append(oldDoc, c)
		if i%config.ChangeEveryClass == 0 {
			changed := syntheticClass(config, i, true)
			if i%(config.ChangeEveryClass*3) == 0 {
				changed.Name += "Next"
			}
			newDoc = append(newDoc, changed)
			continue
		}
		newDoc = append(newDoc, c)
	}

	oldPath := filepath.Join(config.WorkDir, name+"_old.json")
	newPath := filepath.Join(config.WorkDir, name+"_new.json")
	if err := writeDocument(oldPath, oldDoc); err != nil {
		return "", "", err
	}
	if err := writeDocument(newPath, newDoc); err != nil {
		return "", "", err
	}
	fmt.Printf("Generated %s corpus: %d classes\n", name, count)
	return oldPath, newPath, nil
}

func syntheticClass(config BenchmarkConfig, i int, changed bool) class {
	c := class{Name: fmt.Sprintf("App.pkg%d.Class%d", i%50, i), Type: "class", Extends: "App.Base"}
	if changed {
		c.Extends = "App.NewBase"
	}
	methods := group{Type: "methods"}
	configs := group{Type: "configs"}
	for m := range config.MembersPerClass {
		item := member{Name: "member" + strconv.Itoa(m), Type: "String", Access: "public"}
		if m%5 == 0 {
			item.Access = "private"
		}
		if changed && m == 0 {
			item.Type = "Number"
		}
		if m%2 == 0 {
			for p := range config.ParamsPerMethod {
				item.Items = append(item.Items, member{Name: "arg" + strconv.Itoa(p), Type: "Object"})
			}
			methods.Items = append(methods.Items, item)
			continue
		}
		configs.Items = append(configs.Items, item)
	}
	c.Items = []group{methods, configs}
	return c
}

func writeDocument(path string, doc []class) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a corpus pair
func runBenchmarkSuite(config BenchmarkConfig, name, oldPath, newPath string, workers int) BenchmarkResult {
	fmt.Printf("Running %s corpus with %d workers\n", name, workers)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, oldPath, newPath, workers, cacheBackend, numRuns)
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

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Corpus:      name,
		Workers:     workers,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes the diff command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, oldPath, newPath string, workers int, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	reportPath := filepath.Join(config.WorkDir, "report.json")
	args := []string{
		"diff", oldPath, newPath,
		"--cache-backend", cacheBackend,
		"--workers", strconv.Itoa(workers),
		"--output", "json",
		"--output-file", reportPath,
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("docdiff", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates the report was written
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Report written to")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("docdiff_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"corpus", "workers", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{result.Corpus, strconv.Itoa(result.Workers), result.NoCacheTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s (%2d workers): No-cache: %s, Cold: %s, Warm: %s\n",
			result.Corpus, result.Workers, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
