// Benchmark harness for the preview API: measures extraction latency and
// field completeness across a set of representative product pages, plus the
// cache speedup on a repeated request.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

var (
	apiURL = flag.String("api-url", "http://localhost:3000", "preview API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 3, "number of runs per URL for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Test URLs covering the page shapes the extractor has to handle.
var testURLs = []struct {
	Label string
	URL   string
}{
	{"Static", "https://example.com"},
	{"Blog", "https://go.dev/blog/go1.21"},
	{"Docs", "https://go.dev/doc/effective_go"},
	{"News", "https://www.bbc.com/news"},
	{"Product", "https://www.amazon.com/dp/B08N5WRWNW"},
}

// --- Request / Response types (mirrors models package) ---

type extractRequest struct {
	URL    string `json:"url"`
	MaxAge int    `json:"max_age,omitempty"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    extractData `json:"data"`
	Error   string      `json:"error"`
	Code    string      `json:"code"`
}

type extractData struct {
	Resolved struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
		SiteName    string `json:"siteName"`
		Price       *struct {
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		} `json:"price"`
	} `json:"resolved"`
	URLTransformation struct {
		Normalized string `json:"normalized"`
		Cleaned    bool   `json:"cleaned"`
	} `json:"urlTransformation"`
	CacheStatus string `json:"cache_status"`
}

// --- Benchmark result types ---

type runResult struct {
	Run         int    `json:"run"`
	TotalMs     int64  `json:"total_ms"`
	HasTitle    bool   `json:"has_title"`
	HasImage    bool   `json:"has_image"`
	HasPrice    bool   `json:"has_price"`
	HasSiteName bool   `json:"has_site_name"`
	CacheStatus string `json:"cache_status,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type urlAverages struct {
	TotalMs      float64 `json:"total_ms"`
	Completeness float64 `json:"completeness_percent"`
}

type urlResult struct {
	URL          string       `json:"url"`
	Label        string       `json:"label"`
	Runs         []runResult  `json:"runs"`
	Averages     *urlAverages `json:"averages,omitempty"`
	CachedMs     int64        `json:"cached_ms"`
	CacheSpeedup float64      `json:"cache_speedup,omitempty"`
}

type benchmarkReport struct {
	Timestamp  string      `json:"timestamp"`
	APIURL     string      `json:"api_url"`
	RunsPerURL int         `json:"runs_per_url"`
	Results    []urlResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== Preview Benchmark Suite ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Runs/URL:  %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure previewd is running\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		RunsPerURL: *runs,
	}

	for _, t := range testURLs {
		fmt.Printf("Benchmarking [%s] %s ...\n", t.Label, t.URL)
		ur := urlResult{URL: t.URL, Label: t.Label}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkURL(t.URL, i, 0)
			if rr.Success {
				fmt.Printf("OK  %dms\n", rr.TotalMs)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		ur.Averages = computeAverages(ur.Runs)

		// One warm + one cached request to measure the cache path.
		if ur.Averages != nil {
			warm := benchmarkURL(t.URL, 0, 300_000)
			cached := benchmarkURL(t.URL, 0, 300_000)
			if cached.Success && cached.CacheStatus == "hit" {
				ur.CachedMs = cached.TotalMs
				if cached.TotalMs > 0 {
					ur.CacheSpeedup = float64(warm.TotalMs) / float64(cached.TotalMs)
				}
				fmt.Printf("  Cached ... %dms (%.1fx)\n", cached.TotalMs, ur.CacheSpeedup)
			}
		}

		report.Results = append(report.Results, ur)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkURL(url string, run, maxAge int) runResult {
	rr := runResult{Run: run}

	bodyBytes, err := json.Marshal(extractRequest{URL: url, MaxAge: maxAge})
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/extract-metadata", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("X-API-Key", *apiKey)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	start := time.Now()
	resp, err := client.Do(req)
	rr.TotalMs = time.Since(start).Milliseconds()
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}
	if !env.Success {
		rr.Error = fmt.Sprintf("[%s] %s", env.Code, env.Error)
		return rr
	}

	r := env.Data.Resolved
	rr.Success = true
	rr.HasTitle = r.Title != "" && r.Title != "No title found"
	rr.HasImage = r.Image != ""
	rr.HasPrice = r.Price != nil
	rr.HasSiteName = r.SiteName != ""
	rr.CacheStatus = env.Data.CacheStatus

	return rr
}

// completeness scores how many of the four headline fields came back.
func completeness(r runResult) float64 {
	var n int
	for _, ok := range []bool{r.HasTitle, r.HasImage, r.HasPrice, r.HasSiteName} {
		if ok {
			n++
		}
	}
	return float64(n) / 4 * 100
}

func computeAverages(runs []runResult) *urlAverages {
	var successCount int
	var avg urlAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.Completeness += completeness(r)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.Completeness /= n
	return &avg
}

func printTable(results []urlResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tAvg Latency\tCompleteness\tCached\n")
	fmt.Fprintf(w, "───\t───────────\t────────────\t──────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\n", truncateURL(r.URL, 40))
			continue
		}

		cached := "-"
		if r.CachedMs > 0 {
			cached = fmt.Sprintf("%dms", r.CachedMs)
		}

		fmt.Fprintf(w, "%s\t%dms\t%.0f%%\t%s\n",
			truncateURL(r.URL, 40),
			int64(r.Averages.TotalMs),
			r.Averages.Completeness,
			cached,
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func truncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	return u[:max-3] + "..."
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
