// Command bruteforcer throws random boards at a running solver API and keeps
// the board with the most words. It doubles as a load generator: requests run
// concurrently and the summary reports latency and throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

// Client calls the solver REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Solve posts one board
func (c *Client) Solve(ctx context.Context, req service.SolveRequest) (*service.SolveResult, error) {
	var result service.SolveResult
	if err := c.do(ctx, "POST", "/api/solve", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadConfig fetches a configuration by id
func (c *Client) LoadConfig(ctx context.Context, configID string) (*engine.SolverConfig, error) {
	var config engine.SolverConfig
	if err := c.do(ctx, "GET", "/api/configs/"+url.PathEscape(configID), nil, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// Options control one bruteforce run
type Options struct {
	ConfigID    string
	BoardSize   int
	Attempts    int
	Concurrency int
	Delay       time.Duration
}

// Summary aggregates a run
type Summary struct {
	Attempts   int
	Failures   int
	TotalWords int
	Best       *service.SolveResult
	Latency    time.Duration // summed over successful requests
	Elapsed    time.Duration
}

// AverageWords returns the mean word count of successful boards
func (s *Summary) AverageWords() float64 {
	ok := s.Attempts - s.Failures
	if ok == 0 {
		return 0
	}
	return float64(s.TotalWords) / float64(ok)
}

// AverageLatency returns the mean latency of successful requests
func (s *Summary) AverageLatency() time.Duration {
	ok := s.Attempts - s.Failures
	if ok == 0 {
		return 0
	}
	return s.Latency / time.Duration(ok)
}

// Run solves opts.Attempts random boards, at most opts.Concurrency at a time.
// Failed requests are counted; Run only fails when every request failed.
func Run(ctx context.Context, client *Client, gen *BoardGenerator, opts Options) (*Summary, error) {
	summary := &Summary{}
	var mu sync.Mutex
	var lastErr error

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i := 0; i < opts.Attempts; i++ {
		if gctx.Err() != nil {
			break
		}
		letters := gen.Next(opts.BoardSize)

		g.Go(func() error {
			if opts.Delay > 0 {
				select {
				case <-time.After(opts.Delay):
				case <-gctx.Done():
					return gctx.Err()
				}
			}

			reqStart := time.Now()
			result, err := client.Solve(gctx, service.SolveRequest{
				Letters:   letters,
				ConfigID:  opts.ConfigID,
				BoardSize: opts.BoardSize,
			})
			latency := time.Since(reqStart)

			mu.Lock()
			defer mu.Unlock()

			summary.Attempts++
			if err != nil {
				summary.Failures++
				lastErr = err
				log.Debug().Err(err).Str("letters", letters).Msg("solve failed")
				return nil
			}

			summary.TotalWords += result.Count
			summary.Latency += latency
			if summary.Best == nil || result.Count > summary.Best.Count {
				summary.Best = result
				log.Info().Str("letters", letters).Int("words", result.Count).Msg("new best board")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary.Elapsed = time.Since(start)

	if summary.Attempts > 0 && summary.Failures == summary.Attempts {
		return summary, fmt.Errorf("all %d requests failed, last error: %w", summary.Attempts, lastErr)
	}
	return summary, nil
}

func writeSummary(out io.Writer, summary *Summary) {
	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	fmt.Fprintf(out, "Boards:        %d (%d failed)\n", summary.Attempts, summary.Failures)
	fmt.Fprintf(out, "Average words: %.1f\n", summary.AverageWords())
	fmt.Fprintf(out, "Avg latency:   %v\n", summary.AverageLatency().Round(time.Microsecond))
	if summary.Elapsed > 0 {
		fmt.Fprintf(out, "Throughput:    %.1f boards/s\n", float64(summary.Attempts)/summary.Elapsed.Seconds())
	}

	best := summary.Best
	if best == nil {
		return
	}

	fmt.Fprintf(out, "\nBest board: %s (%d words)\n", best.Letters, best.Count)
	for _, row := range best.Rows {
		fmt.Fprintf(out, "  %s\n", strings.Join(strings.Split(strings.ToUpper(row), ""), " "))
	}

	words := best.Sorted
	if len(words) > 0 {
		// Longest words are the interesting ones
		top := words[max(len(words)-10, 0):]
		fmt.Fprintf(out, "Longest words: %s\n", strings.Join(top, ", "))
	}
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Solver server URL")
	configID := flag.String("config", "", "Solver configuration id (server default if empty)")
	boardSize := flag.Int("size", 0, "Board size (configuration's size if 0)")
	attempts := flag.Int("attempts", 100, "Number of random boards to solve")
	concurrency := flag.Int("concurrency", 4, "Requests in flight")
	seed := flag.Uint64("seed", 0, "Random seed (time based if 0)")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay before each request in milliseconds (0 = no delay)")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx := context.Background()
	client := NewClient(*serverURL)
	log.Info().Str("url", *serverURL).Msg("connecting to solver server")

	size := *boardSize
	if size == 0 {
		id := *configID
		if id == "" {
			id = "classic"
		}
		config, err := client.LoadConfig(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("config", id).Int("size", engine.DefaultBoardSize).Msg("using default board size")
			size = engine.DefaultBoardSize
		} else {
			size = config.BoardSize
		}
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", *seed).Int("size", size).Int("attempts", *attempts).Msg("starting bruteforce")

	summary, err := Run(ctx, client, NewBoardGenerator(*seed), Options{
		ConfigID:    *configID,
		BoardSize:   size,
		Attempts:    *attempts,
		Concurrency: *concurrency,
		Delay:       time.Duration(*delayMs) * time.Millisecond,
	})
	if summary != nil {
		writeSummary(os.Stdout, summary)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("bruteforce failed")
	}
}
