package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

// vowelServer answers every solve with one "word" per vowel on the board
func vowelServer(t *testing.T, requests *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/solve":
			atomic.AddInt32(requests, 1)
			var req service.SolveRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}

			words := []string{}
			for _, c := range req.Letters {
				if strings.ContainsRune("aeiou", c) {
					words = append(words, string(c))
				}
			}
			json.NewEncoder(w).Encode(service.SolveResult{
				Letters: req.Letters,
				Rows:    []string{req.Letters},
				Words:   words,
				Sorted:  words,
				Count:   len(words),
			})

		case r.URL.Path == "/api/configs/big":
			json.NewEncoder(w).Encode(engine.SolverConfig{Name: "big", BoardSize: 5})

		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "configuration not found"})
		}
	}))
}

func TestRun(t *testing.T) {
	var requests int32
	server := vowelServer(t, &requests)
	defer server.Close()

	summary, err := Run(context.Background(), NewClient(server.URL), NewBoardGenerator(42), Options{
		BoardSize:   4,
		Attempts:    20,
		Concurrency: 4,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Attempts != 20 || atomic.LoadInt32(&requests) != 20 {
		t.Errorf("Expected 20 attempts and requests, got %d and %d", summary.Attempts, requests)
	}
	if summary.Failures != 0 {
		t.Errorf("Expected no failures, got %d", summary.Failures)
	}
	if summary.Best == nil {
		t.Fatal("Expected a best board")
	}

	vowels := 0
	for _, c := range summary.Best.Letters {
		if strings.ContainsRune("aeiou", c) {
			vowels++
		}
	}
	if summary.Best.Count != vowels {
		t.Errorf("Best board count %d does not match its %d vowels", summary.Best.Count, vowels)
	}
	if summary.AverageWords() > float64(summary.Best.Count) {
		t.Errorf("Average %.1f exceeds best %d", summary.AverageWords(), summary.Best.Count)
	}
}

func TestRun_AllFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid board"})
	}))
	defer server.Close()

	summary, err := Run(context.Background(), NewClient(server.URL), NewBoardGenerator(1), Options{
		BoardSize:   3,
		Attempts:    3,
		Concurrency: 1,
	})
	if err == nil {
		t.Fatal("Expected error when every request fails")
	}
	if !strings.Contains(err.Error(), "invalid board (status 400)") {
		t.Errorf("Expected API error in message, got %v", err)
	}
	if summary == nil || summary.Failures != 3 {
		t.Errorf("Expected 3 failures in summary, got %+v", summary)
	}
}

func TestRun_Cancelled(t *testing.T) {
	var requests int32
	server := vowelServer(t, &requests)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, NewClient(server.URL), NewBoardGenerator(1), Options{BoardSize: 2, Attempts: 5}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestClient_LoadConfig(t *testing.T) {
	var requests int32
	server := vowelServer(t, &requests)
	defer server.Close()

	client := NewClient(server.URL + "/")
	config, err := client.LoadConfig(context.Background(), "big")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.BoardSize != 5 {
		t.Errorf("Expected board size 5, got %d", config.BoardSize)
	}

	if _, err := client.LoadConfig(context.Background(), "missing"); err == nil {
		t.Error("Expected error for missing config")
	}
}

func TestBoardGenerator(t *testing.T) {
	a := NewBoardGenerator(7)
	b := NewBoardGenerator(7)

	for i := 0; i < 10; i++ {
		boardA, boardB := a.Next(4), b.Next(4)
		if boardA != boardB {
			t.Fatalf("Expected equal seeds to give equal boards, got %s and %s", boardA, boardB)
		}
		if len(boardA) != 16 {
			t.Errorf("Expected 16 letters, got %d", len(boardA))
		}
		for _, c := range boardA {
			if c < 'a' || c > 'z' {
				t.Errorf("Unexpected character %q in %s", c, boardA)
			}
		}
	}
}

func TestWriteSummary(t *testing.T) {
	summary := &Summary{
		Attempts:   2,
		Failures:   1,
		TotalWords: 3,
		Best: &service.SolveResult{
			Letters: "abcd",
			Rows:    []string{"ab", "cd"},
			Sorted:  []string{"cab", "dab", "bad"},
			Count:   3,
		},
	}

	var out bytes.Buffer
	writeSummary(&out, summary)

	for _, s := range []string{"Boards:        2 (1 failed)", "Average words: 3.0", "Best board: abcd (3 words)", "  A B", "Longest words: cab, dab, bad"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("Expected %q in summary, got:\n%s", s, out.String())
		}
	}
}
