// Command word-hunt-solver finds the dictionary words hidden in word hunt boards.
//
// It supports four modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "prompt" – reads boards from the terminal and prints the words found
//  4. "anagram" – reads text from the terminal and prints its anagrams
//
// Flags control host/port, config and dictionary storage, debug logging,
// version output, and optional ngrok tunneling for external access.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/word-hunt-solver/api"
	"github.com/wricardo/word-hunt-solver/game/config"
	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/service"
	"github.com/wricardo/word-hunt-solver/transport/mcp"
	"github.com/wricardo/word-hunt-solver/transport/prompt"
	"github.com/wricardo/word-hunt-solver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Word Hunt Solver"
)

// Configuration flags control how the server starts and where data lives.
var (
	port          = flag.Int("port", getEnvInt("PORT", 8080), "HTTP server port")
	host          = flag.String("host", "localhost", "HTTP server host")
	configDir     = flag.String("config-dir", getEnv("CONFIG_DIR", "configs"), "Directory containing solver configurations")
	dictionaryDir = flag.String("dictionary-dir", getEnv("DICTIONARY_DIR", "dictionaries"), "Directory containing dictionary word lists")
	dictionaryDB  = flag.String("dictionary-db", getEnv("DICTIONARY_DB", ""), "SQLite database for dictionaries (overrides -dictionary-dir)")
	rulesDir      = flag.String("rules-dir", getEnv("RULES_DIR", ""), "Directory with candidate filter rule files (default <dictionary-dir>/rules)")
	configID      = flag.String("config", "", "Configuration used by the prompt modes (default configuration if empty)")
	dictName      = flag.String("dictionary", "", "Dictionary used by the prompt modes (configuration's dictionary if empty)")
	debug         = flag.Bool("debug", false, "Enable debug logging")
	version       = flag.Bool("version", false, "Show version information")
	ngrokEnabled  = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth     = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain   = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp, mcp   Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  prompt           Solve boards typed on the terminal\n")
		fmt.Fprintf(os.Stderr, "  anagram          Find anagrams of text typed on the terminal\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dictionary-db words.db  # Keep dictionaries in SQLite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config big prompt       # Solve 5x5 boards interactively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp -port 9090           # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	setupLogging(*debug)
	if envErr == nil {
		log.Debug().Msg("loaded environment variables from .env file")
	} else if !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("error loading .env file")
	}

	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	log.Info().Str("version", Version).Str("mode", mode).Msgf("starting %s", AppName)

	app, err := initializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}
	defer app.Close()

	// Prompt modes block on stdin, so they keep the default interrupt behavior
	ctx := context.Background()

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = runStdioMCPWithInternalServer(sigCtx, app.service)

	case "server", "http":
		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = runHTTPServer(sigCtx, app.service)

	case "prompt":
		err = runPrompt(ctx, app, os.Stdin, os.Stdout)

	case "anagram":
		err = runAnagramPrompt(ctx, app, os.Stdin, os.Stdout)

	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, use 'server' (default), 'stdio-mcp', 'prompt' or 'anagram'")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		app.Close()
		log.Fatal().Err(err).Str("mode", mode).Msg("exited with error")
	}
}

// setupLogging configures the global zerolog logger. LOG_LEVEL picks the
// level; debug forces debug level with human readable output.
func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// application holds the wired services and what must be released on exit
type application struct {
	service      service.SolverService
	configs      *config.Manager
	dictionaries *dictionary.Manager
	closers      []io.Closer
	closeOnce    sync.Once
}

// Close releases storage handles
func (a *application) Close() {
	a.closeOnce.Do(func() {
		for _, c := range a.closers {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close storage")
			}
		}
	})
}

// initializeServices wires the config manager, dictionary storage and the solver service
func initializeServices() (*application, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	app := &application{configs: configManager}

	var persistence dictionary.Persistence
	switch {
	case *dictionaryDB != "":
		db, err := dictionary.OpenSQLite(*dictionaryDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open dictionary database: %w", err)
		}
		app.closers = append(app.closers, db)
		persistence = db
		log.Info().Str("path", *dictionaryDB).Msg("dictionaries stored in sqlite")

	default:
		fp, err := dictionary.NewFilePersistence(*dictionaryDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create dictionary persistence: %w", err)
		}
		persistence = fp
		log.Info().Str("dir", *dictionaryDir).Msg("dictionaries stored in files")
	}

	dir := *rulesDir
	if dir == "" {
		dir = filepath.Join(*dictionaryDir, "rules")
	}
	rules, err := dictionary.LoadRules(dir)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load candidate rules: %w", err)
	}

	app.dictionaries = dictionary.NewManagerWithPersistence(persistence)
	app.service = service.NewSolverService(configManager, app.dictionaries, service.WithCandidateRules(rules))

	log.Info().
		Int("configs", configManager.Count()).
		Str("default_config", configManager.GetDefault().Name).
		Msg("services initialized")

	return app, nil
}

// newMainRouter mounts the REST API and the /mcp endpoint on one mux
func newMainRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, solverService service.SolverService) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	apiServer := api.NewServer(solverService, hub)

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	mcpClient := mcp.NewClient("http://" + addr)
	mainRouter := newMainRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", "http://"+addr+"/api").
			Str("websocket", "ws://"+addr+"/ws?room=<room>").
			Str("mcp", "http://"+addr+"/mcp").
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			cancel()
		}
	}()

	if ngrokShouldRun() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
		return nil
	}
}

// ngrokShouldRun reports whether a tunnel was requested by flag or NGROK_ENABLED
func ngrokShouldRun() bool {
	if *ngrokEnabled {
		return true
	}
	envEnabled := os.Getenv("NGROK_ENABLED")
	return envEnabled == "true" || envEnabled == "1"
}

// ngrokAuthToken returns the token from the flag, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN
func ngrokAuthToken() string {
	if *ngrokAuth != "" {
		return *ngrokAuth
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		return token
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := ngrokAuthToken()
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	log.Info().Str("domain", domain).Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
	}()

	if err := tunnelServer.Serve(tun); err != nil && err != http.ErrServerClosed {
		log.Warn().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an external API when MCP_API_URL (default http://localhost:8080) answers
// its health check; otherwise it starts an internal HTTP API on a random loopback port.
func runStdioMCPWithInternalServer(ctx context.Context, solverService service.SolverService) error {
	externalURL := getEnv("MCP_API_URL", "http://localhost:8080")
	baseURL := externalURL

	if !apiAvailable(externalURL) {
		log.Info().Str("url", externalURL).Msg("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(solverService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
	}

	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	mcpClient := mcp.NewClient(baseURL)
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a solver API answers at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runPrompt solves boards typed on in, using the selected configuration's board size
func runPrompt(ctx context.Context, app *application, in io.Reader, out io.Writer) error {
	cfg := app.configs.GetDefault()
	if *configID != "" {
		loaded, err := app.configs.LoadConfig(*configID)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	template := service.SolveRequest{ConfigID: *configID, Dictionary: *dictName}
	return prompt.NewWordHunt(app.service, cfg.BoardSize, template).Run(ctx, in, out)
}

// runAnagramPrompt finds anagrams of text typed on in
func runAnagramPrompt(ctx context.Context, app *application, in io.Reader, out io.Writer) error {
	template := service.AnagramRequest{Dictionary: *dictName}
	if *configID != "" {
		cfg, err := app.configs.LoadConfig(*configID)
		if err != nil {
			return err
		}
		template.MinWordLength = cfg.MinWordLength
		if template.Dictionary == "" {
			template.Dictionary = cfg.Dictionary
		}
	}
	return prompt.NewAnagram(app.service, template).Run(ctx, in, out)
}
