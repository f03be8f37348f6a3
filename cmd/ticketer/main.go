package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ticketer-app/ticketer/internal/config"
	"github.com/ticketer-app/ticketer/internal/extract"
	"github.com/ticketer-app/ticketer/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsExtractMode() {
		// In extract mode only the JSON result belongs on stdout
		log.SetOutput(os.Stderr)
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// loadKeywords builds the keyword tables, applying file overrides when
// configured.
func loadKeywords(cfg *config.Config) (*extract.Keywords, error) {
	if cfg.KeywordsPath == "" {
		return extract.DefaultKeywords(), nil
	}
	return extract.LoadKeywords(cfg.KeywordsPath)
}

// runServeMode runs the upload API with graceful shutdown on signals
func runServeMode(cfg *config.Config, extractor *extract.Extractor) {
	srv := server.New(cfg, extractor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runExtractMode extracts one invoice and prints the raw field mapping.
// Sentinel substitution is deliberately absent here; this surface shows
// exactly what the engine found.
func runExtractMode(extractor *extract.Extractor) {
	if pflag.NArg() < 1 {
		log.Fatal("extract mode requires a PDF path argument")
	}

	fields := extractor.Extract(pflag.Arg(0))

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode fields: %v", err)
	}
	fmt.Println(string(out))
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Optional .env for deployments that configure through the environment
	_ = godotenv.Load()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	keywords, err := loadKeywords(cfg)
	if err != nil {
		log.Fatalf("Failed to load keyword tables: %v", err)
	}

	extractor := extract.NewExtractor(cfg.MaxFileSize, keywords)

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if cfg.IsServeMode() {
		runServeMode(cfg, extractor)
	} else {
		runExtractMode(extractor)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("ticketer\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
