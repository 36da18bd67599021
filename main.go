package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/api"
	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/config"
	"github.com/financeapp/statement-engine/internal/engine"
	"github.com/financeapp/statement-engine/internal/logger"
	"github.com/financeapp/statement-engine/internal/models"
	"github.com/financeapp/statement-engine/internal/storage"
	"github.com/financeapp/statement-engine/internal/writer"
)

const version = "1.0.0"

func main() {
	providerFlag := flag.String("provider", "", "Statement provider: phonepe, kotak, gpay, bhim, paytm, bank (defaults to phonepe)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include metadata header rows in CSV")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Engine

Extracts transactions from wallet and bank statement exports
(PDF, CSV, HTML, XLS, XLSX) into structured CSV or JSON.

Usage:
  statement-engine [flags] <input.pdf> [input2.csv ...]
  statement-engine -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a PhonePe statement to CSV
  statement-engine statement.pdf

  # Specify the provider explicitly
  statement-engine -provider=kotak statement.pdf

  # Custom output path
  statement-engine -provider=phonepe -output=transactions.csv statement.pdf

  # Run the HTTP API
  statement-engine -serve

Supported Providers:
  phonepe   - PhonePe wallet exports (multi-line blocks)
  kotak     - Kotak Mahindra Bank statements (tabular rows)
  gpay      - Google Pay exports (wallet grammar)
  bhim      - BHIM UPI exports (wallet grammar)
  paytm     - Paytm exports (wallet grammar)
  bank      - Generic bank statements (tabular rows)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-engine v%s\n", version)
		os.Exit(0)
	}

	log := logger.New()
	cfg := config.Load()

	var opts []category.Option
	if len(cfg.TransferContacts) > 0 {
		opts = append(opts, category.WithTransferContacts(cfg.TransferContacts))
	}
	eng := engine.New(category.New(opts...), log)

	if *serveFlag {
		runServer(eng, cfg, log)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	provider := models.ProviderPhonePe
	if *providerFlag != "" {
		provider = models.ProviderFromString(*providerFlag)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(eng, inputPath, provider, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func runServer(eng *engine.Engine, cfg config.Config, log zerolog.Logger) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20,
	})
	h := &api.Handler{
		Engine:         eng,
		Store:          db,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Log:            log,
	}
	h.Register(app)

	log.Info().Str("port", cfg.Port).Msg("starting statement engine API")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func processFile(eng *engine.Engine, inputPath string, provider models.Provider, outputPath string, includeHeader bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	result := eng.Parse(context.Background(), engine.Request{
		Data:      data,
		FileName:  filepath.Base(inputPath),
		Extension: filepath.Ext(inputPath),
		Provider:  provider,
		OwnerID:   "local",
	})
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Printf("  Found %d transaction(s)\n", len(result.Transactions))
	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, &result); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}
