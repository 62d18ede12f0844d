package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/bot"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/collector"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/exchange"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/history"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/report"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	mode := flag.String("mode", "", "Run mode: scan (single scan) or continuous")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	if cfg.Metrics.Cloudwatch.Enabled {
		logger.InitCloudWatch(cfg.Metrics.Cloudwatch.Region, cfg.Metrics.Cloudwatch.Namespace)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Scanner.Name,
		"version": cfg.Scanner.Version,
	}).Info("starting funding rate scanner")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.WithFields(logger.Fields{"signal": sig.String()}).Info("shutdown signal received")
		cancel()
	}()

	b := buildBot(cfg)

	switch strings.ToLower(*mode) {
	case "scan":
		b.Scan(ctx)
	case "continuous":
		b.RunContinuous(ctx)
	case "":
		runMenu(ctx, b, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (expected scan or continuous)\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

// buildBot assembles the adapters for the enabled exchanges plus the
// reporting and persistence sides of the scanner.
func buildBot(cfg *config.Config) *bot.Bot {
	log := logger.GetLogger()

	var adapters []exchange.Adapter
	if cfg.ExchangeEnabled("binance") {
		adapters = append(adapters, exchange.NewBinance(cfg))
	}
	if cfg.ExchangeEnabled("bybit") {
		adapters = append(adapters, exchange.NewBybit(cfg))
	}
	if cfg.ExchangeEnabled("okx") {
		adapters = append(adapters, exchange.NewOKX(cfg))
	}
	if cfg.ExchangeEnabled("bitget") {
		adapters = append(adapters, exchange.NewBitget(cfg))
	}
	if cfg.ExchangeEnabled("kucoin") {
		adapters = append(adapters, exchange.NewKuCoin(cfg))
	}

	var store *history.Store
	if cfg.History.Sqlite.Enabled {
		var err error
		store, err = history.Open(cfg.History.Sqlite.Path)
		if err != nil {
			log.WithError(err).Warn("scan history disabled")
			store = nil
		}
	}

	return bot.New(
		cfg,
		collector.New(cfg, adapters),
		report.NewConsole(os.Stdout, cfg.Scanner.PositionSize),
		report.NewSnapshotWriter(cfg),
		store,
	)
}

func runMenu(ctx context.Context, b *bot.Bot, cfg *config.Config) {
	fmt.Println("FUNDING RATE ARBITRAGE SCANNER")
	fmt.Println("Supported exchanges: Binance, Bybit, OKX, Bitget, KuCoin")
	fmt.Println()
	fmt.Println("1. Single scan")
	fmt.Printf("2. Continuous mode (scan every %d minutes)\n", cfg.Scanner.ScanIntervalMinutes)
	fmt.Println("3. Connectivity test")
	fmt.Print("\nChoice (1/2/3): ")

	reader := bufio.NewReader(os.Stdin)
	choice, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read choice")
		os.Exit(1)
	}

	switch strings.TrimSpace(choice) {
	case "1":
		b.Scan(ctx)
	case "2":
		b.RunContinuous(ctx)
	case "3":
		b.TestConnectivity(ctx, os.Stdout)
	default:
		fmt.Println("invalid choice")
	}
}
