// Package bot drives the scan cycle: collect, detect, report, persist.
package bot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/collector"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/history"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/report"
)

// Bot wires the collector, console and persistence together and owns the
// periodic scheduling. It never places orders.
type Bot struct {
	cfg       *config.Config
	collector *collector.Collector
	console   *report.Console
	snapshots *report.SnapshotWriter
	store     *history.Store
	log       *logger.Log
}

func New(cfg *config.Config, c *collector.Collector, console *report.Console, snapshots *report.SnapshotWriter, store *history.Store) *Bot {
	return &Bot{
		cfg:       cfg,
		collector: c,
		console:   console,
		snapshots: snapshots,
		store:     store,
		log:       logger.GetLogger(),
	}
}

// Scan runs one full cycle. An empty collection aborts the cycle with a
// warning; everything downstream of collection is best-effort.
func (b *Bot) Scan(ctx context.Context) {
	log := b.log.WithComponent("bot")
	scanID := uuid.New().String()
	started := time.Now().UTC()

	log.WithFields(logger.Fields{"scan_id": scanID}).Info("scanning for funding rate arbitrage")

	records := b.collector.CollectAll(ctx, b.cfg.Scanner.Symbols)
	if len(records) == 0 {
		log.Warn("no funding rate data collected, skipping cycle")
		return
	}

	b.console.Summary(records)

	opportunities := b.collector.FindOpportunities(records)

	var profitable []models.Opportunity
	for _, op := range opportunities {
		if op.NetProfit8h >= b.cfg.Scanner.MinProfitThreshold {
			profitable = append(profitable, op)
		}
	}

	if len(profitable) > 0 {
		b.console.ProfitableCount(len(profitable))
		b.console.Opportunities(top(profitable, 5))
		b.snapshots.Write(ctx, scanID, profitable)
	} else {
		b.console.NoProfitable(b.cfg.Scanner.MinProfitThreshold, top(opportunities, 3))
	}

	if b.store != nil {
		if err := b.store.RecordScan(ctx, scanID, started, len(records), profitable); err != nil {
			log.WithError(err).Warn("failed to record scan history")
		}
	}

	duration := time.Since(started)
	log.WithFields(logger.Fields{"scan_id": scanID, "duration_ms": duration.Milliseconds()}).Info("scan finished")
	log.LogMetric("bot", "records_collected", float64(len(records)), nil)
	log.LogMetric("bot", "profitable_opportunities", float64(len(profitable)), nil)
}

// RunContinuous scans immediately, then on every tick of the configured
// interval until the context is cancelled. A scan that goes wrong never
// exits the loop; the next tick retries.
func (b *Bot) RunContinuous(ctx context.Context) {
	log := b.log.WithComponent("bot")
	interval := b.cfg.ScanInterval()

	log.WithFields(logger.Fields{"interval": interval.String()}).Info("starting continuous mode")

	b.Scan(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("continuous mode stopped")
			return
		case <-ticker.C:
			b.Scan(ctx)
		}
	}
}

// TestConnectivity performs one BTC fetch per enabled adapter and reports
// the outcome on the provided writer.
func (b *Bot) TestConnectivity(ctx context.Context, out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CONNECTIVITY TEST")
	fmt.Fprintln(out, "----------------------------------------")

	for _, adapter := range b.collector.Adapters() {
		rates := adapter.FetchRates(ctx, []string{"BTC"})
		if len(rates) > 0 {
			fmt.Fprintf(out, "%s: OK (%d rates)\n", adapter.Name(), len(rates))
		} else {
			fmt.Fprintf(out, "%s: no data\n", adapter.Name())
		}
	}
}

func top(opportunities []models.Opportunity, n int) []models.Opportunity {
	if len(opportunities) < n {
		return opportunities
	}
	return opportunities[:n]
}
