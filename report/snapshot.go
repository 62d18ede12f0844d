package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

// SnapshotWriter persists the profitable opportunities of one scan to a
// timestamped JSON file, optionally mirrored as parquet and to S3. Every
// failure is logged and swallowed; a failed save never stops the scanner.
type SnapshotWriter struct {
	cfg      *config.Config
	uploader *s3Uploader
	log      *logger.Log
	now      func() time.Time
}

func NewSnapshotWriter(cfg *config.Config) *SnapshotWriter {
	w := &SnapshotWriter{
		cfg: cfg,
		log: logger.GetLogger(),
		now: time.Now,
	}
	if cfg.Storage.S3.Enabled {
		uploader, err := newS3Uploader(cfg)
		if err != nil {
			w.log.WithComponent("snapshot_writer").WithError(err).Warn("S3 upload disabled")
		} else {
			w.uploader = uploader
		}
	}
	return w
}

// Write serializes the opportunities and writes one snapshot file per
// scan. The JSON file is written atomically: a temp file in the output
// directory is renamed into place, so an interrupted scan never leaves a
// partial snapshot behind.
func (w *SnapshotWriter) Write(ctx context.Context, scanID string, opportunities []models.Opportunity) {
	log := w.log.WithComponent("snapshot_writer")

	if len(opportunities) == 0 {
		return
	}

	if err := os.MkdirAll(w.cfg.Output.Dir, 0o755); err != nil {
		log.WithError(err).Warn("failed to create output directory")
		return
	}

	now := w.now().UTC()
	records := w.toRecords(scanID, now, opportunities)

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.WithError(err).Warn("failed to marshal snapshot")
		return
	}

	stamp := now.Format("20060102_150405")
	jsonPath := filepath.Join(w.cfg.Output.Dir, fmt.Sprintf("opportunities_%s.json", stamp))

	if err := writeFileAtomic(jsonPath, payload); err != nil {
		log.WithError(err).Warn("failed to write snapshot file")
		return
	}
	log.WithFields(logger.Fields{"file": jsonPath, "opportunities": len(records)}).Info("snapshot saved")

	if w.cfg.Output.Parquet.Enabled {
		parquetPath := filepath.Join(w.cfg.Output.Dir, fmt.Sprintf("opportunities_%s.parquet", stamp))
		if err := writeParquet(parquetPath, records); err != nil {
			log.WithError(err).Warn("failed to write parquet snapshot")
		} else {
			log.WithFields(logger.Fields{"file": parquetPath}).Info("parquet snapshot saved")
		}
	}

	if w.uploader != nil {
		key := filepath.Base(jsonPath)
		if err := w.uploader.upload(ctx, key, payload); err != nil {
			log.WithError(err).Warn("failed to upload snapshot to S3")
		} else {
			log.WithFields(logger.Fields{"key": key}).Info("snapshot uploaded to S3")
		}
	}
}

func (w *SnapshotWriter) toRecords(scanID string, now time.Time, opportunities []models.Opportunity) []models.SnapshotRecord {
	records := make([]models.SnapshotRecord, 0, len(opportunities))
	for _, op := range opportunities {
		record := models.SnapshotRecord{
			Timestamp:          now.Format(time.RFC3339),
			ScanID:             scanID,
			Symbol:             op.Symbol,
			LongExchange:       op.LongExchange,
			ShortExchange:      op.ShortExchange,
			LongRate:           op.LongRate,
			ShortRate:          op.ShortRate,
			RateDifference:     op.RateDifference,
			NetProfit8hPct:     op.NetProfit8h,
			EstimatedProfitUSD: op.NetProfit8h * w.cfg.Scanner.PositionSize,
		}
		if op.NextFundingTime != nil {
			next := op.NextFundingTime.Format(time.RFC3339)
			record.NextFundingTime = &next
		}
		records = append(records, record)
	}
	return records
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
