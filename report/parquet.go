package report

import (
	"bytes"
	"fmt"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

// parquetRecord mirrors models.SnapshotRecord with parquet schema tags.
type parquetRecord struct {
	Timestamp          string  `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	ScanID             string  `parquet:"name=scan_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Symbol             string  `parquet:"name=symbol, type=BYTE_ARRAY, convertedtype=UTF8"`
	LongExchange       string  `parquet:"name=long_exchange, type=BYTE_ARRAY, convertedtype=UTF8"`
	ShortExchange      string  `parquet:"name=short_exchange, type=BYTE_ARRAY, convertedtype=UTF8"`
	LongRate           float64 `parquet:"name=long_rate, type=DOUBLE"`
	ShortRate          float64 `parquet:"name=short_rate, type=DOUBLE"`
	RateDifference     float64 `parquet:"name=rate_difference, type=DOUBLE"`
	NetProfit8hPct     float64 `parquet:"name=net_profit_8h_pct, type=DOUBLE"`
	EstimatedProfitUSD float64 `parquet:"name=estimated_profit_usd, type=DOUBLE"`
}

// memoryFileWriter implements the ParquetFile interface over a byte
// buffer so the finished file can be flushed to disk in one atomic write.
type memoryFileWriter struct {
	buffer *bytes.Buffer
}

func newMemoryFileWriter() *memoryFileWriter {
	return &memoryFileWriter{buffer: &bytes.Buffer{}}
}

func (mfw *memoryFileWriter) Create(name string) (source.ParquetFile, error) { return mfw, nil }
func (mfw *memoryFileWriter) Open(name string) (source.ParquetFile, error)   { return mfw, nil }

func (mfw *memoryFileWriter) Seek(offset int64, whence int) (int64, error) {
	return int64(mfw.buffer.Len()), nil
}

func (mfw *memoryFileWriter) Read(b []byte) (int, error)  { return mfw.buffer.Read(b) }
func (mfw *memoryFileWriter) Write(b []byte) (int, error) { return mfw.buffer.Write(b) }
func (mfw *memoryFileWriter) Close() error                { return nil }

// writeParquet renders the snapshot records as a snappy-compressed
// parquet file next to the JSON snapshot.
func writeParquet(path string, records []models.SnapshotRecord) error {
	mem := newMemoryFileWriter()

	pw, err := writer.NewParquetWriter(mem, new(parquetRecord), 1)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		row := parquetRecord{
			Timestamp:          record.Timestamp,
			ScanID:             record.ScanID,
			Symbol:             record.Symbol,
			LongExchange:       record.LongExchange,
			ShortExchange:      record.ShortExchange,
			LongRate:           record.LongRate,
			ShortRate:          record.ShortRate,
			RateDifference:     record.RateDifference,
			NetProfit8hPct:     record.NetProfit8hPct,
			EstimatedProfitUSD: record.EstimatedProfitUSD,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet file: %w", err)
	}

	return writeFileAtomic(path, mem.buffer.Bytes())
}
