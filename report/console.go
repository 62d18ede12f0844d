// Package report formats scan results for the console and persists the
// profitable set to per-scan snapshot files.
package report

import (
	"fmt"
	"io"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

// Console renders scan results to a writer, normally os.Stdout.
type Console struct {
	out          io.Writer
	positionSize float64
}

func NewConsole(out io.Writer, positionSize float64) *Console {
	return &Console{out: out, positionSize: positionSize}
}

// Summary prints per-exchange record counts for one collection cycle.
func (c *Console) Summary(records []models.FundingRate) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "FUNDING RATES COLLECTED")
	fmt.Fprintln(c.out, "--------------------------------------------------")

	counts := make(map[string]int)
	var order []string
	for _, record := range records {
		if _, seen := counts[record.Exchange]; !seen {
			order = append(order, record.Exchange)
		}
		counts[record.Exchange]++
	}

	for _, exchange := range order {
		fmt.Fprintf(c.out, "%s: %d symbols\n", exchange, counts[exchange])
	}
	fmt.Fprintf(c.out, "\nTotal: %d funding rates\n", len(records))
}

// Opportunities prints a ranked list of spreads with the projected dollar
// profit for the configured position size.
func (c *Console) Opportunities(opportunities []models.Opportunity) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "================================================================================")
	fmt.Fprintln(c.out, "TOP ARBITRAGE OPPORTUNITIES")
	fmt.Fprintln(c.out, "================================================================================")

	for i, op := range opportunities {
		profitUSD := op.NetProfit8h * c.positionSize

		fmt.Fprintf(c.out, "\n%d. %s\n", i+1, op.Symbol)
		fmt.Fprintf(c.out, "   Long:  %s (%.4f%%)\n", op.LongExchange, op.LongRate*100)
		fmt.Fprintf(c.out, "   Short: %s (%.4f%%)\n", op.ShortExchange, op.ShortRate*100)
		fmt.Fprintf(c.out, "   Spread: %.4f%%\n", op.RateDifference*100)
		fmt.Fprintf(c.out, "   Net profit (8h): %.3f%% = $%.2f\n", op.NetProfit8h*100, profitUSD)
		fmt.Fprintf(c.out, "   Estimated fees: %.3f%%\n", op.EstimatedFees*100)
		if op.NextFundingTime != nil {
			fmt.Fprintf(c.out, "   Next funding: %s\n", op.NextFundingTime.Format("15:04:05"))
		}
		fmt.Fprintln(c.out, "--------------------------------------------------")
	}
}

// ProfitableCount announces how many opportunities cleared the threshold.
func (c *Console) ProfitableCount(n int) {
	fmt.Fprintf(c.out, "\n%d profitable opportunities found\n", n)
}

// NoProfitable prints the fallback view used when nothing clears the
// configured threshold.
func (c *Console) NoProfitable(threshold float64, best []models.Opportunity) {
	fmt.Fprintf(c.out, "\nNo profitable opportunity found (threshold: %.3f%%)\n", threshold*100)
	if len(best) > 0 {
		fmt.Fprintln(c.out, "Best current opportunities:")
		c.Opportunities(best)
	}
}
