package formatter

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/s3inventory/internal/models"
	"github.com/younsl/s3inventory/pkg/pricing"
	"github.com/younsl/s3inventory/pkg/utils"
)

// CostEstimate is the optional storage cost line of the summary
type CostEstimate struct {
	Region     string
	PricePerGB float64
	Source     pricing.PricingSource
	Monthly    float64
}

// PrintInventoryTable prints the inventoried buckets as a table, in inventory order
func PrintInventoryTable(out io.Writer, records []models.BucketRecord, scanStartTime time.Time, scanDuration time.Duration) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No S3 buckets inventoried.")
		return
	}

	printTimestamp(out, scanStartTime, scanDuration)

	// Setup tabwriter for kubernetes style tables
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	// Print header
	fmt.Fprintln(w, "NAME\tCREATED\tAGE (DAYS)\tSIZE\tOBJECTS\tPUBLIC ACCESS\tPUBLIC POLICY\tIMPORTANCE\tREMOVABLE")

	for _, record := range records {
		age := "N/A"
		if !record.CreationDate.IsZero() {
			age = fmt.Sprintf("%d", utils.CalculateElapsedDays(record.CreationDate, scanStartTime))
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			record.Name,
			utils.FormatDate(record.CreationDate),
			age,
			formatSize(record.SizeBytes),
			formatCount(record.ObjectCount),
			yesNo(record.IsPubliclyExposed()),
			yesNo(record.HasPublicPolicy),
			record.Classification.Importance,
			yesNo(record.Classification.Removable))
	}

	// Print totals
	printInventoryTotals(w, records)

	w.Flush()
}

// printInventoryTotals prints the summary information at the bottom of the table
func printInventoryTotals(w *tabwriter.Writer, records []models.BucketRecord) {
	var totalObjects, totalSize float64
	for _, record := range records {
		totalObjects += utils.FloatOrZero(record.ObjectCount)
		totalSize += utils.FloatOrZero(record.SizeBytes)
	}

	// Print summary with kubernetes style alignment
	fmt.Fprintf(w, "Total:\t\t\t%s\t%s\t\t\t\t\n",
		humanize.IBytes(uint64(totalSize)),
		humanize.Comma(int64(totalObjects)),
	)
}

// PrintInventorySummary prints counts per importance tier and the removable storage
func PrintInventorySummary(out io.Writer, records []models.BucketRecord, skipped []string, estimate *CostEstimate) {
	counts := make(map[models.Importance]int)
	var removable int
	var removableSize float64

	for _, record := range records {
		counts[record.Classification.Importance]++
		if record.Classification.Removable {
			removable++
			removableSize += utils.FloatOrZero(record.SizeBytes)
		}
	}

	// Setup tabwriter for kubernetes style tables
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "\n## S3 INVENTORY SUMMARY:")
	fmt.Fprintf(w, "Buckets inventoried:\t%d\n", len(records))
	fmt.Fprintf(w, "Critical:\t%d\n", counts[models.ImportanceCritical])
	fmt.Fprintf(w, "Important:\t%d\n", counts[models.ImportanceImportant])
	fmt.Fprintf(w, "Irrelevant:\t%d\n", counts[models.ImportanceIrrelevant])
	fmt.Fprintf(w, "Removable buckets:\t%d\n", removable)
	fmt.Fprintf(w, "Removable storage:\t%s\n", humanize.IBytes(uint64(removableSize)))

	if estimate != nil {
		if estimate.Source == pricing.PricingSourceNA {
			fmt.Fprintf(w, "Estimated monthly storage cost:\tN/A (no price for %s)\n", estimate.Region)
		} else {
			fmt.Fprintf(w, "Estimated monthly storage cost:\t$%s (%.4f USD/GB-month, %s)\n",
				humanize.FormatFloat("#,###.##", estimate.Monthly), estimate.PricePerGB, estimate.Source)
		}
	}

	if len(skipped) > 0 {
		fmt.Fprintf(w, "Skipped buckets:\t%d\n", len(skipped))
		for _, name := range skipped {
			fmt.Fprintf(w, "  - %s\t\n", name)
		}
	}

	w.Flush()
}

func formatSize(size *float64) string {
	if size == nil || math.IsNaN(*size) {
		return "N/A"
	}
	return humanize.IBytes(uint64(*size))
}

func formatCount(count *float64) string {
	if count == nil || math.IsNaN(*count) {
		return "N/A"
	}
	return humanize.Comma(int64(*count))
}
