package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/younsl/s3inventory/pkg/pricing"
)

// PrintPricingAPIStats prints the statistics of pricing API calls
func PrintPricingAPIStats(out io.Writer, stats map[string]pricing.APIStats) {
	if len(stats) == 0 {
		return
	}

	fmt.Fprintln(out, "\n## AWS Pricing API Call Statistics")

	// Use tabwriter for clean tabular output
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	// Print header
	fmt.Fprintln(w, "SERVICE\tREGION\tAPI CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")

	regions := make([]string, 0, len(stats))
	for region := range stats {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for _, region := range regions {
		s := stats[region]
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			"S3",
			region,
			s.Total(),
			s.Success,
			s.Failure,
			s.Cache,
			s.SuccessRate(),
		)
	}

	w.Flush()
}
