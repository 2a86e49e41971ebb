package formatter

import (
	"fmt"
	"io"
	"time"
)

func printTimestamp(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintf(w, "Scan completed at %s (took %.2fs)\n",
		scanStartTime.Format("2006-01-02 15:04:05"), scanDuration.Seconds())
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
