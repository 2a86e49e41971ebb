package formatter

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/younsl/s3inventory/internal/models"
	"github.com/younsl/s3inventory/pkg/pricing"
)

func sampleRecords() []models.BucketRecord {
	size, objects := float64(5*1024*1024), float64(1234)
	return []models.BucketRecord{
		{
			Name:                 "assets",
			CreationDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			SizeBytes:            &size,
			ObjectCount:          &objects,
			IsFullyAccessBlocked: true,
			Classification:       models.Classification{Importance: models.ImportanceIrrelevant, Removable: true},
		},
		{
			Name:            "website",
			HasPublicPolicy: true,
			Classification:  models.Classification{Importance: models.ImportanceImportant},
		},
	}
}

func TestPrintInventoryTable(t *testing.T) {
	var buf bytes.Buffer
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	PrintInventoryTable(&buf, sampleRecords(), start, 2*time.Second)

	out := buf.String()
	for _, want := range []string{"NAME", "assets", "website", "2024-01-01", "30", "5.0 MiB", "1,234", "important", "Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "assets") > strings.Index(out, "website") {
		t.Error("table should keep inventory order")
	}
}

func TestPrintInventoryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintInventoryTable(&buf, nil, time.Now(), 0)
	if !strings.Contains(buf.String(), "No S3 buckets inventoried") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintInventorySummary(t *testing.T) {
	var buf bytes.Buffer
	estimate := &CostEstimate{Region: "us-east-1", PricePerGB: 0.023, Source: pricing.PricingSourceDefault, Monthly: 12.5}
	PrintInventorySummary(&buf, sampleRecords(), []string{"broken"}, estimate)

	out := buf.String()
	for _, want := range []string{"Buckets inventoried:", "Removable buckets:", "5.0 MiB", "$12.50", "Default", "Skipped buckets:", "broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPricingAPIStats(t *testing.T) {
	var buf bytes.Buffer
	PrintPricingAPIStats(&buf, map[string]pricing.APIStats{"us-east-1": {Success: 1, Cache: 2}})
	if !strings.Contains(buf.String(), "100.0%") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	PrintPricingAPIStats(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output without stats, got %q", buf.String())
	}
}

func TestPrintInventoryTableNaNMetrics(t *testing.T) {
	nan := math.NaN()
	size := float64(2048)
	records := []models.BucketRecord{
		{Name: "odd", SizeBytes: &nan, ObjectCount: &nan},
		{Name: "plain", SizeBytes: &size},
	}

	var buf bytes.Buffer
	PrintInventoryTable(&buf, records, time.Now(), time.Second)
	PrintInventorySummary(&buf, records, nil, nil)

	out := buf.String()
	if strings.Contains(out, "NaN") {
		t.Errorf("NaN leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "2.0 KiB") {
		t.Errorf("totals should ignore NaN sizes:\n%s", out)
	}
}
