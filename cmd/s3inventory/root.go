package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/s3inventory/internal/config"
	"github.com/younsl/s3inventory/internal/logger"
	"github.com/younsl/s3inventory/pkg/aws"
	"github.com/younsl/s3inventory/pkg/formatter"
	"github.com/younsl/s3inventory/pkg/inventory"
	"github.com/younsl/s3inventory/pkg/pricing"
	"github.com/younsl/s3inventory/pkg/report"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "s3inventory",
		Short: "CLI tool to inventory and classify S3 buckets",
		Long: `s3inventory lists the S3 buckets of one region, reads their public exposure
and storage metrics, classifies each bucket by importance and writes the result
into an existing Excel workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
				return err
			}
			return runInventory(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default: $HOME/.s3inventory.yaml)")
	flags.StringP("region", "r", "", "AWS region to inventory (default: us-east-1)")
	flags.StringP("output", "o", "", fmt.Sprintf("Workbook to update (default: %s)", config.DefaultOutput))
	flags.Int("start-row", report.DefaultStartRow, "First data row of the workbook (1-based)")
	flags.Int("start-col", report.DefaultStartCol, "First data column of the workbook (1-based)")
	flags.Bool("legacy-scoring", false, "Score buckets and write the Public Access column the way older inventory spreadsheets did")
	flags.Bool("dry-run", false, "Classify buckets without writing the workbook")
	flags.Bool("estimate-cost", false, "Estimate the monthly Standard storage cost of the region")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadViper reads the config file and environment, then lets explicitly set flags win
func loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}

	bindings := map[string]string{
		config.KeyRegion:        "region",
		config.KeyOutput:        "output",
		config.KeyStartRow:      "start-row",
		config.KeyStartCol:      "start-col",
		config.KeyLegacyScoring: "legacy-scoring",
		config.KeyDryRun:        "dry-run",
		config.KeyEstimateCost:  "estimate-cost",
		config.KeyLogLevel:      "log-level",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return v, nil
}

// startInventorySpinner creates and starts a spinner for the bucket inspection loop
func startInventorySpinner(region string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Inventorying S3 buckets in %s ...", region)
	s.Start()
	return s
}

// spinnerFinalMessage reports the outcome of the bucket inspection loop
func spinnerFinalMessage(inventoried int, scanDuration time.Duration, runErr error) string {
	if runErr != nil {
		return fmt.Sprintf("✗ S3 inventory failed after %.2f seconds\n", scanDuration.Seconds())
	}
	return fmt.Sprintf("✓ [%d buckets inventoried] S3 buckets analyzed - Completed in %.2f seconds\n",
		inventoried, scanDuration.Seconds())
}

func runInventory(ctx context.Context, cfg *config.Config) error {
	log := logger.Log.WithField("region", cfg.Region)

	fmt.Println("Starting S3 inventory ...")
	scanStartTime := time.Now()

	clients, err := aws.NewClients(ctx, cfg.Region)
	if err != nil {
		return err
	}

	var sink inventory.ReportSink
	if !cfg.DryRun {
		writer := report.NewWriter(cfg.Output)
		writer.StartRow = cfg.StartRow
		writer.StartCol = cfg.StartCol
		writer.LegacyColumns = cfg.LegacyScoring
		sink = writer
	}

	s := startInventorySpinner(cfg.Region)
	runner := inventory.NewRunner(
		aws.NewS3Inspector(clients.S3, cfg.Region),
		aws.NewMetricFetcher(clients.CloudWatch),
		sink,
		log,
		inventory.Options{
			LegacyScoring: cfg.LegacyScoring,
			DryRun:        cfg.DryRun,
			Progress: func(index, total int, bucketName string) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" Inspecting bucket %d/%d: %s", index+1, total, bucketName)
				s.Unlock()
			},
		},
	)

	result, runErr := runner.Run(ctx)
	scanDuration := time.Since(scanStartTime)

	s.FinalMSG = spinnerFinalMessage(len(result.Records), scanDuration, runErr)
	s.Stop()

	if runErr != nil {
		return runErr
	}
	if result.TotalBuckets == 0 {
		return nil
	}

	var estimate *formatter.CostEstimate
	var estimator *pricing.Estimator
	if cfg.EstimateCost {
		estimator = newEstimator(ctx)
		price, source := estimator.StandardStoragePrice(ctx, cfg.Region)
		estimate = &formatter.CostEstimate{
			Region:     cfg.Region,
			PricePerGB: price,
			Source:     source,
			Monthly:    pricing.EstimateMonthlyCost(result.Records, price),
		}
	}

	skipped := make([]string, 0, len(result.Skipped))
	for _, sb := range result.Skipped {
		skipped = append(skipped, sb.Name)
	}

	formatter.PrintInventoryTable(os.Stdout, result.Records, scanStartTime, scanDuration)
	formatter.PrintInventorySummary(os.Stdout, result.Records, skipped, estimate)
	if estimator != nil {
		formatter.PrintPricingAPIStats(os.Stdout, estimator.Stats())
	}

	if result.Written {
		fmt.Printf("Workbook updated: %s\n", cfg.Output)
	}
	return nil
}

// newEstimator falls back to the built-in prices when no pricing client can be created
func newEstimator(ctx context.Context) *pricing.Estimator {
	client, err := pricing.NewPricingClient(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Pricing API unavailable, using default prices")
		return pricing.NewEstimator(nil)
	}
	return pricing.NewEstimator(client)
}
