package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/younsl/s3inventory/internal/config"
	"github.com/younsl/s3inventory/pkg/report"
)

func newTemplateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Create an empty inventory workbook",
		Long: `template creates an Excel workbook with a title and a header row placed right
above the configured data offset, ready to be filled by s3inventory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			if err := report.CreateTemplate(cfg.Output, cfg.StartRow, cfg.StartCol, force); err != nil {
				return err
			}
			fmt.Printf("Template created: %s\n", cfg.Output)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing workbook")

	return cmd
}
