package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rdbsql/internal/config"
	"rdbsql/internal/convert"
)

type convertFlags struct {
	rdbDir    string
	output    string
	tool      string
	key       string
	overwrite bool
	json      bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every .rdb file in the rdb directory into one SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := applyConvertFlags(cmd, &cfg, flags); err != nil {
				return err
			}

			logger, err := ctx.newLogger(&cfg)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}

			summary, err := convert.Run(cmd.Context(), &cfg, logger)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd, summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.rdbDir, "rdb-dir", "", "Directory containing .rdb files (overrides paths.rdb_dir)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output SQLite file (overrides paths.output)")
	cmd.Flags().StringVar(&flags.tool, "libretrodb-tool", "", "libretrodb_tool binary (overrides tool.libretrodb_tool)")
	cmd.Flags().StringVar(&flags.key, "key", "", "Game uniqueness key: md5 or serial (overrides dataset.key)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace an existing output database")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the run summary as JSON")
	return cmd
}

func applyConvertFlags(cmd *cobra.Command, cfg *config.Config, flags convertFlags) error {
	expand := func(value string, target *string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return err
		}
		*target = expanded
		return nil
	}
	if err := expand(flags.rdbDir, &cfg.Paths.RDBDir); err != nil {
		return fmt.Errorf("resolve --rdb-dir: %w", err)
	}
	if err := expand(flags.output, &cfg.Paths.Output); err != nil {
		return fmt.Errorf("resolve --output: %w", err)
	}
	if tool := strings.TrimSpace(flags.tool); tool != "" {
		if strings.ContainsRune(tool, '/') || strings.HasPrefix(tool, "~") {
			if err := expand(tool, &cfg.Tool.LibretroDBTool); err != nil {
				return fmt.Errorf("resolve --libretrodb-tool: %w", err)
			}
		} else {
			cfg.Tool.LibretroDBTool = tool
		}
	}
	if key := strings.TrimSpace(flags.key); key != "" {
		cfg.Dataset.Key = strings.ToLower(key)
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Dataset.Overwrite = flags.overwrite
	}
	return cfg.Validate()
}
