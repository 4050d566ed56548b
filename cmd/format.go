package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avenkat/caprelay/internal/cleaner"
	"github.com/avenkat/caprelay/internal/config"
	"github.com/avenkat/caprelay/internal/extractor"
	"github.com/avenkat/caprelay/internal/formatter"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/rotation"
	"github.com/avenkat/caprelay/internal/settings"
)

var formatCmd = &cobra.Command{
	Use:   "format <caption>",
	Short: "Format a caption without starting the server",
	Long: `Run one caption through the pipeline and print the normalized output.
Useful for checking what a caption will turn into before wiring up the relay.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fixedName, _ := cmd.Flags().GetString("name")

		cfg := config.Get()
		logger.InitializeLoggers("error", "error")

		f := formatter.New(
			extractor.New(),
			cleaner.New(),
			rotation.New(cfg.Caption.DefaultPrefixes),
			settings.New(fixedName, ""),
			nil,
			cfg.Caption.DefaultTitle,
		)

		out, err := f.Format(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(out)
	},
}

func init() {
	formatCmd.Flags().String("name", "", "fixed title override")
}
