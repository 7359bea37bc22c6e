package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/travelspeak/internal/cli"
	"codeberg.org/snonux/travelspeak/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withProcessor(flags, func(p *processor.Processor) error {
			if flags.ListModels {
				return p.ListModels(cmd.Context())
			}
			if flags.Archive {
				return p.ArchiveExports()
			}
			// No subcommand - launch GUI mode by default
			return p.RunGUIMode()
		})
	}

	translateCmd := cli.CreateTranslateCommand(flags)
	translateCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withProcessor(flags, func(p *processor.Processor) error {
			if flags.BatchFile != "" {
				return p.ProcessBatch(cmd.Context())
			}
			if len(args) == 0 {
				return fmt.Errorf("nothing to translate: pass text or --batch FILE")
			}
			return p.TranslateOne(cmd.Context(), args[0])
		})
	}

	languagesCmd := cli.CreateLanguagesCommand()
	languagesCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withProcessor(flags, func(p *processor.Processor) error {
			p.ListLanguages()
			return nil
		})
	}

	probeCmd := cli.CreateProbeCommand()
	probeCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withProcessor(flags, func(p *processor.Processor) error {
			return p.Probe(cmd.Context())
		})
	}

	deckCmd := cli.CreateDeckCommand(flags)
	deckCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withProcessor(flags, func(p *processor.Processor) error {
			return p.ExportDeck(args[0])
		})
	}

	rootCmd.AddCommand(translateCmd, languagesCmd, probeCmd, deckCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, processor.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func withProcessor(flags *cli.Flags, run func(p *processor.Processor) error) error {
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	return run(proc)
}
