package main

import (
	"github.com/spf13/cobra"

	"github.com/justyntemme/triadgo/pkg/framework/debug"
)

var (
	verbose  bool
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "triad",
	Short: "Triad MIDI harmonizer",
	Long:  `Every note in, a triad out. Inspect the plugin or render MIDI files through it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := debug.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = debug.LogLevelDebug
		}
		if logFile != "" {
			l, err := debug.NewFileLogger(logFile, "triad", debug.DefaultFlags)
			if err != nil {
				return err
			}
			debug.SetDefault(l)
		}
		debug.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append log output to this file instead of stderr")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
