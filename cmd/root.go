package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "justify [input]",
	Short: "Fully justify text with optimal line breaks",
	Long: "Justify reflows the words of a text file into lines of a fixed width with straight\n" +
		"left and right margins, choosing breaks that minimize the total badness of the block.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runJustify,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .justify.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.IntP("width", "w", 0, "line width (default 80)")
	flags.StringP("output", "o", "", `output file, "-" for stdout (default output.txt)`)
	flags.String("report", "", "write a TOML report of the layout to this file")
	flags.String("telemetry", "", "append JSONL run events to this file")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("log-json", false, "emit logs as JSON")
	rootCmd.Flags().Bool("preview", false, "print a framed preview of the block to stderr")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".justify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("JUSTIFY")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
