package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/totonoo"
	"github.com/iw2rmb/totonoo/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "totonoo",
	Short: "Markdown editing and rendering",
	Long: `Edit Markdown in the terminal with formatting shortcuts and a live
HTML preview, or render Markdown files to HTML.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := totonoo.CurrentRelease()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "totonoo", r.Tag())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd, editCmd, keysCmd, versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: search for totonoo.yaml)")
	rootCmd.PersistentFlags().String("platform", "", "Shortcut platform: default, mac")
	rootCmd.PersistentFlags().String("theme", "", "Editor theme: light, dark")

	viper.BindPFlag("platform", rootCmd.PersistentFlags().Lookup("platform"))
	viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
