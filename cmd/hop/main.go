package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hopinc/hop-go/cmd/hop/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "hop",
	Short: "Hop platform CLI",
	Long: `A command-line interface for the Hop container-hosting platform.

Manage Ignite deployments and containers, project secrets and tokens,
registry images, realtime channels, and pipe rooms.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.hop/config.yml)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "authentication token (ptk_, pat_, or bearer_)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "project id for project-scoped operations")
	rootCmd.PersistentFlags().String("api", "", "API endpoint URL")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewAuthCommand())
	rootCmd.AddCommand(commands.NewIgniteCommand())
	rootCmd.AddCommand(commands.NewProjectsCommand())
	rootCmd.AddCommand(commands.NewRegistryCommand())
	rootCmd.AddCommand(commands.NewChannelsCommand())
	rootCmd.AddCommand(commands.NewPipeCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".hop"))
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
	}

	viper.SetEnvPrefix("HOP")
	viper.AutomaticEnv()

	// Missing config files are fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
