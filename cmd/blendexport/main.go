// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the blendexport CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/blendexport/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the blendexport CLI.
var rootCmd = &cobra.Command{
	Use:   "blendexport",
	Short: "Headless Blender-to-GLB export pipeline",
	Long: `blendexport drives Blender in background mode to export scene files to
binary glTF (GLB) with a fixed studio profile: visible animated geometry
with vertex colors and deform-bone skinning, no textures, normals, or
materials.

Each operation is a subcommand: export, verify, history, and watch.
Export runs are journaled, so batch exports skip scenes whose sources
have not changed since the last run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./blendexport.yaml or ~/.config/blendexport/config.yaml)")
	rootCmd.PersistentFlags().String("blender", "", "path to the Blender binary (default: blender on PATH)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blendexport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "blendexport"))
		}
	}

	viper.SetEnvPrefix("BLENDEXPORT")
	viper.AutomaticEnv()

	viper.SetDefault("export.journal_dir", ".blendexport")
	viper.SetDefault("watch.debounce", "500ms")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// hostConfig resolves host application settings from flags and config.
func hostConfig() types.HostConfig {
	cfg := types.HostConfig{
		Binary:    viper.GetString("host.binary"),
		ExtraArgs: viper.GetStringSlice("host.extra_args"),
	}
	if bin, _ := rootCmd.PersistentFlags().GetString("blender"); bin != "" {
		cfg.Binary = bin
	}
	return cfg
}

// journalDir resolves the journal directory from the command's flag or
// the configured default.
func journalDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("journal-dir"); dir != "" {
		return dir
	}
	return viper.GetString("export.journal_dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
