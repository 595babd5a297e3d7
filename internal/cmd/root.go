// Package cmd implements the quizforge command line: a serving mode and a
// single-job worker mode.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/server/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Quiz-generation job service",
	Long: `quizforge serves an asynchronous quiz-generation job API backed by
object storage and an agent runtime, plus synchronous document
extraction and upload-presigning endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
}

// versionInfo is set from main at build time.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{Version: "dev", Commit: "HEAD", BuildDate: "unknown"}

// SetVersionInfo installs build metadata for the version command and the
// /version endpoint.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
	handlers.SetVersionInfo(version, commit, buildDate)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quizforge %s (commit %s, built %s)\n",
			versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
