package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focustache/focustache/internal/config"
	"github.com/focustache/focustache/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "focustache",
	Short: "Student task manager with a focus session tracker",
	Long: `FocusTâche combines task management with focus and Pomodoro-style
work sessions. Track tasks, run focus timers against them, and serve the
REST API used by the web client.`,
}

// initConfig loads viper config, panicking on a broken config file
func initConfig() {
	if err := config.Init(); err != nil {
		panic(err)
	}
}

// initDB initializes the database and panics on error
func initDB() {
	initConfig()
	if err := db.Initialize(config.Get().Database.Path); err != nil {
		panic(err)
	}
}

// withDB wraps a command function to initialize config and database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initDB()
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("focustache %s (commit %s, built %s)\n", version, commit, date)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
