// Package cmd defines the command-line interface for tbres.
package cmd

import (
	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the preset subcommands to the parent preset command
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetExportCmd)
	presetCmd.AddCommand(presetImportCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("feedback-url", "", "Webhook URL for the feedback command")
	rootCmd.PersistentFlags().String("feedback-file", "", "Log file for the feedback command (default ~/.tbres_feedback.log)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of solveCmd to Viper
	solveCmd.Flags().StringP("parts", "p", "", "Part inventory as TYPE:COUNT pairs (e.g. 'E:2,R4:1,R2:6')")
	solveCmd.Flags().IntP("chips", "c", 0, "Total chips budget shared across all slots")
	solveCmd.Flags().StringP("mins", "m", "", "Comma-separated minimum score per slot (e.g. '4500,3500,3000')")
	solveCmd.Flags().IntP("slots", "s", 0, "Number of slots when no minimums are given (default 1)")
	solveCmd.Flags().String("preset", "", "Solve a builtin or saved preset instead of explicit parts")
	solveCmd.Flags().Bool("progress", false, "Print candidate enumeration progress to stderr")
	if err := viper.BindPFlags(solveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding solve flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
