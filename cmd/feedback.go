package cmd

import (
	"fmt"
	"strings"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/feedback"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// feedbackSetup loads minimal configuration needed to pick a feedback sink.
func feedbackSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	cfg.FeedbackURL = strings.TrimSpace(viper.GetString("feedback-url"))
	cfg.FeedbackFile = strings.TrimSpace(viper.GetString("feedback-file"))
	return nil
}

// feedbackCmd submits free-text feedback.
var feedbackCmd = &cobra.Command{
	Use:   "feedback TEXT",
	Short: "Send feedback about tbres",
	Long: `Record a free-text note about tbres.

By default the note is appended to a local log file. When --feedback-url is
set (or TBRES_FEEDBACK_URL), the note is posted to that webhook instead.

Examples:
  # Append to the local feedback log
  tbres feedback "the sample2 preset saved me an hour"

  # Send to a team webhook
  tbres feedback "solver feels slow above 40 parts" --feedback-url https://hooks.example.com/tbres`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return feedbackSetup()
	},
	Run: func(_ *cobra.Command, args []string) {
		sink := feedback.NewSink(cfg)
		if err := sink.Submit(rootCtx, args[0]); err != nil {
			contract.LogFatal("Failed to submit feedback", err)
		}
		fmt.Println("Thanks for the feedback!")
	},
}
