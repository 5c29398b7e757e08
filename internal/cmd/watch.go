package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/deeklead/apiary/internal/constants"
	"github.com/deeklead/apiary/internal/tui/feed"
)

var (
	watchEventsPath string
	watchHoneyCap   int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a run's activity stream live",
	Long: `Watch tails the events JSONL file of a running (or finished)
simulation and renders the activity stream with a live honey gauge.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchEventsPath, "events", constants.EventsFile, "events JSONL path to tail")
	watchCmd.Flags().IntVar(&watchHoneyCap, "cap", constants.DefaultHoneyCap, "honey cap for the gauge")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	source, err := feed.NewFileSource(watchEventsPath)
	if err != nil {
		return fmt.Errorf("opening events file: %w", err)
	}
	defer source.Close()

	model := feed.New(source, watchHoneyCap)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch TUI: %w", err)
	}
	return nil
}
