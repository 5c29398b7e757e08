package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deeklead/apiary/internal/config"
	"github.com/deeklead/apiary/internal/constants"
	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/sim"
)

var (
	runConfigPath string
	runDuration   time.Duration
	runBees       int
	runEventsPath string
	runSeed       int64
	runQuiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hive simulation",
	Long: `Run starts the colony and the bear, lets them interact for the
configured duration, then shuts every actor down and prints a summary.

Events are appended to the JSONL activity log; watch them live in a
second terminal with 'hv watch'.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to apiary.toml (default: ./"+constants.ConfigFile+" if present)")
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "total run duration (overrides config)")
	runCmd.Flags().IntVarP(&runBees, "bees", "b", 0, "colony population (overrides config)")
	runCmd.Flags().StringVar(&runEventsPath, "events", "", "events JSONL path (overrides config)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed for reproducible runs")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress progress logging")
	rootCmd.AddCommand(runCmd)
}

// loadRunConfig resolves the config file and applies flag overrides.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := runConfigPath
	if path == "" {
		// Implicit config is optional; an explicit one must exist.
		if _, err := os.Stat(constants.ConfigFile); err == nil {
			path = constants.ConfigFile
		}
	}
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("duration") {
		cfg.RunFor = config.Duration{Duration: runDuration}
	}
	if cmd.Flags().Changed("bees") {
		cfg.Population = runBees
	}
	if cmd.Flags().Changed("events") {
		cfg.EventsFile = runEventsPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = runSeed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	// One run per events file at a time.
	lock, err := sim.AcquireRunLock(cfg.EventsFile + ".lock")
	if err != nil {
		return err
	}
	defer lock.Release()

	run := events.NewRunID()
	jsonl, err := events.NewJSONLSink(cfg.EventsFile, run)
	if err != nil {
		return fmt.Errorf("opening events file: %w", err)
	}
	defer jsonl.Close()

	tally := events.NewMemorySink(run)
	sink := events.Fanout{jsonl, tally}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if runQuiet {
		logger = log.New(io.Discard, "", 0)
	}

	app := sim.New(cfg, sink, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RunFor.Duration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger.Printf("run %s: %d bees for %v, events -> %s", run, cfg.Population, cfg.RunFor.Duration, cfg.EventsFile)
	app.Run(ctx)

	printSummary(cfg, app, tally)
	return nil
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryDimStyle   = lipgloss.NewStyle().Faint(true)
)

// printSummary writes the end-of-run report. Styling is skipped when
// stdout is not a terminal.
func printSummary(cfg *config.Config, app *sim.App, tally *events.MemorySink) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(s lipgloss.Style, text string) string {
		if !isTTY {
			return text
		}
		return s.Render(text)
	}

	fmt.Println(render(summaryTitleStyle, "run complete"))
	fmt.Printf("  releases:   %d\n", tally.Count(events.KindRelease))
	fmt.Printf("  returns:    %d\n", tally.Count(events.KindReturn))
	fmt.Printf("  raids won:  %d\n", tally.Count(events.KindRaidSuccess))
	fmt.Printf("  raids lost: %d\n", tally.Count(events.KindRaidFailure))
	fmt.Printf("  honey:      %d/%d\n", app.Colony().Honey(), cfg.HoneyCap)
	fmt.Println(render(summaryDimStyle, fmt.Sprintf("  %d/%d bees home", app.Colony().Size(), app.Colony().Population())))
}
