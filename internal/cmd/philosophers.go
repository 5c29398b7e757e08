package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/deeklead/apiary/internal/philo"
)

var (
	philoCount    int
	philoDuration time.Duration
)

var philosophersCmd = &cobra.Command{
	Use:   "philosophers",
	Short: "Run the dining-philosophers demo",
	Long: `Philosophers runs the simpler sibling demo: five thinkers around a
table avoid deadlock by only ever taking both forks at once. Each
philosopher reports its meal count at the end.`,
	RunE: runPhilosophers,
}

func init() {
	philosophersCmd.Flags().IntVarP(&philoCount, "count", "n", 5, "number of philosophers (and forks)")
	philosophersCmd.Flags().DurationVarP(&philoDuration, "duration", "d", 5*time.Second, "how long to dine")
	rootCmd.AddCommand(philosophersCmd)
}

func runPhilosophers(cmd *cobra.Command, args []string) error {
	if philoCount < 2 {
		return fmt.Errorf("need at least 2 philosophers, got %d", philoCount)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), philoDuration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	table := philo.NewTable(philoCount)
	meals := table.Run(ctx)

	for i, n := range meals {
		fmt.Printf("Philosopher #%d has eaten %d times\n", i, n)
	}
	return nil
}
