package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/bwmfi/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the active parameters to a SQLite snapshot",
	Long: `Write every parameter pair of the active registry to SQLite under a new
run id.

Example:
  bwmfi export --db params.db`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Show a saved SQLite snapshot",
	Long: `Load a saved run (the latest by default) and print it.

Examples:
  bwmfi import --db params.db
  bwmfi import --db params.db --run 01HV...`,
	RunE: runImport,
}

var (
	dbPath    string
	importRun string
	listRuns  bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().StringVar(&dbPath, "db", "", "SQLite database path, default $BWMFI_DB")
	}
	importCmd.Flags().StringVar(&importRun, "run", "", "run id (default latest)")
	importCmd.Flags().BoolVar(&listRuns, "list", false, "list saved run ids")
}

func openStore() (*store.SQLite, error) {
	path := dbPath
	if path == "" {
		path = env.DBPath
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return s, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.Save(context.Background(), registry)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	logger.Info("saved parameter snapshot", zap.String("run_id", runID), zap.Int("pairs", registry.Len()))

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %d parameter pairs as run %s\n", registry.Len(), runID)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if listRuns {
		runs, err := s.Runs(ctx)
		if err != nil {
			return err
		}
		for _, id := range runs {
			fmt.Fprintln(out, formatRun(id))
		}
		return nil
	}

	runID := importRun
	if runID == "" {
		if runID, err = s.Latest(ctx); err != nil {
			return err
		}
	}

	reg, err := s.Load(ctx, runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}

	fmt.Fprintf(out, "Run %s\n", runID)
	symbols := map[string]bool{}
	for _, k := range reg.Keys() {
		if symbols[k.Symbol] {
			continue
		}
		symbols[k.Symbol] = true
		if err := renderPairs(out, reg, k.Symbol, reg.Timeframes(k.Symbol)); err != nil {
			return err
		}
	}
	return nil
}

// formatRun appends the creation time encoded in id, when it parses.
func formatRun(id string) string {
	ts, err := store.RunTime(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s  %s", id, ts.Format("2006-01-02 15:04:05"))
}
