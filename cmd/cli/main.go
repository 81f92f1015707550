package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"healthlens/adapters/excel"
	"healthlens/adapters/filestore"
	"healthlens/app"
	"healthlens/domain/core"
	"healthlens/ui"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "healthlens",
		Short:         "Analyze Apple Health data stored as YYYY/MM/DD/*.json trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("data", os.Getenv("DATA_DIR"), "Path to the data directory")

	rootCmd.AddCommand(
		newScanCmd(),
		newMetricCmd(),
		newSleepCmd(),
		newActivityCmd(),
		newHeartCmd(),
		newCorrelateCmd(),
		newCompareCmd(),
		newYearlyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openAnalyzer builds the store and analyzer from the --data flag.
func openAnalyzer(cmd *cobra.Command) (*app.Analyzer, *filestore.Store, error) {
	dir, _ := cmd.Flags().GetString("data")
	if dir == "" {
		return nil, nil, fmt.Errorf("data directory required (--data or DATA_DIR)")
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("not a directory: %s", dir)
	}
	store := filestore.New(dir)
	return app.NewAnalyzer(store), store, nil
}

// addRangeFlags registers the shared date-selection flags.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("period", "30d", "Alternative to --from/--to: last N days (e.g. 30d)")
}

func resolveRange(cmd *cobra.Command, store *filestore.Store) (core.DateRange, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	period, _ := cmd.Flags().GetString("period")
	return app.ResolveRange(store, app.RangeRequest{From: from, To: to, Period: period})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Overview: trend alerts, anomalies, correlations, consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			return printJSON(analyzer.Scan(r))
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func newMetricCmd() *cobra.Command {
	var name string
	var streakThreshold float64
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Full statistics bundle for a single metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("metric requires --name")
			}
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			result, err := analyzer.Metric(r, name, streakThreshold)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Metric name, e.g. step-count")
	cmd.Flags().Float64Var(&streakThreshold, "streak-threshold", 0, "Also report the longest run of days at or above this value")
	return cmd
}

func newSleepCmd() *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Sleep deep-dive: nightly stages, bedtime, averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			result := analyzer.Sleep(r)
			if export != "" {
				w := excel.NewReportWriter()
				if err := w.AddSleepSheet(result); err != nil {
					return err
				}
				if err := w.Save(export); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().StringVar(&export, "export", "", "Also write the report to an .xlsx file")
	return cmd
}

func newActivityCmd() *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Activity: steps, active energy, exercise minutes, distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			result := analyzer.Activity(r)
			if export != "" {
				w := excel.NewReportWriter()
				if err := w.AddActivitySheet(result); err != nil {
					return err
				}
				if err := w.Save(export); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().StringVar(&export, "export", "", "Also write the report to an .xlsx file")
	return cmd
}

func newHeartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heart",
		Short: "Heart: weekly resting HR and HRV with overall averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			return printJSON(analyzer.Heart(r))
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func newCorrelateCmd() *cobra.Command {
	var target, lag string
	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Correlate every metric against a target at day lags",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				return fmt.Errorf("correlate requires --target")
			}
			lags, err := ui.ParseLags(lag)
			if err != nil {
				return err
			}
			analyzer, store, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			r, err := resolveRange(cmd, store)
			if err != nil {
				return err
			}
			result, err := analyzer.Correlate(r, target, lags)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().StringVar(&target, "target", "", "Target metric name")
	cmd.Flags().StringVar(&lag, "lag", "0,1,2,3", "Comma-separated lag days")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var p1, p2 string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two calendar months side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p1 == "" || p2 == "" {
				return fmt.Errorf("compare requires --p1 and --p2 (YYYY-MM)")
			}
			analyzer, _, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			result, err := analyzer.Compare(p1, p2)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&p1, "p1", "", "First period (YYYY-MM)")
	cmd.Flags().StringVar(&p2, "p2", "", "Second period (YYYY-MM)")
	return cmd
}

func newYearlyCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "yearly",
		Short: "Twelve-month summary with bests and worsts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				return fmt.Errorf("yearly requires --year (YYYY)")
			}
			analyzer, _, err := openAnalyzer(cmd)
			if err != nil {
				return err
			}
			return printJSON(analyzer.Yearly(year))
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year (YYYY)")
	return cmd
}
