package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/millionaires/internal/counts"
)

var (
	countsOut           string
	compareCountsFile   string
	compareLocationFile string
	compareAll          bool
)

// dataPath resolves a build input against the data directory.
func dataPath(name string) string {
	if name == "" || filepath.IsAbs(name) || name == "-" {
		return name
	}
	return filepath.Join(cfg.Build.DataDir, name)
}

var countsCmd = &cobra.Command{
	Use:   "counts [people-file]",
	Short: "Write per-state and per-city counts of the people file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("counts"); err != nil {
			return err
		}
		in := dataPath(cfg.Build.PeopleFile)
		if len(args) == 1 {
			in = args[0]
		}
		out := countsOut
		if out == "" {
			out = dataPath(cfg.Build.CountsFile)
		}

		f, err := os.Open(in)
		if err != nil {
			return eris.Wrapf(err, "counts: open %s", in)
		}
		defer f.Close() //nolint:errcheck

		c, err := counts.Count(cmd.Context(), f)
		if err != nil {
			return err
		}

		if out == "-" {
			return c.Write(cmd.OutOrStdout())
		}
		if err := writeFile(out, c.Write); err != nil {
			return err
		}
		zap.L().Info("counts written",
			zap.String("path", out),
			zap.Int("rows", c.Total()),
			zap.Int("states", len(c.States)),
		)
		return nil
	},
}

var countsCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare counted state totals against the location totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		countsPath := compareCountsFile
		if countsPath == "" {
			countsPath = dataPath(cfg.Build.CountsFile)
		}
		locationPath := compareLocationFile
		if locationPath == "" {
			locationPath = dataPath(cfg.Build.LocationFile)
		}

		cf, err := os.Open(countsPath)
		if err != nil {
			return eris.Wrapf(err, "counts file not found: %s", countsPath)
		}
		defer cf.Close() //nolint:errcheck
		lf, err := os.Open(locationPath)
		if err != nil {
			return eris.Wrapf(err, "location file not found: %s", locationPath)
		}
		defer lf.Close() //nolint:errcheck

		totals, err := counts.ReadStateTotals(cf)
		if err != nil {
			return err
		}
		location, err := counts.ReadLocationTotals(lf)
		if err != nil {
			return err
		}

		diffs := counts.Compare(counts.TotalsMap(totals), location, compareAll)
		fmt.Fprintln(cmd.OutOrStdout(), counts.FormatDiffs(diffs))
		return nil
	},
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func init() {
	countsCmd.Flags().StringVar(&countsOut, "out", "", `counts file to write, "-" for stdout (default from config)`)
	countsCompareCmd.Flags().StringVar(&compareCountsFile, "counts-file", "", "counts file (default from config)")
	countsCompareCmd.Flags().StringVar(&compareLocationFile, "location-file", "", "location totals file (default from config)")
	countsCompareCmd.Flags().BoolVar(&compareAll, "all", false, "show all states, not just differences")
	countsCmd.AddCommand(countsCompareCmd)
	rootCmd.AddCommand(countsCmd)
}
