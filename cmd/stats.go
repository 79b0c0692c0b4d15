package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
	"github.com/sells-group/millionaires/internal/report"
)

var (
	statsState     string
	statsStateSort []string
	statsCitySort  []string
	statsOutput    outputFlags
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show people counts by state, city, and industry",
	Long: `Shows the state table, the city table for --state, and industry totals.

Each --state-sort or --city-sort value is a header click: the active key
flips direction and another key starts in its default direction (labels
ascending, counts descending). States start sorted by label ascending and
cities by count descending.`,
	Example: `  millionaires stats --state "NEW YORK"
  millionaires stats --state-sort count --state-sort count
  millionaires stats --format xlsx --out stats.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := applyStatsSorts(page.NewStats(), statsStateSort, statsCitySort)
		if err != nil {
			return err
		}
		s = s.SelectState(statsState)

		idx, err := loadIndex(cmd.Context(), cfg, page.StatsSources...)
		if err != nil {
			s = s.Failed(err)
		} else {
			s = s.Loaded(idx)
		}

		v := s.View()
		if err := statsOutput.writeReport(cmd.OutOrStdout(), report.Stats(v)); err != nil {
			return err
		}
		if v.Status == page.StatusUnavailable {
			return errUnavailable
		}
		return nil
	},
}

// applyStatsSorts replays header clicks in order.
func applyStatsSorts(s page.Stats, stateClicks, cityClicks []string) (page.Stats, error) {
	for _, raw := range stateClicks {
		key, err := query.ParseSortKey(raw)
		if err != nil {
			return s, err
		}
		s = s.ToggleStateSort(key)
	}
	for _, raw := range cityClicks {
		key, err := query.ParseSortKey(raw)
		if err != nil {
			return s, err
		}
		s = s.ToggleCitySort(key)
	}
	return s, nil
}

func init() {
	statsCmd.Flags().StringVar(&statsState, "state", "", "state whose city totals are listed")
	statsCmd.Flags().StringArrayVar(&statsStateSort, "state-sort", nil, "state table header click: label or count (repeatable)")
	statsCmd.Flags().StringArrayVar(&statsCitySort, "city-sort", nil, "city table header click: label or count (repeatable)")
	statsCmd.Flags().StringVar(&statsOutput.format, "format", "table", "output format: table, json, markdown, xlsx")
	statsCmd.Flags().StringVar(&statsOutput.out, "out", "", "write output to this file")
	rootCmd.AddCommand(statsCmd)
}
