package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
	"github.com/sells-group/millionaires/internal/report"
)

var notableOutput outputFlags

var notableCmd = &cobra.Command{
	Use:   "notable",
	Short: "List the curated notable individuals found in the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher, err := query.LoadNotable(cfg.Notable.File)
		if err != nil {
			return err
		}

		n := page.NewNotable(matcher)
		idx, err := loadIndex(cmd.Context(), cfg, page.NotableSources...)
		if err != nil {
			n = n.Failed(err)
		} else {
			n = n.Loaded(idx)
		}

		v := n.View()
		if err := notableOutput.writeReport(cmd.OutOrStdout(), report.Notable(v)); err != nil {
			return err
		}
		if v.Status == page.StatusUnavailable {
			return errUnavailable
		}
		return nil
	},
}

func init() {
	notableCmd.Flags().StringVar(&notableOutput.format, "format", "table", "output format: table, json, markdown, xlsx")
	notableCmd.Flags().StringVar(&notableOutput.out, "out", "", "write output to this file")
	rootCmd.AddCommand(notableCmd)
}
