package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
	"github.com/sells-group/millionaires/internal/report"
)

var (
	directoryState       string
	directoryCity        string
	directoryUnknownCity bool
	directoryQuery       string
	directoryLink        string
	directoryOutput      outputFlags
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "List directory entries filtered by state, city, and search text",
	Example: `  millionaires directory --state "NEW YORK" --city "New York"
  millionaires directory --q gould --format markdown
  millionaires directory --link '/directory/?state=OHIO&city=Cleveland'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := directoryDeepLink(cmd)
		if err != nil {
			return err
		}

		d := page.NewDirectory(link)
		idx, err := loadIndex(cmd.Context(), cfg, page.DirectorySources...)
		if err != nil {
			d = d.Failed(err)
		} else {
			d = d.Loaded(idx)
		}
		if directoryUnknownCity {
			d = d.SelectCity(query.UnknownCity())
		}

		v := d.View()
		if err := directoryOutput.writeReport(cmd.OutOrStdout(), report.Directory(v)); err != nil {
			return err
		}
		if v.Status == page.StatusUnavailable {
			return errUnavailable
		}
		return nil
	},
}

// directoryDeepLink merges --link with the individual filter flags, which
// take precedence when given.
func directoryDeepLink(cmd *cobra.Command) (query.DeepLink, error) {
	link, err := page.ParseDeepLinkURL(directoryLink)
	if err != nil {
		return query.DeepLink{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("state") {
		link.State = directoryState
	}
	if flags.Changed("city") {
		link.City = directoryCity
	}
	if flags.Changed("q") {
		link.Query = directoryQuery
	}
	return link, nil
}

func init() {
	directoryCmd.Flags().StringVar(&directoryState, "state", "", "state filter (unknown states are ignored)")
	directoryCmd.Flags().StringVar(&directoryCity, "city", "", "city filter within the state")
	directoryCmd.Flags().BoolVar(&directoryUnknownCity, "unknown-city", false, "only entries whose city is unknown")
	directoryCmd.Flags().StringVar(&directoryQuery, "q", "", "search text matched against names and descriptions")
	directoryCmd.Flags().StringVar(&directoryLink, "link", "", "directory page URL to take filters from")
	directoryCmd.Flags().StringVar(&directoryOutput.format, "format", "table", "output format: table, json, markdown, xlsx")
	directoryCmd.Flags().StringVar(&directoryOutput.out, "out", "", "write output to this file")
	rootCmd.AddCommand(directoryCmd)
}
