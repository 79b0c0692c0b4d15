package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/millionaires/internal/build"
)

var buildOutDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site records files from the raw data files",
	RunE: func(cmd *cobra.Command, args []string) error {
		bc := cfg.Build
		if buildOutDir != "" {
			bc.OutDir = buildOutDir
		}
		c := *cfg
		c.Build = bc
		if err := c.Validate("build"); err != nil {
			return err
		}

		m, err := build.NewBuilder(bc).Run(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "build %s: %d people\n", m.BuildID, m.People)
		for _, f := range m.Files {
			fmt.Fprintf(out, "  %s/%s: %d records\n", bc.OutDir, f.Name, f.Records)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(buildCmd)
}
