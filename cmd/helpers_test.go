package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

func person(name, state string, city *string, desc string) model.PersonRecord {
	return model.PersonRecord{
		Name: name, State: state, City: city, Desc: desc,
		NameNorm: textnorm.Normalize(name), DescNorm: textnorm.Normalize(desc),
	}
}

// writeRecords writes a small records set and returns its directory.
func writeRecords(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	people := []model.PersonRecord{
		person("Jay Gould", "NEW YORK", model.CityPtr("New York"), "Railroads"),
		person("Erastus Corning", "NEW YORK", model.CityPtr("Albany"), "Iron"),
		person("Erin Gould", "NEW YORK", nil, "Real estate"),
		person("Leland Stanford", "CALIFORNIA", model.CityPtr("San Francisco"), "Railroads"),
	}
	states := model.StateCityCounts{States: []model.StateAggregate{
		{State: "CALIFORNIA", Count: 1, Cities: []model.CityAggregate{{City: model.CityPtr("San Francisco"), Count: 1}}},
		{State: "NEW YORK", Count: 3, Cities: []model.CityAggregate{
			{City: nil, Count: 1},
			{City: model.CityPtr("Albany"), Count: 1},
			{City: model.CityPtr("New York"), Count: 1},
		}},
	}}
	industries := []model.IndustryAggregate{{Category: "Railroads", Count: 2}, {Category: "Iron", Count: 1}}

	for name, v := range map[string]any{
		"people_index.json":      people,
		"state_city_counts.json": states,
		"industry_totals.json":   industries,
	} {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	return dir
}

// useDataDir points the CLI at dir through the environment and runs from an
// empty working directory so no config.yaml is picked up.
func useDataDir(t *testing.T, dir string) {
	t.Helper()
	wd := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	t.Setenv("MILLIONAIRES_DATA_DIR", dir)
	t.Setenv("MILLIONAIRES_LOG_LEVEL", "error")
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

type jsonReport struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Tables  []struct {
		Title string           `json:"title"`
		Rows  []map[string]any `json:"rows"`
		Note  string           `json:"note"`
	} `json:"tables"`
}

func decodeReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var r jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}
