package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/millionaires/internal/model"
)

func TestDefaultNotable(t *testing.T) {
	n, err := DefaultNotable()
	require.NoError(t, err)
	assert.Equal(t, 27, n.Len())

	morgan := person("J. PIERPONT MORGAN (of Drexel, Morgan & Co.).", "NY", model.CityPtr("New York"), "Banker")
	twain := person(`SAMUEL L. CLEMENS (known in literature as "Mark Twain").`, "CT", model.CityPtr("Hartford"), "Author")
	other := person("J. PIERPONT MORGAN", "NY", nil, "")

	assert.True(t, n.Match(morgan))
	assert.True(t, n.Match(twain))
	assert.False(t, n.Match(other))

	got := n.Select([]model.PersonRecord{other, twain, alice, morgan})
	assert.Equal(t, []string{twain.Name, morgan.Name}, names(got))
}

func TestNotable_SelectEmpty(t *testing.T) {
	n := NewNotable([]string{"Jay Gould."})
	got := n.Select(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, []string{"Jay Gould."}, n.Names())
}

func TestLoadNotable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("names:\n  - JAY GOULD.\n  - Jay Gould\n  - \"...\"\n"), 0o644))

	n, err := LoadNotable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Len())
	assert.True(t, n.Match(person("Jay  Gould", "NY", nil, "")))

	def, err := LoadNotable("")
	require.NoError(t, err)
	assert.Equal(t, 27, def.Len())
}

func TestLoadNotable_Errors(t *testing.T) {
	_, err := LoadNotable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("names: []\n"), 0o644))
	_, err = LoadNotable(empty)
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("names: [unclosed\n"), 0o644))
	_, err = LoadNotable(bad)
	require.Error(t, err)
}
