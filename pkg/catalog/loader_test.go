package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
steps:
  - target: gallery
    text: Hier siehst du die nächsten Bilder.
  - target: tools-container
    text: Wähle die richtige Klasse.
  - target: gallery
    slot: add
modes:
  labels:
    add: Klicke, um das Label zuzuweisen.
  polygons:
    add: Klicke Punkte, um ein Polygon zu zeichnen.
`

func TestParse(t *testing.T) {
	c, err := catalog.Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	steps, err := c.Build(domain.ModeLabels)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, domain.TargetToolsContainer, steps[1].Target)
	assert.Equal(t, "Klicke, um das Label zuzuweisen.", steps[2].Message)

	steps, err = c.Build("polygons")
	require.NoError(t, err)
	assert.Contains(t, steps[2].Message, "Polygon")

	_, err = c.Build(domain.ModePoints)
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "steps: []\nmodes: {}\nextra: 1\n",
		"no steps":      "modes:\n  labels:\n    add: x\n",
		"text and slot": "steps:\n  - target: gallery\n    text: a\n    slot: add\nmodes:\n  labels:\n    add: x\n",
		"no target":     "steps:\n  - text: a\nmodes:\n  labels: {}\n",
		"missing slot":  "steps:\n  - target: gallery\n    slot: remove\nmodes:\n  labels:\n    add: x\n",
		"bad yaml":      "steps: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Entries, 3)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
