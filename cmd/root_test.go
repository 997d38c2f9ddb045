package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkinetics/shelflife-go/internal/conf"
)

func TestRootCommandWiring(t *testing.T) {
	settings := &conf.Settings{}
	root := RootCommand(settings)

	require.NotNil(t, root.PersistentFlags().Lookup("debug"))
	require.NotNil(t, root.PersistentFlags().Lookup("output"))

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "fit")
	assert.Contains(t, names, "predict")
}
