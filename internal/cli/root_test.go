package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")
	require.NotNil(t, root)

	assert.Equal(t, "renodesk", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	t.Run("persistent flags", func(t *testing.T) {
		for _, name := range []string{"debug", "config", "project-dir"} {
			assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag %s", name)
		}
	})

	t.Run("subcommands", func(t *testing.T) {
		names := map[string]bool{}
		for _, sub := range root.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"browse", "requests", "quotes", "projects", "data", "config"} {
			assert.True(t, names[want], "missing subcommand %s", want)
		}
	})
}

func TestRootCmdHelp(t *testing.T) {
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "renodesk")
	assert.Contains(t, out.String(), "browse")
}

func TestEntityCommandTree(t *testing.T) {
	for _, entity := range []string{"requests", "quotes", "projects"} {
		t.Run(entity, func(t *testing.T) {
			cmd := newEntityCmd(entity)
			subs := map[string]*cobra.Command{}
			for _, sub := range cmd.Commands() {
				subs[sub.Name()] = sub
			}

			require.Contains(t, subs, "list")
			require.Contains(t, subs, "show")

			list := subs["list"]
			for _, name := range []string{"page", "page-size", "sort", "filter", "search", "output", "wide", "workspace"} {
				assert.NotNil(t, list.Flags().Lookup(name), "missing list flag %s", name)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(OutputTable))
	assert.NoError(t, validateOutputFormat(OutputJSON))
	assert.NoError(t, validateOutputFormat(OutputNDJSON))
	assert.Error(t, validateOutputFormat("yaml"))
}
