package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jkantola/smalltalk/cmd/cli/importer"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportPersonas(t *testing.T) {
	path := writeFile(t, "personas.json", `[
		{"name": "Tessa", "role": "Trade Show Regular", "targetInfo": ["booth budget"], "conversationStarters": ["Long day?"]}
	]`)

	cmd := importer.Personas
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("sqlite-url", ":memory:"))
	require.NoError(t, cmd.RunE(cmd, []string{path}))
}

func TestImportPersonasMalformedFile(t *testing.T) {
	path := writeFile(t, "personas.json", `not json`)

	cmd := importer.Personas
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("sqlite-url", ":memory:"))
	err := cmd.RunE(cmd, []string{path})
	require.ErrorContains(t, err, "parse import file")
}

func TestImportTargets(t *testing.T) {
	path := writeFile(t, "targets.json", `["your badge number", "the office alarm code"]`)

	cmd := importer.Targets
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("sqlite-url", ":memory:"))
	require.NoError(t, cmd.RunE(cmd, []string{path}))
}

func TestImportTargetsMissingFile(t *testing.T) {
	cmd := importer.Targets
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("sqlite-url", ":memory:"))
	err := cmd.RunE(cmd, []string{filepath.Join(t.TempDir(), "absent.json")})
	require.ErrorContains(t, err, "open import file")
}
