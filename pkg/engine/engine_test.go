package engine_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugrig/plugrig/pkg/config"
	"github.com/plugrig/plugrig/pkg/engine"
	"github.com/plugrig/plugrig/pkg/pipeline"
	"github.com/plugrig/plugrig/pkg/plugin"
)

// testEnvVar is kept unset so engine tests are immune to the real
// config.EnvModule value.
const testEnvVar = "PLUGRIG_ENGINE_TEST_MODULE"

func textTable(t *testing.T) *plugin.Table {
	t.Helper()

	table := plugin.NewTable()
	table.RegisterSymbols("text", map[string]any{
		plugin.SymbolRegistry: map[string]any{
			"upper": strings.ToUpper,
			"trim":  strings.TrimSpace,
		},
	})

	return table
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()

	opts = append([]engine.Option{
		engine.WithLoader(textTable(t)),
		engine.WithEnvVar(testEnvVar),
	}, opts...)
	eng, err := engine.New(opts...)
	require.NoError(t, err)

	return eng
}

func TestInitEndToEnd(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, "module: text\nsteps: [upper, trim]\n")

	pipe, err := eng.Init(path)
	require.NoError(t, err)
	require.Equal(t, []string{"upper", "trim"}, pipe.Steps())

	out, err := pipe.Run(context.Background(), " hi ")
	require.NoError(t, err)
	assert.Equal(t, "HI", out)
}

func TestInitJSONDocument(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, `{"module": "text", "steps": ["trim", "upper"]}`)

	pipe, err := eng.Init(path)
	require.NoError(t, err)

	out, err := pipe.Run(context.Background(), "  go  ")
	require.NoError(t, err)
	assert.Equal(t, "GO", out)
}

func TestInitDocumentNotFound(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := eng.Init(filepath.Join(t.TempDir(), "missing.yaml"))
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "not found")
}

func TestInitMalformedDocument(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, "steps: [\n")

	_, err := eng.Init(path)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
}

func TestInitModuleNotFound(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, "module: nowhere\nsteps: [upper]\n")

	_, err := eng.Init(path)
	var regErr *plugin.Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "nowhere", regErr.Module)
}

func TestInitUnknownSteps(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, "module: text\nsteps: [upper, missing]\n")

	_, err := eng.Init(path)
	var pipeErr *pipeline.Error
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, []string{"missing"}, pipeErr.Missing)
	assert.Contains(t, err.Error(), "upper")
}

func TestInitEnvOverride(t *testing.T) {
	table := textTable(t)
	table.RegisterSymbols("loud", map[string]any{
		plugin.SymbolRegistry: map[string]any{
			"upper": func(s string) string { return strings.ToUpper(s) + "!" },
		},
	})

	eng, err := engine.New(engine.WithLoader(table), engine.WithEnvVar(testEnvVar))
	require.NoError(t, err)

	t.Setenv(testEnvVar, "loud")
	path := writeConfig(t, "module: text\nsteps: [upper]\n")

	pipe, err := eng.Init(path)
	require.NoError(t, err)

	out, err := pipe.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "HI!", out)
}

func TestInitDefaultModule(t *testing.T) {
	t.Parallel()

	table := plugin.NewTable()
	table.RegisterSymbols("fallback", map[string]any{
		plugin.SymbolRegistry: map[string]any{"trim": strings.TrimSpace},
	})

	eng, err := engine.New(
		engine.WithLoader(table),
		engine.WithEnvVar(testEnvVar),
		engine.WithDefaultModule("fallback"),
	)
	require.NoError(t, err)

	path := writeConfig(t, "steps: [trim]\n")
	pipe, err := eng.Init(path)
	require.NoError(t, err)

	out, err := pipe.Run(context.Background(), " x ")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestInitIdempotent(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	path := writeConfig(t, "module: text\nsteps: [upper, trim]\n")

	first, err := eng.Init(path)
	require.NoError(t, err)
	second, err := eng.Init(path)
	require.NoError(t, err)

	assert.Same(t, first, second)

	out1, err := first.Run(context.Background(), " hi ")
	require.NoError(t, err)
	out2, err := second.Run(context.Background(), " hi ")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestInitStableSnapshotAfterInvalidate(t *testing.T) {
	t.Parallel()

	table := textTable(t)
	eng, err := engine.New(engine.WithLoader(table), engine.WithEnvVar(testEnvVar))
	require.NoError(t, err)

	path := writeConfig(t, "module: text\nsteps: [upper]\n")
	pipe, err := eng.Init(path)
	require.NoError(t, err)

	// Swap the module for one whose "upper" behaves differently, then
	// drop the cached registry.
	table.RegisterSymbols("text", map[string]any{
		plugin.SymbolRegistry: map[string]any{
			"upper": func(s string) string { return strings.ToUpper(s) + "?" },
			"trim":  strings.TrimSpace,
		},
	})
	assert.True(t, eng.InvalidateModule("text"))

	// The cached pipeline keeps its original bindings.
	again, err := eng.Init(path)
	require.NoError(t, err)
	assert.Same(t, pipe, again)
	out, err := again.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "HI", out)

	// A distinct step list builds against the reloaded registry.
	fresh, err := eng.Pipeline("text", []string{"trim", "upper"})
	require.NoError(t, err)
	out, err = fresh.Run(context.Background(), " hi ")
	require.NoError(t, err)
	assert.Equal(t, "HI?", out)
}
