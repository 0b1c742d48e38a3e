package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugrig/plugrig/pkg/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("module: text\nsteps:\n  - strip\n  - upper\n"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Module)
	assert.Equal(t, []string{"strip", "upper"}, cfg.Steps)
}

func TestParseJSONDocument(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`{"module": "text", "steps": ["upper", "trim"]}`))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Module)
	assert.Equal(t, []string{"upper", "trim"}, cfg.Steps)
}

func TestParseNoModule(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`{"steps": ["upper"]}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.Module)
	assert.Equal(t, []string{"upper"}, cfg.Steps)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("steps: [\n"))
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Error(t, cfgErr.Unwrap())
}

func TestValidateNotAMapping(t *testing.T) {
	t.Parallel()

	for _, doc := range []any{nil, "steps", 42, []any{"steps"}} {
		_, err := config.Validate(doc)
		var cfgErr *config.Error
		require.ErrorAs(t, err, &cfgErr, "document %#v", doc)
		assert.Contains(t, err.Error(), "mapping")
	}
}

func TestValidateMissingSteps(t *testing.T) {
	t.Parallel()

	_, err := config.Validate(map[string]any{"module": "text"})
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), `"steps"`)
}

func TestValidateStepsNotASequence(t *testing.T) {
	t.Parallel()

	_, err := config.Validate(map[string]any{"steps": "upper"})
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "sequence")
}

func TestValidateEmptySteps(t *testing.T) {
	t.Parallel()

	_, err := config.Validate(map[string]any{"steps": []any{}})
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateBadStepElement(t *testing.T) {
	t.Parallel()

	_, err := config.Validate(map[string]any{"steps": []any{"upper", 7, "trim"}})
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "steps[1]")
	assert.Contains(t, err.Error(), "7")

	_, err = config.Validate(map[string]any{"steps": []any{""}})
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "steps[0]")
}

func TestValidateBadModuleType(t *testing.T) {
	t.Parallel()

	_, err := config.Validate(map[string]any{"module": 3, "steps": []any{"upper"}})
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), `"module"`)
}
