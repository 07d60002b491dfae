package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/settings"
)

type exported struct {
	Prefix   string `json:"prefix"`
	Settings []struct {
		Name   string `json:"name"`
		EnvVar string `json:"env_var"`
		Kind   string `json:"kind"`
		Value  any    `json:"value"`
		Source string `json:"source"`
	} `json:"settings"`
}

func run(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(settings.MapLookup(env))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type resolved struct {
	Value  any
	Source string
	Kind   string
}

func decode(t *testing.T, out string) map[string]resolved {
	t.Helper()
	var doc exported
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, envPrefix, doc.Prefix)

	byName := make(map[string]resolved)
	for _, s := range doc.Settings {
		byName[s.Name] = resolved{s.Value, s.Source, s.Kind}
	}
	return byName
}

func TestList(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		out, err := run(t, nil, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "min_cpu_chunk (int, env_only)")
		assert.Contains(t, out, "ARRAYRT_MIN_CPU_CHUNK")
		assert.Contains(t, out, "test default: 2")
		assert.NotContains(t, out, "value:")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, nil, "list", "--format", "json")
		require.NoError(t, err)
		byName := decode(t, out)
		assert.Len(t, byName, 10)
		assert.Equal(t, "mutable", byName["test"].Kind)
		assert.Equal(t, "env_only", byName["fast_math"].Kind)
		assert.Empty(t, byName["warn"].Source)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := run(t, nil, "list", "--format", "xml")
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		out, err := run(t, nil, "resolve", "-f", "json")
		require.NoError(t, err)
		byName := decode(t, out)
		assert.EqualValues(t, 1024, byName["min_cpu_chunk"].Value)
		assert.Equal(t, "default", byName["min_cpu_chunk"].Source)
	})

	t.Run("TestMode", func(t *testing.T) {
		out, err := run(t, map[string]string{"ARRAYRT_TEST": "1"}, "resolve", "-f", "json")
		require.NoError(t, err)
		byName := decode(t, out)
		assert.Equal(t, true, byName["test"].Value)
		assert.EqualValues(t, 2, byName["min_cpu_chunk"].Value)
		assert.Equal(t, "test_default", byName["min_cpu_chunk"].Source)
	})

	t.Run("FlagOverride", func(t *testing.T) {
		env := map[string]string{"ARRAYRT_WARN": "0"}
		out, err := run(t, env, "resolve", "-f", "json", "--warn", "--report-dump-csv", "cov.csv")
		require.NoError(t, err)
		byName := decode(t, out)
		assert.Equal(t, true, byName["warn"].Value)
		assert.Equal(t, "override", byName["warn"].Source)
		assert.Equal(t, "cov.csv", byName["report_dump_csv"].Value)
	})

	t.Run("EnvOnlyHasNoFlag", func(t *testing.T) {
		_, err := run(t, nil, "resolve", "--min-cpu-chunk", "4")
		assert.Error(t, err)
	})

	t.Run("EnvFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runtime.env")
		require.NoError(t, os.WriteFile(path, []byte("ARRAYRT_MIN_GPU_CHUNK=4096\n"), 0o644))

		out, err := run(t, nil, "resolve", "-f", "json", "--env-file", path)
		require.NoError(t, err)
		byName := decode(t, out)
		assert.EqualValues(t, 4096, byName["min_gpu_chunk"].Value)
		assert.Equal(t, "env", byName["min_gpu_chunk"].Source)
	})

	t.Run("MalformedEnvFails", func(t *testing.T) {
		out, err := run(t, map[string]string{"ARRAYRT_MIN_CPU_CHUNK": "abc"}, "resolve")
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrInvalidValue)
		assert.Empty(t, out)
	})
}
