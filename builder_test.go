// FILE: lixenwraith/settings/builder_test.go
package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r, err := NewBuilder().WithDeclarations(warnDecl()).Build()
		require.NoError(t, err)
		assert.Equal(t, "", r.Prefix())

		s, err := Lookup[bool](r, "warn")
		require.NoError(t, err)
		assert.Equal(t, "WARN", s.EnvVar())
	})

	t.Run("PrefixNormalized", func(t *testing.T) {
		r, err := NewBuilder().WithEnvPrefix("app_").WithDeclarations(warnDecl()).WithLookup(MapLookup(nil)).Build()
		require.NoError(t, err)
		s, err := Lookup[bool](r, "warn")
		require.NoError(t, err)
		assert.Equal(t, "APP_WARN", s.EnvVar())
	})

	t.Run("NilLookup", func(t *testing.T) {
		_, err := NewBuilder().WithLookup(nil).Build()
		assert.Error(t, err)
	})

	t.Run("DeclarationErrorWrapped", func(t *testing.T) {
		_, err := NewBuilder().WithDeclarations(warnDecl(), warnDecl()).Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateSetting)
		assert.Contains(t, err.Error(), "failed to build registry")
	})

	t.Run("TestModeHelp", func(t *testing.T) {
		r, err := NewBuilder().WithTestModeHelp("Run against the simulator.").WithLookup(MapLookup(nil)).Build()
		require.NoError(t, err)
		assert.Equal(t, "Run against the simulator.", r.Settings()[0].Help)
	})

	t.Run("Validators", func(t *testing.T) {
		var order []int
		r, err := NewBuilder().
			WithDeclarations(warnDecl()).
			WithLookup(MapLookup(nil)).
			WithValidator(func(*Registry) error { order = append(order, 1); return nil }).
			WithValidator(nil).
			WithValidator(func(*Registry) error { order = append(order, 2); return nil }).
			Build()
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("ValidatorFailure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewBuilder().
			WithLookup(MapLookup(nil)).
			WithValidator(func(*Registry) error { return boom }).
			Build()
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "registry validation failed")
	})

	t.Run("ResolveAllValidator", func(t *testing.T) {
		_, err := NewBuilder().
			WithEnvPrefix("APP").
			WithDeclarations(chunkDecl()).
			WithLookup(MapLookup(map[string]string{"APP_MIN_CPU_CHUNK": "abc"})).
			WithValidator(ResolveAllValidator()).
			Build()
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("Required", func(t *testing.T) {
		_, err := NewBuilder().
			WithDeclarations(warnDecl()).
			WithLookup(MapLookup(nil)).
			WithValidator(Required("warn", "max_chunk")).
			Build()
		assert.ErrorIs(t, err, ErrUnknownSetting)

		r, err := NewBuilder().
			WithDeclarations(warnDecl()).
			WithLookup(MapLookup(nil)).
			WithValidator(Required("warn")).
			Build()
		require.NoError(t, err)
		s, _ := Lookup[bool](r, "warn")
		assert.True(t, s.Resolved())
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().WithDeclarations(warnDecl(), warnDecl()).MustBuild()
		})
	})
}

func TestBuilderDotenv(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.env")
	local := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(base, []byte("APP_MIN_CPU_CHUNK=128\nAPP_WARN=yes\n"), 0o644))
	require.NoError(t, os.WriteFile(local, []byte("APP_MIN_CPU_CHUNK=256\n"), 0o644))

	t.Run("LaterFileWins", func(t *testing.T) {
		r, err := NewBuilder().
			WithEnvPrefix("APP").
			WithDeclarations(warnDecl(), chunkDecl()).
			WithLookup(MapLookup(nil)).
			WithDotenv(base, local).
			Build()
		require.NoError(t, err)

		chunk, err := Value[int](r, "min_cpu_chunk")
		require.NoError(t, err)
		assert.Equal(t, 256, chunk)

		warn, err := Value[bool](r, "warn")
		require.NoError(t, err)
		assert.True(t, warn)
	})

	t.Run("EnvironmentWins", func(t *testing.T) {
		r, err := NewBuilder().
			WithEnvPrefix("APP").
			WithDeclarations(chunkDecl()).
			WithLookup(MapLookup(map[string]string{"APP_MIN_CPU_CHUNK": "64"})).
			WithDotenv(base).
			Build()
		require.NoError(t, err)

		chunk, err := Value[int](r, "min_cpu_chunk")
		require.NoError(t, err)
		assert.Equal(t, 64, chunk)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewBuilder().
			WithLookup(MapLookup(nil)).
			WithDotenv(filepath.Join(dir, "absent.env")).
			Build()
		assert.ErrorIs(t, err, ErrDotenv)
	})

	t.Run("Discovery", func(t *testing.T) {
		opts := DotenvDiscoveryOptions{Files: []string{"base.env"}, Paths: []string{dir}}
		r, err := NewBuilder().
			WithEnvPrefix("APP").
			WithDeclarations(chunkDecl()).
			WithLookup(MapLookup(nil)).
			WithDotenvDiscovery(opts).
			WithDotenv(local).
			Build()
		require.NoError(t, err)

		chunk, err := Value[int](r, "min_cpu_chunk")
		require.NoError(t, err)
		assert.Equal(t, 256, chunk, "explicit files win over the discovered one")
	})
}

func TestBuilderLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r, err := NewBuilder().
		WithEnvPrefix("APP").
		WithDeclarations(chunkDecl(), warnDecl()).
		WithLookup(MapLookup(map[string]string{"APP_MIN_CPU_CHUNK": "abc"})).
		WithLogger(logger).
		Build()
	require.NoError(t, err)

	_, _ = r.Get("warn")
	_, _ = r.Get("warn")
	_, _ = r.Get("min_cpu_chunk")

	out := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"setting":"warn"`)), "one event per resolution")
	assert.Contains(t, out, `"component":"settings"`)
	assert.Contains(t, out, `"source":"default"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "setting resolution failed")
}

func TestNew(t *testing.T) {
	t.Setenv("NEWTEST_WARN", "1")
	r, err := New("NEWTEST", warnDecl())
	require.NoError(t, err)

	warn, err := Value[bool](r, "warn")
	require.NoError(t, err)
	assert.True(t, warn)

	assert.Panics(t, func() { MustNew("NEWTEST", warnDecl(), warnDecl()) })
}
