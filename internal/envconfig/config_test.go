package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadsDefaultsToNumCPUWhenUnset(t *testing.T) {
	t.Setenv("MANTA_THREADS", "")
	assert.Greater(t, Threads(), 0)
}

func TestThreadsHonorsExplicitValue(t *testing.T) {
	t.Setenv("MANTA_THREADS", "3")
	assert.Equal(t, 3, Threads())
}

func TestThreadsRejectsNonPositiveValue(t *testing.T) {
	t.Setenv("MANTA_THREADS", "0")
	assert.Greater(t, Threads(), 0)
}

func TestDeterministicSeedUnsetReportsNotOk(t *testing.T) {
	t.Setenv("MANTA_DETERMINISTIC_SEED", "")
	_, ok := DeterministicSeed()
	assert.False(t, ok)
}

func TestDeterministicSeedParsesValue(t *testing.T) {
	t.Setenv("MANTA_DETERMINISTIC_SEED", "42")
	seed, ok := DeterministicSeed()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), seed)
}

func TestJPEGQualityClampsInvalidToDefault(t *testing.T) {
	t.Setenv("MANTA_JPEG_QUALITY", "150")
	assert.Equal(t, 90, JPEGQuality())
}

func TestRenderPatternDefaultsToSpiral(t *testing.T) {
	t.Setenv("MANTA_RENDER_PATTERN", "")
	assert.Equal(t, "spiral", RenderPattern())
}

func TestAsMapIncludesAllRecognizedKeys(t *testing.T) {
	m := AsMap()
	for _, key := range []string{
		"MANTA_THREADS", "MANTA_MULTITHREADED", "MANTA_DIRECT_LIGHT_SAMPLING",
		"MANTA_SPP", "MANTA_MAX_DEPTH", "MANTA_TILE_SIZE", "MANTA_RENDER_PATTERN",
		"MANTA_JPEG_QUALITY", "MANTA_DEBUG", "MANTA_DETERMINISTIC_SEED",
	} {
		_, ok := m[key]
		assert.True(t, ok, "missing key %s", key)
	}
}
