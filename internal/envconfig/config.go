// config.go - Environment-basierte Konfiguration fuer manta
//
// Folgt dem Teacher-Muster eines package-level Funktionssatzes, der
// jede Umgebungsvariable einzeln liest statt sie in eine Struct zu
// parsen: Var() liest und trimmt, die einzelnen Getter tragen ihren
// Default selbst.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Var returns the trimmed value of an environment variable, with
// surrounding quotes stripped.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Threads returns the configured worker count (MANTA_THREADS).
// Default: runtime.NumCPU().
func Threads() int {
	if s := Var("MANTA_THREADS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
		slog.Warn("invalid MANTA_THREADS, using default", "value", s)
	}
	return runtime.NumCPU()
}

// Multithreaded reports whether workers run concurrently
// (MANTA_MULTITHREADED). Default: true.
func Multithreaded() bool {
	if s := Var("MANTA_MULTITHREADED"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return true
}

// DirectLightSampling reports whether the path integrator samples
// lights directly (MANTA_DIRECT_LIGHT_SAMPLING) vs. pure BSDF-sampled
// path tracing. Default: true.
func DirectLightSampling() bool {
	if s := Var("MANTA_DIRECT_LIGHT_SAMPLING"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return true
}

// SamplesPerPixel returns the per-pixel sample count (MANTA_SPP).
// Default: 32.
func SamplesPerPixel() int {
	if s := Var("MANTA_SPP"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
		slog.Warn("invalid MANTA_SPP, using default", "value", s)
	}
	return 32
}

// MaxDepth returns the maximum non-transmissive bounce depth
// (MANTA_MAX_DEPTH). Default: 4.
func MaxDepth() int {
	if s := Var("MANTA_MAX_DEPTH"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
		slog.Warn("invalid MANTA_MAX_DEPTH, using default", "value", s)
	}
	return 4
}

// TileSize returns the scheduler's square tile edge length
// (MANTA_TILE_SIZE). Default: 64.
func TileSize() int {
	if s := Var("MANTA_TILE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
		slog.Warn("invalid MANTA_TILE_SIZE, using default", "value", s)
	}
	return 64
}

// RenderPattern returns the configured tile ordering
// (MANTA_RENDER_PATTERN): "spiral" or "row-major". Default: "spiral".
func RenderPattern() string {
	if s := Var("MANTA_RENDER_PATTERN"); s != "" {
		return s
	}
	return "spiral"
}

// DeterministicSeed returns the worker RNG base seed
// (MANTA_DETERMINISTIC_SEED) and whether it was set at all. When
// unset, the caller should derive per-run entropy instead.
func DeterministicSeed() (seed uint64, ok bool) {
	s := Var("MANTA_DETERMINISTIC_SEED")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		slog.Warn("invalid MANTA_DETERMINISTIC_SEED, ignoring", "value", s)
		return 0, false
	}
	return n, true
}

func deterministicSeedValue() any {
	if seed, ok := DeterministicSeed(); ok {
		return seed
	}
	return "unset"
}

// JPEGQuality returns the JPEG encoder quality 1..100
// (MANTA_JPEG_QUALITY). Default: 90.
func JPEGQuality() int {
	if s := Var("MANTA_JPEG_QUALITY"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 100 {
			return n
		}
		slog.Warn("invalid MANTA_JPEG_QUALITY, using default", "value", s)
	}
	return 90
}

// LogLevel returns the configured slog level (MANTA_DEBUG).
// Default: slog.LevelInfo.
func LogLevel() slog.Level {
	if b, err := strconv.ParseBool(Var("MANTA_DEBUG")); err == nil && b {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// EnvVar mirrors an environment variable's current value and purpose,
// for `manta render --help`-style introspection.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every recognized MANTA_* variable with its current
// value and a human-readable description.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"MANTA_THREADS":               {"MANTA_THREADS", Threads(), "Worker count (default: NumCPU)"},
		"MANTA_MULTITHREADED":         {"MANTA_MULTITHREADED", Multithreaded(), "Run workers concurrently (default: true)"},
		"MANTA_DIRECT_LIGHT_SAMPLING": {"MANTA_DIRECT_LIGHT_SAMPLING", DirectLightSampling(), "Sample lights directly during path tracing (default: true)"},
		"MANTA_SPP":                   {"MANTA_SPP", SamplesPerPixel(), "Samples per pixel (default: 32)"},
		"MANTA_MAX_DEPTH":             {"MANTA_MAX_DEPTH", MaxDepth(), "Maximum non-transmissive bounce depth (default: 4)"},
		"MANTA_TILE_SIZE":             {"MANTA_TILE_SIZE", TileSize(), "Scheduler tile edge length in pixels (default: 64)"},
		"MANTA_RENDER_PATTERN":        {"MANTA_RENDER_PATTERN", RenderPattern(), "Tile ordering: spiral or row-major (default: spiral)"},
		"MANTA_JPEG_QUALITY":          {"MANTA_JPEG_QUALITY", JPEGQuality(), "JPEG encoder quality 1..100 (default: 90)"},
		"MANTA_DEBUG":                 {"MANTA_DEBUG", LogLevel(), "Enable debug logging"},
		"MANTA_DETERMINISTIC_SEED":    {"MANTA_DETERMINISTIC_SEED", deterministicSeedValue(), "Worker RNG base seed; unset means non-reproducible"},
	}
}

// Values returns every recognized MANTA_* variable's current value as
// a string.
func Values() map[string]string {
	vals := make(map[string]string, 8)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
