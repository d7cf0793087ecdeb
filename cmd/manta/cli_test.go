package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommandWritesOutputFiles(t *testing.T) {
	dir := t.TempDir()
	fpmPath := filepath.Join(dir, "out.fpm")
	jpegPath := filepath.Join(dir, "out.jpg")

	root := newRootCmd()
	root.SetArgs([]string{
		"render",
		"--width", "8", "--height", "8", "--spp", "1",
		"--fpm", fpmPath, "--jpeg", jpegPath,
	})
	var stdout bytes.Buffer
	root.SetOut(&stdout)

	require.NoError(t, root.Execute())

	_, err := os.Stat(fpmPath)
	assert.NoError(t, err)
	_, err = os.Stat(jpegPath)
	assert.NoError(t, err)
}

func TestBenchKDTreeCommandPrintsTable(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"bench", "kdtree"})
	var stdout bytes.Buffer
	root.SetOut(&stdout)

	require.NoError(t, root.Execute())
	assert.NotEmpty(t, stdout.String())
}

func TestConvertFPMRoundTripsToJPEG(t *testing.T) {
	dir := t.TempDir()
	fpmPath := filepath.Join(dir, "out.fpm")
	jpegPath := filepath.Join(dir, "out.jpg")

	root := newRootCmd()
	root.SetArgs([]string{"render", "--width", "4", "--height", "4", "--spp", "1", "--fpm", fpmPath, "--jpeg", ""})
	require.NoError(t, root.Execute())

	root2 := newRootCmd()
	root2.SetArgs([]string{"convert", "fpm", fpmPath, "--out", jpegPath})
	require.NoError(t, root2.Execute())

	_, err := os.Stat(jpegPath)
	assert.NoError(t, err)
}
