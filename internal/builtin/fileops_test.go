package builtin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMkdirCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub")

	_, err := mkdir([]string{"mkdir", target})
	require.NoError(t, err)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestMkdirExistingPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := mkdir([]string{"mkdir", dir})
	require.Error(t, err)
}

func TestTouchCreatesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "new.txt")

	_, err := touch([]string{"touch", target})
	require.NoError(t, err)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.Zero(t, fi.Size())
}

func TestTouchUpdatesExistingFileTime(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(target, old, old))

	_, err := touch([]string{"touch", target})
	require.NoError(t, err)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.ModTime().After(old))
}

func TestRmRemovesFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	_, err := rm([]string{"rm", target})
	require.NoError(t, err)

	_, statErr := os.Stat(target)
	require.True(t, os.IsNotExist(statErr))
}

func TestRmRefusesDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := rm([]string{"rm", dir})
	require.Error(t, err)
}

func TestCpCopiesSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	_, err := cp([]string{"cp", src, dst})
	require.NoError(t, err)

	contents, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}

func TestCpMultipleSourcesRequireDirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	_, err := cp([]string{"cp", a, b, filepath.Join(dir, "notadir")})
	require.Error(t, err)
}

func TestMvRenamesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hi"), 0o644))

	_, err := mv([]string{"mv", src, dst})
	require.NoError(t, err)

	_, statErr := os.Stat(src)
	require.True(t, os.IsNotExist(statErr))

	contents, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hi", string(contents))
}

func TestMvIntoExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	subdir := filepath.Join(dir, "sub")
	require.NoError(t, os.WriteFile(src, []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(subdir, 0o755))

	_, err := mv([]string{"mv", src, subdir})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(subdir, "src.txt"))
	require.NoError(t, err)
	require.Equal(t, "hi", string(contents))
}
