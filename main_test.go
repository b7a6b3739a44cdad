package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fstabkv/datastruct/dict"
)

func TestRewriteFstabToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fstab")
	out := filepath.Join(dir, "fstab.out")
	content := "# comment\nUUID=abc / ext4 defaults 1 1\n"
	assert.NoError(t, os.WriteFile(in, []byte(content), 0o644))

	oldIn, oldOut := inputPath, outputPath
	inputPath, outputPath = in, out
	defer func() { inputPath, outputPath = oldIn, oldOut }()

	d := dict.NewSimpleDict()
	assert.NoError(t, d.Put("abc", "sda3"))
	assert.NoError(t, rewriteFstab(d))

	got, err := os.ReadFile(out)
	assert.NoError(t, err)
	lines := strings.Split(string(got), "\n")
	assert.Equal(t, "# comment", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "#/dev/sda3"), lines[1])
}

func TestRewriteFstabBadOutputDir(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fstab")
	assert.NoError(t, os.WriteFile(in, []byte("x\n"), 0o644))

	oldIn, oldOut := inputPath, outputPath
	inputPath, outputPath = in, filepath.Join(dir, "missing", "out")
	defer func() { inputPath, outputPath = oldIn, oldOut }()

	assert.Error(t, rewriteFstab(dict.NewSimpleDict()))
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fstab")
	assert.NoError(t, os.WriteFile(in, []byte("x\n"), 0o644))

	assert.NoError(t, validatePaths(in, filepath.Join(dir, "out")))
	assert.Error(t, validatePaths(in, "/etc/fstab"))
	assert.Error(t, validatePaths(in, in))
	assert.Error(t, validatePaths(filepath.Join(dir, "missing"), ""))
	assert.Error(t, validatePaths(dir, ""))
}
