package git

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasRepo(t *testing.T) {
	dir := t.TempDir()
	c := NewClient(dir, log.New(io.Discard, "", 0))

	assert.False(t, c.HasRepo())

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	assert.True(t, c.HasRepo())
}

func TestHasRepoIgnoresPlainFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: elsewhere"), 0644))

	c := NewClient(dir, log.New(io.Discard, "", 0))
	assert.False(t, c.HasRepo())
}
