package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "preamble.dev/pkg/preamble/internal/model"
)

func TestLocalTemplateStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	anchored := filepath.Join(root, "anchored")
	mustMkdir(t, anchored)
	writeTestFile(t, filepath.Join(anchored, DefaultTemplateName), "Copyright (c) Acme\n")

	// A directory named like the template does not count as an anchor.
	mustMkdir(t, filepath.Join(root, "decoy", DefaultTemplateName))

	store := NewLocalTemplateStore("")
	assert.Equal(t, DefaultTemplateName, store.Name())

	found, err := store.HasTemplateAt(ctx, m.Path(anchored))
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.HasTemplateAt(ctx, m.Path(root))
	require.NoError(t, err)
	assert.False(t, found)

	found, err = store.HasTemplateAt(ctx, m.Path(filepath.Join(root, "decoy")))
	require.NoError(t, err)
	assert.False(t, found)

	text, err := store.LoadTemplateAt(ctx, m.Path(anchored))
	require.NoError(t, err)
	assert.Equal(t, "Copyright (c) Acme\n", text)

	_, err = store.LoadTemplateFile(ctx, m.Path(filepath.Join(root, "missing")))
	assert.Error(t, err)
}

func TestLocalTemplateStore_CustomName(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "HEADER.txt"), "Licensed under MIT\n")

	store := NewLocalTemplateStore("HEADER.txt")

	found, err := store.HasTemplateAt(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.True(t, found)
}
