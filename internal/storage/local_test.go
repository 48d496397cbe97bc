package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderPutGet(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())
	ctx := context.Background()

	require.NoError(t, provider.CreateBucket(ctx, "charts"))

	content := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, provider.PutObject(ctx, "charts", "s1/chart.png", bytes.NewReader(content)))

	data, err := provider.GetObject(ctx, "charts", "s1/chart.png")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalProviderListObjects(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())
	ctx := context.Background()

	files := []string{"s1/a.png", "s1/b.png", "s2/c.png"}
	for _, f := range files {
		require.NoError(t, provider.PutObject(ctx, "charts", f, bytes.NewReader([]byte(f))))
	}

	objects, err := provider.ListObjects(ctx, "charts", "s1/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "s1/a.png", objects[0].Name)
	assert.Equal(t, "s1/b.png", objects[1].Name)
}

func TestLocalProviderListMissingBucket(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	objects, err := provider.ListObjects(context.Background(), "nothing-here", "")
	require.NoError(t, err)
	assert.Empty(t, objects)
}
