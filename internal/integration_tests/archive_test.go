package integrationtests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"stock-analysis-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3ProviderArchivesChartImages(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	endpoint := setupMinioContainer(t, ctx)

	provider, err := storage.NewS3Provider(&storage.S3ProviderConfig{
		S3EndpointURL:     endpoint,
		S3AccessKeyID:     minioUsername,
		S3SecretAccessKey: minioPassword,
		S3Region:          "us-east-1",
	})
	require.NoError(t, err)

	require.NoError(t, provider.CreateBucket(ctx, "chart-uploads"))
	// creating an existing bucket is a no-op
	require.NoError(t, provider.CreateBucket(ctx, "chart-uploads"))

	content := []byte{0x89, 'P', 'N', 'G', 0xd, 0xa}
	require.NoError(t, provider.PutObject(ctx, "chart-uploads", "s1/chart.png", bytes.NewReader(content)))

	data, err := provider.GetObject(ctx, "chart-uploads", "s1/chart.png")
	require.NoError(t, err)
	assert.Equal(t, content, data)

	objects, err := provider.ListObjects(ctx, "chart-uploads", "s1/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "s1/chart.png", objects[0].Name)
	assert.Equal(t, int64(len(content)), objects[0].Size)
}
