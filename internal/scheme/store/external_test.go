package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gogotex/schemes/internal/database"
	"github.com/stretchr/testify/require"
)

// These tests talk to real services and only run when they are configured.

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	col := client.Database("schemes_test").Collection("schemes_" + time.Now().Format("20060102T150405.000000000"))
	defer col.Drop(ctx)
	exercise(t, NewMongoStore(col, ""))
}

func TestMinIOStore(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	s, err := NewMinIOStore(context.Background(), MinIOOptions{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    "schemes-test",
	}, "schemes_"+time.Now().Format("20060102T150405.000000000"))
	require.NoError(t, err)
	exercise(t, s)
}

func TestNewMinIOStoreRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStore(context.Background(), MinIOOptions{}, "")
	require.Error(t, err)
}
