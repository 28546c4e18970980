package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета minio:
// — поднимают реальный MinIO через testcontainers-go;
// — создают бакет для медиа и кладут в него объект;
// — проверяют:
//    New: успешное подключение и ошибку при отсутствии бакета;
//    PresignGet: ссылка действительно отдаёт объект, пустой ключ — ErrNotFound.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/minio -v -race -count=1

const (
	rootUser     = "root"
	rootPassword = "rootpass"
	bucket       = "media"
)

func startMinio(t *testing.T) (config.S3Config, *mclient.Client) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image: "docker.io/minio/minio:latest",
		Env: map[string]string{
			"MINIO_ROOT_USER":     rootUser,
			"MINIO_ROOT_PASSWORD": rootPassword,
		},
		Cmd:          []string{"server", "/data"},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "9000/tcp")

	admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: false,
	})
	require.NoError(t, err)

	cfg := config.S3Config{
		Endpoint:   fmt.Sprintf("http://%s:%s", host, port.Port()),
		AccessKey:  rootUser,
		SecretKey:  rootPassword,
		Bucket:     bucket,
		Region:     "us-east-1",
		PresignTTL: 10 * time.Minute,
	}
	return cfg, admin
}

func TestIntegration_New_MissingBucket(t *testing.T) {
	cfg, _ := startMinio(t)

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestIntegration_PresignGet(t *testing.T) {
	cfg, admin := startMinio(t)
	ctx := context.Background()

	require.NoError(t, admin.MakeBucket(ctx, bucket, mclient.MakeBucketOptions{Region: cfg.Region}))
	payload := []byte("fake mp4")
	_, err := admin.PutObject(ctx, bucket, "videos/1.mp4", bytes.NewReader(payload), int64(len(payload)),
		mclient.PutObjectOptions{ContentType: "video/mp4"})
	require.NoError(t, err)

	st, err := New(ctx, cfg)
	require.NoError(t, err)

	link, err := st.PresignGet(ctx, "/videos/1.mp4")
	require.NoError(t, err)
	require.Contains(t, link, "X-Amz-Signature")

	resp, err := http.Get(link)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, payload, body)

	_, err = st.PresignGet(ctx, "")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
