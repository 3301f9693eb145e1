package minio

// Интеграционные тесты адаптера объектного хранилища:
// — поднимают реальный MinIO через testcontainers-go;
// — проверяют чтение записанного текста, ErrNotFound на отсутствующем
//   объекте/бакете и честно пустой объект.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/minio -v -race -count=1

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-readlater/internal/config"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

const (
	rootUser     = "root"
	rootPassword = "rootpass"
	bucket       = "articles"
)

// startMinio поднимает контейнер, создаёт бакет и возвращает адаптер
// вместе с админ-клиентом для записи тестовых объектов.
func startMinio(t *testing.T) (*TextStorage, *mclient.Client) {
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

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, admin.MakeBucket(ctx, bucket, mclient.MakeBucketOptions{}))

	cfg := &config.Config{
		S3: config.S3Config{
			Endpoint:     fmt.Sprintf("http://%s:%s", host, port.Port()),
			RootUser:     rootUser,
			RootPassword: rootPassword,
		},
	}

	store, err := New(ctx, cfg)
	require.NoError(t, err)

	return store, admin
}

func putObject(t *testing.T, admin *mclient.Client, object, body string) {
	t.Helper()
	_, err := admin.PutObject(context.Background(), bucket, object,
		bytes.NewReader([]byte(body)), int64(len(body)),
		mclient.PutObjectOptions{ContentType: "text/html"})
	require.NoError(t, err)
}

// TestText_ReadsStoredObject — записанный текст возвращается как есть.
func TestText_ReadsStoredObject(t *testing.T) {
	store, admin := startMinio(t)
	putObject(t, admin, "a1", "<p>sanitized article body</p>")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text, err := store.Text(ctx, bucket, "a1")
	require.NoError(t, err)
	require.Equal(t, "<p>sanitized article body</p>", text)
}

// TestText_MissingObject — отсутствующий объект и отсутствующий бакет
// одинаково дают storage.ErrNotFound.
func TestText_MissingObject(t *testing.T) {
	store, _ := startMinio(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := store.Text(ctx, bucket, "no-such-object")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Text(ctx, "no-such-bucket", "whatever")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestText_EmptyObject — честно пустой объект не путается с отсутствующим.
func TestText_EmptyObject(t *testing.T) {
	store, admin := startMinio(t)
	putObject(t, admin, "empty", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text, err := store.Text(ctx, bucket, "empty")
	require.NoError(t, err)
	require.Empty(t, text)
}
