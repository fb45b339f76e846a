package s3store

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/config"
)

func isolateAWSEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_SESSION_TOKEN", "")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

func testStore(t *testing.T) *Store {
	t.Helper()
	isolateAWSEnv(t)

	s, err := New(context.Background(), &config.Config{
		S3Bucket:       "vet-test",
		S3Region:       "us-east-1",
		S3Endpoint:     "http://localhost:9000",
		S3AccessKey:    "minio",
		S3SecretKey:    "minio-secret",
		S3UsePathStyle: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestPresignPut(t *testing.T) {
	s := testStore(t)

	req, err := s.PresignPut(context.Background(), "users/1/customers/2/pets/3/a.png", "image/png", 15*time.Minute)
	if err != nil {
		t.Fatalf("PresignPut: %v", err)
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if u.Host != "localhost:9000" || !strings.HasPrefix(u.Path, "/vet-test/users/1/") {
		t.Fatalf("url = %s", req.URL)
	}
	if u.Query().Get("X-Amz-Expires") != "900" {
		t.Fatalf("expires = %q", u.Query().Get("X-Amz-Expires"))
	}
	if req.Method != "PUT" || req.Headers["Content-Type"] != "image/png" {
		t.Fatalf("req = %+v", req)
	}
}

func TestPresignGet(t *testing.T) {
	s := testStore(t)

	req, err := s.PresignGet(context.Background(), "users/1/customers/2/pets/3/a.png", time.Hour)
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	if !strings.Contains(req.URL, "X-Amz-Signature=") || req.Method != "GET" {
		t.Fatalf("req = %+v", req)
	}
}

func TestPresignPut_DefaultCredentialChain(t *testing.T) {
	isolateAWSEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDENV")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")

	s, err := New(context.Background(), &config.Config{
		S3Bucket:       "vet-test",
		S3Region:       "eu-west-1",
		S3Endpoint:     "http://localhost:9000",
		S3UsePathStyle: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, err := s.PresignPut(context.Background(), "users/1/customers/2/pets/3/a.jpg", "image/jpeg", 15*time.Minute)
	if err != nil {
		t.Fatalf("PresignPut: %v", err)
	}

	u, _ := url.Parse(req.URL)
	if cred := u.Query().Get("X-Amz-Credential"); !strings.HasPrefix(cred, "AKIDENV/") || !strings.Contains(cred, "/eu-west-1/s3/") {
		t.Fatalf("X-Amz-Credential = %q", cred)
	}
}
