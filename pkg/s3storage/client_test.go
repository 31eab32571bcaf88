package s3storage

import (
	"testing"

	"github.com/landdoc/landdoc-ai/pkg/config"
)

func TestIsImageKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"scans/lot42/page1.jpg", true},
		{"scans/lot42/page1.JPEG", true},
		{"scans/page.png", true},
		{"scans/page.webp", true},
		{"scans/page.analysis.json", false},
		{"scans/manifest.yaml", false},
		{"scans/lot42/", false},
	}

	for _, tt := range tests {
		if got := isImageKey(tt.key); got != tt.want {
			t.Errorf("isImageKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// TestNew: конструктор валидирует endpoint без сетевых вызовов.
func TestNew(t *testing.T) {
	client, err := New(config.S3Config{
		Endpoint:  "minio.example.com:9000",
		Bucket:    "land-certificates",
		AccessKey: "test",
		SecretKey: "test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.bucket != "land-certificates" {
		t.Errorf("unexpected bucket %s", client.bucket)
	}
}
