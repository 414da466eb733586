package b2_test

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/storage/b2"
)

func TestMain(m *testing.M) {
	logrus.StandardLogger().SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

var testPassphrase = "my key"

func newB2(t *testing.T, passphrase string) *b2.B2 {
	if os.Getenv("E2E_TEST") != "true" {
		t.Skip("skipping test; E2E_TEST is not set")
	}
	s, err := b2.New(b2.Config{
		Account:    os.Getenv("B2_ACCOUNT"),
		Key:        os.Getenv("B2_KEY"),
		BucketName: os.Getenv("B2_BUCKET_NAME"),
		Passphrase: passphrase,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestB2_StoreFile(t *testing.T) {
	s := newB2(t, "")
	err := s.StoreFile(models.UploadedFile{
		Reader:        bytes.NewReader([]byte("hello world")),
		ApplicationID: "test-app",
		DocumentID:    "test-doc",
		UploadTime:    time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestB2_StoreFileEncrypted(t *testing.T) {
	s := newB2(t, testPassphrase)
	err := s.StoreFile(models.UploadedFile{
		Reader:        bytes.NewReader([]byte("hello world")),
		ApplicationID: "test-app",
		DocumentID:    "test-doc-encrypted",
		UploadTime:    time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestB2_RetrieveFileEncrypted(t *testing.T) {
	s := newB2(t, testPassphrase)
	f, err := s.RetrieveFile("test-app", "test-doc-encrypted")
	if err != nil {
		t.Fatal(err)
	}
	content, err := io.ReadAll(f.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "hello world" {
		t.Fatalf("unexpected content: %q", content)
	}
}
