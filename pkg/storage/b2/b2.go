package b2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	rcloneb2 "github.com/rclone/rclone/backend/b2"
	"github.com/rclone/rclone/fs"
	"github.com/rclone/rclone/fs/config/configmap"
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/crypt"
	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
	"github.com/sakanhq/sakan-backend/pkg/storage/rclone"
)

var log = logrus.StandardLogger().WithField("package", "storage/b2")

var _ model.FileStorer = (*B2)(nil)
var _ model.FileRetriever = (*B2)(nil)

// B2 stores uploaded documents in a Backblaze B2 bucket, optionally
// encrypted at rest.
type B2 struct {
	b2fs       fs.Fs
	bucketName string
	crypt      *crypt.Crypt
}

type Config struct {
	Account    string
	Key        string
	BucketName string

	// Passphrase enables at-rest encryption when non-empty.
	Passphrase string
}

func New(config Config) (*B2, error) {
	if config.Account == "" {
		return nil, fmt.Errorf("account is required")
	}
	if config.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if config.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	if len(config.Passphrase) == 0 {
		log.Warnf("no passphrase provided, encryption will be disabled")
	}

	b2fs, err := rcloneb2.NewFs(context.Background(),
		"b2",
		config.BucketName+"/",
		configmap.Simple{
			"account":    config.Account,
			"key":        config.Key,
			"chunk_size": "5M",
		},
	)
	if err != nil {
		return nil, err
	}

	b := &B2{
		bucketName: config.BucketName,
		b2fs:       b2fs,
	}

	if len(config.Passphrase) != 0 {
		b.crypt, err = crypt.New(config.Passphrase)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *B2) StoreFile(f models.UploadedFile) (err error) {
	ctx := context.Background()

	if b.crypt != nil {
		f.Reader, err = b.crypt.Encrypt(f.Reader)
		if err != nil {
			return err
		}
	}

	fileSize, err := f.Reader.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := f.Reader.Seek(0, io.SeekStart); err != nil {
		return err
	}

	src := rclone.NewSourceFile(b.bucketName, f.Key(), f.UploadTime, fileSize)
	obj, err := b.b2fs.Put(ctx, f.Reader, src, &fs.RangeOption{Start: 0, End: fileSize})
	if err != nil {
		return err
	}
	log.Debugf("obj=%+v", obj)
	return nil
}

func (b *B2) RetrieveFile(applicationID string, documentID string) (*models.UploadedFile, error) {
	key := models.UploadedFile{ApplicationID: applicationID, DocumentID: documentID}.Key()
	obj, err := b.b2fs.NewObject(context.Background(), key)
	if err != nil {
		if errors.Is(err, fs.ErrorObjectNotFound) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}

	objReader, err := obj.Open(context.Background())
	if err != nil {
		return nil, err
	}
	defer objReader.Close()

	var reader io.ReadSeeker
	if b.crypt != nil {
		reader, err = b.crypt.Decrypt(objReader)
		if err != nil {
			return nil, err
		}
	} else {
		buffer := bytes.NewBuffer(nil)
		if _, err := io.Copy(buffer, objReader); err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buffer.Bytes())
	}

	return &models.UploadedFile{
		Reader:        reader,
		ApplicationID: applicationID,
		DocumentID:    documentID,
		UploadTime:    obj.ModTime(context.Background()),
	}, nil
}
