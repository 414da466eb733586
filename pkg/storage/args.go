package storage

import (
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/storage/b2"
	"github.com/sakanhq/sakan-backend/pkg/storage/fs"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
	"github.com/sakanhq/sakan-backend/pkg/storage/opensearch"
)

var log = logrus.StandardLogger().WithField("package", "storage")

func SetupFsStore(path string) *fs.Fs {
	store, err := fs.New(path)
	if err != nil {
		log.Fatalf("unable to create fs storage: %v", err)
	}
	return store
}

func SetupOpensearchStore(cfg opensearch.Config) model.Store {
	store, err := opensearch.New(cfg)
	if err != nil {
		log.Fatalf("unable to create opensearch storage: %v", err)
	}
	return store
}

func SetupB2Files(cfg b2.Config) model.FileStorage {
	files, err := b2.New(cfg)
	if err != nil {
		log.Fatalf("unable to create b2 storage: %v", err)
	}
	return files
}
