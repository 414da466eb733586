package main

import (
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	backend "github.com/sakanhq/sakan-backend"
	"github.com/sakanhq/sakan-backend/pkg/cli"
	"github.com/sakanhq/sakan-backend/pkg/logutils"
	"github.com/sakanhq/sakan-backend/pkg/storage"
	"github.com/sakanhq/sakan-backend/pkg/storage/b2"
	"github.com/sakanhq/sakan-backend/pkg/storage/fs"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
	"github.com/sakanhq/sakan-backend/pkg/storage/opensearch"
)

var args struct {
	B2AccountId          string `arg:"--b2-account-id,env:B2_ACCOUNT" help:"Account for B2 storage - when using the b2 files storage"`
	B2AccountKey         string `arg:"--b2-account-key,env:B2_KEY" help:"Key for B2 storage - when using the b2 files storage"`
	B2BucketName         string `arg:"--b2-bucket-name,env:B2_BUCKET_NAME" help:"Bucket Name for B2 storage - when using the b2 files storage"`
	B2Passphrase         string `arg:"env:B2_PASSPHRASE" help:"Passphrase for at-rest encryption (optional) - when using the b2 files storage"`
	FilesType            string `arg:"--files-type,env:FILES_TYPE" default:"fs" help:"Where uploaded blobs are kept: fs or b2"`
	FsPath               string `arg:"--fs-path,env:FS_PATH" help:"Path to the directory where applications and files are stored - when using the fs storage"`
	ListenAddr           string `arg:"-L,--listen-addr" default:"127.0.0.1:8085"`
	LogLevel             string `arg:"--log-level,env:LOG_LEVEL" default:"info"`
	OsAddr               string `arg:"--opensearch-addr,env:OPENSEARCH_ADDR"`
	OsApplicationsIndex  string `arg:"--opensearch-applications-index,env:OPENSEARCH_APPLICATIONS_INDEX" default:"applications"`
	OsCatalogIndex       string `arg:"--opensearch-catalog-index,env:OPENSEARCH_CATALOG_INDEX" default:"catalog"`
	OsInsecureSkipVerify bool   `arg:"--opensearch-insecure-skip-verify,env:OPENSEARCH_SKIP_TLS"`
	OsPassword           string `arg:"--opensearch-password,env:OPENSEARCH_PASSWORD"`
	OsUsername           string `arg:"--opensearch-username,env:OPENSEARCH_USERNAME"`
	StorageType          string `arg:"--storage-type,env:STORAGE_TYPE,required" help:"Type of application storage to use: fs or opensearch"`
}

var log = logrus.StandardLogger()

func main() {
	arg.MustParse(&args)
	if err := cli.FillKeychainValues(&args); err != nil {
		log.Fatalf("fill keychain values: %v", err)
	}
	logutils.SetLoggerLevel(args.LogLevel)

	store, files := setupStorage()
	s, err := backend.New(store, files)
	if err != nil {
		log.Fatalf("create backend: %v", err)
	}

	if err := s.Run(args.ListenAddr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func setupStorage() (model.Store, model.FileStorage) {
	var store model.Store
	var fsStore *fs.Fs

	switch strings.ToLower(args.StorageType) {
	case "fs":
		fsStore = storage.SetupFsStore(args.FsPath)
		store = fsStore
	case "opensearch":
		store = storage.SetupOpensearchStore(opensearch.Config{
			Addr:               args.OsAddr,
			Username:           args.OsUsername,
			Password:           args.OsPassword,
			InsecureSkipVerify: args.OsInsecureSkipVerify,
			ApplicationsIndex:  args.OsApplicationsIndex,
			CatalogIndex:       args.OsCatalogIndex,
		})
	default:
		log.Fatalf("unknown storage type: %s", args.StorageType)
	}

	switch strings.ToLower(args.FilesType) {
	case "fs":
		if fsStore == nil {
			fsStore = storage.SetupFsStore(args.FsPath)
		}
		return store, fsStore
	case "b2":
		return store, storage.SetupB2Files(b2.Config{
			Account:    args.B2AccountId,
			Key:        args.B2AccountKey,
			BucketName: args.B2BucketName,
			Passphrase: args.B2Passphrase,
		})
	}

	log.Fatalf("unknown files type: %s", args.FilesType)
	return nil, nil
}
