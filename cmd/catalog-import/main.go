package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/storage"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
	"github.com/sakanhq/sakan-backend/pkg/storage/opensearch"
)

var args struct {
	InputFile            string `arg:"positional,required" help:"JSON file with the catalog entries"`
	FsPath               string `arg:"--fs-path,env:FS_PATH"`
	OsAddr               string `arg:"--opensearch-addr,env:OPENSEARCH_ADDR"`
	OsInsecureSkipVerify bool   `arg:"--opensearch-insecure-skip-verify,env:OPENSEARCH_SKIP_TLS"`
	OsPassword           string `arg:"--opensearch-password,env:OPENSEARCH_PASSWORD"`
	OsUsername           string `arg:"--opensearch-username,env:OPENSEARCH_USERNAME"`
	StorageType          string `arg:"--storage-type,env:STORAGE_TYPE" default:"fs"`
}

var log = logrus.New()

func main() {
	arg.MustParse(&args)

	entries, err := parseCatalog(args.InputFile)
	if err != nil {
		log.Fatalf("parse catalog: %v", err)
	}

	store := getStore()
	if err := store.PutCatalog(entries); err != nil {
		log.Fatalf("store catalog: %v", err)
	}
	log.Infof("imported %d catalog entries", len(entries))
}

func parseCatalog(file string) ([]models.CatalogEntry, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries []models.CatalogEntry
	err = json.NewDecoder(f).Decode(&entries)
	return entries, err
}

func getStore() model.Store {
	switch strings.ToLower(args.StorageType) {
	case "fs":
		return storage.SetupFsStore(args.FsPath)
	case "opensearch":
		return storage.SetupOpensearchStore(opensearch.Config{
			Addr:               args.OsAddr,
			Username:           args.OsUsername,
			Password:           args.OsPassword,
			InsecureSkipVerify: args.OsInsecureSkipVerify,
		})
	}

	log.Fatalf("unknown storage type: %s", args.StorageType)
	return nil
}
