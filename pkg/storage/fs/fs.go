package fs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
)

var log = logrus.StandardLogger().WithField("package", "storage/fs")

// Fs keeps everything under one directory: applications as JSON
// snapshots, the catalog as a single JSON file and uploaded blobs as
// plain files. Snapshot writes replace the whole file.
type Fs struct {
	dir string
}

var _ model.Store = (*Fs)(nil)
var _ model.FileStorage = (*Fs)(nil)

func New(dir string) (*Fs, error) {
	for _, d := range []string{dir, path.Join(dir, "applications"), path.Join(dir, "files")} {
		_, err := os.Stat(d)
		if os.IsNotExist(err) {
			if err := os.MkdirAll(d, 0755); err != nil {
				return nil, fmt.Errorf("create storage directory: %w", err)
			}
		}
	}
	return &Fs{dir: dir}, nil
}

func (f *Fs) applicationPath(id string) string {
	return path.Join(f.dir, "applications", id+".json")
}

func (f *Fs) catalogPath() string {
	return path.Join(f.dir, "catalog.json")
}

func (f *Fs) filePath(appID string, docID string) string {
	return path.Join(f.dir, "files", appID, docID)
}

func (f *Fs) GetApplication(id string) (*models.Application, error) {
	file, err := os.Open(f.applicationPath(id))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var app models.Application
	if err := json.NewDecoder(file).Decode(&app); err != nil {
		return nil, fmt.Errorf("decode application %s: %w", id, err)
	}
	return &app, nil
}

func (f *Fs) PutApplication(app models.Application) error {
	if app.ID == "" {
		return fmt.Errorf("application id is required")
	}
	file, err := os.Create(f.applicationPath(app.ID))
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(app); err != nil {
		return fmt.Errorf("encode application %s: %w", app.ID, err)
	}
	log.Debugf("wrote application snapshot %s", app.ID)
	return nil
}

func (f *Fs) Catalog() ([]models.CatalogEntry, error) {
	file, err := os.Open(f.catalogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	var entries []models.CatalogEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortKey < entries[j].SortKey
	})
	return entries, nil
}

func (f *Fs) PutCatalog(entries []models.CatalogEntry) error {
	file, err := os.Create(f.catalogPath())
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func (f *Fs) StoreFile(uf models.UploadedFile) error {
	dir := path.Join(f.dir, "files", uf.ApplicationID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(f.filePath(uf.ApplicationID, uf.DocumentID))
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := io.Copy(file, uf.Reader); err != nil {
		return err
	}
	if _, err := uf.Reader.Seek(0, io.SeekStart); err != nil {
		return err
	}
	log.Debugf("stored file %s", uf.Key())
	return nil
}

func (f *Fs) RetrieveFile(applicationID string, documentID string) (*models.UploadedFile, error) {
	file, err := os.Open(f.filePath(applicationID, documentID))
	if err != nil {
		return nil, err
	}
	return &models.UploadedFile{
		Reader:        file,
		ApplicationID: applicationID,
		DocumentID:    documentID,
	}, nil
}
