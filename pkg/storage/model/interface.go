package model

import "github.com/sakanhq/sakan-backend/pkg/models"

// ApplicationStore persists application snapshots. Writes replace the
// whole snapshot (documents array included) and are last-write-wins:
// two concurrent writers can silently drop each other's change, so
// callers must serialize writes themselves. Not-found is reported as
// os.ErrNotExist.
type ApplicationStore interface {
	GetApplication(id string) (*models.Application, error)
	PutApplication(app models.Application) error
}

// CatalogStore returns the standard required document types, ordered
// by their administrator-assigned sort key.
type CatalogStore interface {
	Catalog() ([]models.CatalogEntry, error)
	PutCatalog(entries []models.CatalogEntry) error
}

type Store interface {
	ApplicationStore
	CatalogStore
}

// FileStorer stores the blob behind one document record.
type FileStorer interface {
	StoreFile(f models.UploadedFile) error
}

// FileRetriever fetches a previously stored blob; os.ErrNotExist when
// the key is unknown.
type FileRetriever interface {
	RetrieveFile(applicationID string, documentID string) (*models.UploadedFile, error)
}

type FileStorage interface {
	FileStorer
	FileRetriever
}
