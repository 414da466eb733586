package models

import (
	"fmt"
	"io"
	"time"
)

// UploadedFile is the blob behind one DocumentRecord, addressed by
// application id and document id.
type UploadedFile struct {
	Reader        io.ReadSeeker
	ApplicationID string
	DocumentID    string
	UploadTime    time.Time
}

func (f UploadedFile) Key() string {
	return fmt.Sprintf("%s/%s", f.ApplicationID, f.DocumentID)
}
