package models

import "time"

// ApplicationStatus is free text in the store; these are the values the
// portal writes.
type ApplicationStatus string

const (
	ApplicationPending            ApplicationStatus = "pending"
	ApplicationInProgress         ApplicationStatus = "in_progress"
	ApplicationDocumentsRequested ApplicationStatus = "documents_requested"
	ApplicationApproved           ApplicationStatus = "approved"
	ApplicationRejected           ApplicationStatus = "rejected"
)

// Application is one housing application snapshot as stored. Documents
// carries the full upload history; AdminMessage is the administrator's
// free-text request field.
type Application struct {
	ID           string            `json:"id"`
	NationalID   string            `json:"nationalId,omitempty"`
	FullName     string            `json:"fullName,omitempty"`
	Status       ApplicationStatus `json:"status"`
	AdminMessage string            `json:"adminMessage,omitempty"`
	Documents    []DocumentRecord  `json:"documents"`
	CreatedAt    time.Time         `json:"createdAt,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt,omitempty"`
}

// CatalogEntry is one standard required document type, maintained by an
// administrator and ordered by SortKey.
type CatalogEntry struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	SortKey int    `json:"sortKey"`
}
