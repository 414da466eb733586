package models

import (
	"time"
)

// ReviewStatus is the review state of a single uploaded document.
//
// Transitions: a record is created as pending_review; an administrator
// decision moves it to accepted or rejected. A resubmission does not
// touch the old record, it appends a fresh pending_review one.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending_review"
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
)

// DocumentRecord is one uploaded file attached to an application.
// Records are append-only: a new upload for the same document type
// never replaces earlier records, the whole history is retained.
type DocumentRecord struct {
	ID              string       `json:"id"`
	DocType         string       `json:"docType"`
	FileName        string       `json:"fileName,omitempty"`
	URL             string       `json:"url,omitempty"`
	UploadedAt      time.Time    `json:"uploadedAt"`
	Status          ReviewStatus `json:"status,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
}

// EffectiveStatus resolves the legacy case of records written before
// the status field existed: a missing status means pending_review.
func (r DocumentRecord) EffectiveStatus() ReviewStatus {
	if r.Status == "" {
		return ReviewPending
	}
	return r.Status
}

func (r DocumentRecord) IsPending() bool {
	return r.Status == "" || r.Status == ReviewPending
}
