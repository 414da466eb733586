package review

import (
	"strings"

	"github.com/sakanhq/sakan-backend/pkg/models"
)

// RecordsForSlot returns every record answering the slot, matched by
// docType against the slot label (exact, whitespace-trimmed,
// case-sensitive).
func RecordsForSlot(records []models.DocumentRecord, slot models.DocumentSlot) []models.DocumentRecord {
	label := strings.TrimSpace(slot.Label)
	var docs []models.DocumentRecord
	for _, r := range records {
		if strings.TrimSpace(r.DocType) == label {
			docs = append(docs, r)
		}
	}
	return docs
}

// SlotStatus computes the aggregate review state of one slot over the
// full upload history. The flags are not mutually exclusive; see
// models.DocumentSlotStatus.
func SlotStatus(records []models.DocumentRecord, slot models.DocumentSlot) models.DocumentSlotStatus {
	docs := RecordsForSlot(records, slot)
	st := models.DocumentSlotStatus{
		Slot:        slot,
		IsEmpty:     len(docs) == 0,
		AllRejected: len(docs) > 0,
	}
	for _, d := range docs {
		switch {
		case d.Status == models.ReviewAccepted:
			st.HasAccepted = true
			st.AllRejected = false
		case d.Status == models.ReviewRejected:
			st.HasRejected = true
		default:
			if d.IsPending() {
				st.HasPendingReview = true
			}
			st.AllRejected = false
		}
	}
	return st
}

// DocForSlot picks one representative record for UIs that show a
// single document per slot. Priority is fixed: rejected, then
// accepted, then pending, then whatever came first. A rejection is
// surfaced even when a later upload was accepted, so the applicant is
// never shown a clean slate while a rejected file sits in the history.
func DocForSlot(records []models.DocumentRecord, slot models.DocumentSlot) *models.DocumentRecord {
	docs := RecordsForSlot(records, slot)
	if len(docs) == 0 {
		return nil
	}
	for _, d := range docs {
		if d.Status == models.ReviewRejected {
			d := d
			return &d
		}
	}
	for _, d := range docs {
		if d.Status == models.ReviewAccepted {
			d := d
			return &d
		}
	}
	for _, d := range docs {
		if d.IsPending() {
			d := d
			return &d
		}
	}
	first := docs[0]
	return &first
}
