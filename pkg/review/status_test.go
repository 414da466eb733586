package review_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/review"
)

func record(id, docType string, status models.ReviewStatus) models.DocumentRecord {
	return models.DocumentRecord{
		ID:         id,
		DocType:    docType,
		FileName:   id + ".pdf",
		UploadedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:     status,
	}
}

var cinSlot = models.DocumentSlot{Label: "CIN copy"}

func TestSlotStatus_Empty(t *testing.T) {
	st := review.SlotStatus(nil, cinSlot)
	assert.True(t, st.IsEmpty)
	assert.False(t, st.AllRejected)
	assert.False(t, st.HasAccepted)
	assert.False(t, st.HasPendingReview)
	assert.False(t, st.HasRejected)
}

func TestSlotStatus_MissingStatusIsPending(t *testing.T) {
	records := []models.DocumentRecord{record("1", "CIN copy", "")}
	st := review.SlotStatus(records, cinSlot)
	assert.True(t, st.HasPendingReview)
	assert.False(t, st.IsEmpty)
	assert.False(t, st.AllRejected)
}

func TestSlotStatus_AllRejected(t *testing.T) {
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewRejected),
		record("2", "CIN copy", models.ReviewRejected),
	}
	st := review.SlotStatus(records, cinSlot)
	assert.True(t, st.AllRejected)
	assert.True(t, st.HasRejected)
	assert.False(t, st.HasAccepted)
}

func TestSlotStatus_MixedHistory(t *testing.T) {
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewAccepted),
		record("2", "CIN copy", models.ReviewRejected),
		record("3", "CIN copy", models.ReviewPending),
	}
	st := review.SlotStatus(records, cinSlot)
	assert.True(t, st.HasAccepted)
	assert.True(t, st.HasRejected)
	assert.True(t, st.HasPendingReview)
	assert.False(t, st.AllRejected)
	assert.False(t, st.IsEmpty)
}

func TestSlotStatus_TrimsDocTypeAndLabel(t *testing.T) {
	records := []models.DocumentRecord{record("1", "  CIN copy ", models.ReviewAccepted)}
	st := review.SlotStatus(records, models.DocumentSlot{Label: "CIN copy  "})
	assert.True(t, st.HasAccepted)
	assert.False(t, st.IsEmpty)
}

func TestSlotStatus_CaseSensitiveMatch(t *testing.T) {
	records := []models.DocumentRecord{record("1", "cin copy", models.ReviewAccepted)}
	st := review.SlotStatus(records, cinSlot)
	assert.True(t, st.IsEmpty)
}

func TestDocForSlot_Empty(t *testing.T) {
	if d := review.DocForSlot(nil, cinSlot); d != nil {
		t.Fatalf("expected nil, got %+v", d)
	}
}

func TestDocForSlot_RejectedWinsOverAccepted(t *testing.T) {
	// The rejection is surfaced even though a later upload was
	// accepted. Deliberate: bad news must not be hidden.
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewAccepted),
		record("2", "CIN copy", models.ReviewRejected),
	}
	d := review.DocForSlot(records, cinSlot)
	if d == nil {
		t.Fatal("expected a record")
	}
	assert.Equal(t, "2", d.ID)
}

func TestDocForSlot_AcceptedWinsOverPending(t *testing.T) {
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewPending),
		record("2", "CIN copy", models.ReviewAccepted),
	}
	d := review.DocForSlot(records, cinSlot)
	assert.Equal(t, "2", d.ID)
}

func TestDocForSlot_FallsBackToFirst(t *testing.T) {
	records := []models.DocumentRecord{
		record("1", "CIN copy", "superseded"),
		record("2", "CIN copy", "superseded"),
	}
	d := review.DocForSlot(records, cinSlot)
	assert.Equal(t, "1", d.ID)
}

func TestSlotStatus_Idempotent(t *testing.T) {
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewAccepted),
		record("2", "CIN copy", models.ReviewRejected),
	}
	first := review.SlotStatus(records, cinSlot)
	second := review.SlotStatus(records, cinSlot)
	assert.Equal(t, first, second)

	d1 := review.DocForSlot(records, cinSlot)
	d2 := review.DocForSlot(records, cinSlot)
	assert.Equal(t, d1, d2)
}
