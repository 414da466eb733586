package models

// DocumentSlot is one requirement the applicant must fulfil. Label is
// the join key against DocumentRecord.DocType (exact match after
// trimming whitespace, case-sensitive). Slots are recomputed on every
// read, never persisted.
type DocumentSlot struct {
	Label   string `json:"label"`
	IsExtra bool   `json:"isExtra"`
}

// DocumentSlotStatus aggregates the review state of all records
// matching one slot. The flags are deliberately not mutually
// exclusive: a slot can hold an accepted record and a rejected
// resubmission at the same time.
type DocumentSlotStatus struct {
	Slot             DocumentSlot `json:"slot"`
	HasAccepted      bool         `json:"hasAccepted"`
	HasPendingReview bool         `json:"hasPendingReview"`
	HasRejected      bool         `json:"hasRejected"`
	AllRejected      bool         `json:"allRejected"`
	IsEmpty          bool         `json:"isEmpty"`
}
