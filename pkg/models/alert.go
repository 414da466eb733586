package models

type AlertType string

const (
	AlertMissing      AlertType = "missing"
	AlertRejected     AlertType = "rejected"
	AlertRejectedInfo AlertType = "rejected_info"
	AlertAdminRequest AlertType = "admin_request"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// AlertInfo is a derived, display-only notice about an application's
// document state. It is never persisted.
type AlertInfo struct {
	Type          AlertType      `json:"type"`
	Severity      AlertSeverity  `json:"severity"`
	Slots         []DocumentSlot `json:"slots,omitempty"`
	Message       string         `json:"message,omitempty"`
	ApplicationID string         `json:"applicationId,omitempty"`
}

// NeedsAction reports whether a UI should surface this alert as
// actionable rather than informational.
func (a AlertInfo) NeedsAction() bool {
	return a.Severity == SeverityCritical || a.Severity == SeverityWarning
}
