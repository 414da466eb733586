package review

import (
	"github.com/sakanhq/sakan-backend/pkg/models"
)

// CalculateAlerts derives the applicant-facing notices for one
// application snapshot. The emission order is fixed (missing,
// rejected, rejected_info, admin_request); severity is carried on the
// alert itself, not implied by position.
//
// All inputs are defensive: nil records, empty slots or an empty
// message simply produce no alerts for the corresponding category.
func CalculateAlerts(records []models.DocumentRecord, slots []models.DocumentSlot, adminMessage string, appStatus models.ApplicationStatus, appID string) []models.AlertInfo {
	var missing, rejected, mixed []models.DocumentSlot
	for _, slot := range slots {
		st := SlotStatus(records, slot)
		if st.IsEmpty {
			missing = append(missing, slot)
			continue
		}
		if st.AllRejected {
			rejected = append(rejected, slot)
		}
		if st.HasRejected && st.HasAccepted {
			mixed = append(mixed, slot)
		}
	}

	var alerts []models.AlertInfo
	if len(missing) > 0 {
		alerts = append(alerts, models.AlertInfo{
			Type:          models.AlertMissing,
			Severity:      models.SeverityWarning,
			Slots:         missing,
			ApplicationID: appID,
		})
	}
	if len(rejected) > 0 {
		alerts = append(alerts, models.AlertInfo{
			Type:          models.AlertRejected,
			Severity:      models.SeverityCritical,
			Slots:         rejected,
			ApplicationID: appID,
		})
	}
	if len(mixed) > 0 {
		alerts = append(alerts, models.AlertInfo{
			Type:          models.AlertRejectedInfo,
			Severity:      models.SeverityInfo,
			Slots:         mixed,
			ApplicationID: appID,
		})
	}

	// Once an application is approved, leftover document chatter is no
	// longer relevant to the applicant.
	msg := ParseAdminMessage(adminMessage)
	if msg.HasContent && !msg.IsJustDocList && appStatus != models.ApplicationApproved {
		alerts = append(alerts, models.AlertInfo{
			Type:          models.AlertAdminRequest,
			Severity:      models.SeverityInfo,
			Message:       msg.FormattedMessage,
			ApplicationID: appID,
		})
	}

	return alerts
}
