package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/review"
)

func alertOfType(t *testing.T, alerts []models.AlertInfo, typ models.AlertType) *models.AlertInfo {
	t.Helper()
	var found *models.AlertInfo
	for i := range alerts {
		if alerts[i].Type == typ {
			if found != nil {
				t.Fatalf("more than one %s alert", typ)
			}
			found = &alerts[i]
		}
	}
	return found
}

func TestCalculateAlerts_Scenario(t *testing.T) {
	slots := review.DocumentSlots(catalog("CIN copy", "Income certificate"), "")
	records := []models.DocumentRecord{record("1", "CIN copy", models.ReviewAccepted)}

	alerts := review.CalculateAlerts(records, slots, "", models.ApplicationInProgress, "app-1")
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertMissing, alerts[0].Type)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, []models.DocumentSlot{{Label: "Income certificate"}}, alerts[0].Slots)
	assert.Equal(t, "app-1", alerts[0].ApplicationID)
	assert.True(t, alerts[0].NeedsAction())
}

func TestCalculateAlerts_EmptySlotOnlyInMissing(t *testing.T) {
	slots := []models.DocumentSlot{{Label: "CIN copy"}}
	alerts := review.CalculateAlerts(nil, slots, "", models.ApplicationPending, "app-1")
	require.Len(t, alerts, 1)
	missing := alertOfType(t, alerts, models.AlertMissing)
	require.NotNil(t, missing)
	assert.Equal(t, slots, missing.Slots)
	assert.Nil(t, alertOfType(t, alerts, models.AlertRejected))
}

func TestCalculateAlerts_AllRejectedIsCritical(t *testing.T) {
	slots := []models.DocumentSlot{{Label: "CIN copy"}}
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewRejected),
		record("2", "CIN copy", models.ReviewRejected),
	}
	alerts := review.CalculateAlerts(records, slots, "", models.ApplicationPending, "app-1")
	rejected := alertOfType(t, alerts, models.AlertRejected)
	require.NotNil(t, rejected)
	assert.Equal(t, models.SeverityCritical, rejected.Severity)
	assert.Equal(t, slots, rejected.Slots)
	assert.Nil(t, alertOfType(t, alerts, models.AlertMissing))
	assert.Nil(t, alertOfType(t, alerts, models.AlertRejectedInfo))
}

func TestCalculateAlerts_MixedHistoryIsInformational(t *testing.T) {
	slots := []models.DocumentSlot{{Label: "CIN copy"}}
	records := []models.DocumentRecord{
		record("1", "CIN copy", models.ReviewAccepted),
		record("2", "CIN copy", models.ReviewRejected),
	}
	alerts := review.CalculateAlerts(records, slots, "", models.ApplicationPending, "app-1")
	info := alertOfType(t, alerts, models.AlertRejectedInfo)
	require.NotNil(t, info)
	assert.Equal(t, models.SeverityInfo, info.Severity)
	assert.False(t, info.NeedsAction())
	// Mixed history is not a blocking rejection.
	assert.Nil(t, alertOfType(t, alerts, models.AlertRejected))
}

func TestCalculateAlerts_DocListMessageProducesNoAdminRequest(t *testing.T) {
	msg := "المطلوب:\n• نسخة بطاقة التعريف\n• شهادة دخل"
	p := review.ParseAdminMessage(msg)
	require.True(t, p.HasContent)
	require.True(t, p.IsJustDocList)

	slots := review.DocumentSlots(nil, msg)
	alerts := review.CalculateAlerts(nil, slots, msg, models.ApplicationPending, "app-1")
	assert.Nil(t, alertOfType(t, alerts, models.AlertAdminRequest))
}

func TestCalculateAlerts_ProseMessageProducesAdminRequest(t *testing.T) {
	msg := "المطلوب:\n• شهادة دخل\n\nيرجى الإرسال قبل الجمعة"
	slots := review.DocumentSlots(nil, msg)
	alerts := review.CalculateAlerts(nil, slots, msg, models.ApplicationPending, "app-1")

	req := alertOfType(t, alerts, models.AlertAdminRequest)
	require.NotNil(t, req)
	assert.Equal(t, models.SeverityInfo, req.Severity)
	assert.Equal(t, "• شهادة دخل\nيرجى الإرسال قبل الجمعة", req.Message)
}

func TestCalculateAlerts_ApprovedSuppressesAdminRequest(t *testing.T) {
	msg := "يرجى تحديث رقم الهاتف في ملفكم"
	alerts := review.CalculateAlerts(nil, nil, msg, models.ApplicationApproved, "app-1")
	assert.Nil(t, alertOfType(t, alerts, models.AlertAdminRequest))

	// Same message on a non-approved application does alert.
	alerts = review.CalculateAlerts(nil, nil, msg, models.ApplicationDocumentsRequested, "app-1")
	assert.NotNil(t, alertOfType(t, alerts, models.AlertAdminRequest))
}

func TestCalculateAlerts_DefensiveInputs(t *testing.T) {
	assert.Empty(t, review.CalculateAlerts(nil, nil, "", "", ""))
}

func TestCalculateAlerts_Idempotent(t *testing.T) {
	slots := review.DocumentSlots(catalog("A", "B"), "المطلوب:\n• C")
	records := []models.DocumentRecord{
		record("1", "A", models.ReviewRejected),
		record("2", "B", models.ReviewAccepted),
		record("3", "B", models.ReviewRejected),
	}
	msg := "يرجى إرسال نسخة أوضح من الوثيقة"
	first := review.CalculateAlerts(records, slots, msg, models.ApplicationPending, "app-1")
	second := review.CalculateAlerts(records, slots, msg, models.ApplicationPending, "app-1")
	assert.Equal(t, first, second)
}
