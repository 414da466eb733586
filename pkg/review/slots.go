package review

import (
	"strings"

	"github.com/sakanhq/sakan-backend/pkg/models"
)

// DocumentSlots merges the standard catalog with the extra documents an
// administrator asked for in the free-text message. Catalog order is
// preserved; extras follow in the order they appear in the message.
// Labels are deduplicated by exact equality after trimming, so an
// extra that repeats a catalog entry yields no second slot.
//
// Extraction is independent of whether the message also contains
// prose: bullet lines after the request header always produce slots.
func DocumentSlots(catalog []models.CatalogEntry, adminMessage string) []models.DocumentSlot {
	slots := make([]models.DocumentSlot, 0, len(catalog))
	seen := make(map[string]struct{}, len(catalog))

	for _, entry := range catalog {
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		slots = append(slots, models.DocumentSlot{Label: label})
	}

	headerSeen := false
	for _, line := range strings.Split(adminMessage, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isHeaderLine(line) {
			headerSeen = true
			continue
		}
		// Bullets before any header are not a request for documents.
		if !headerSeen || !isBulletLine(line) {
			continue
		}
		label := bulletLabel(line)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		slots = append(slots, models.DocumentSlot{Label: label, IsExtra: true})
	}

	return slots
}
