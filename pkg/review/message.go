package review

import (
	"strings"
	"unicode/utf8"
)

// RequestHeader is the marker line the admin console puts above the
// bullet list of extra documents it asks for.
const RequestHeader = "المطلوب:"

// Messages shorter than this are treated as noise, not instructions.
const minMessageRunes = 10

// Generic acknowledgements administrators leave behind in the message
// field once a request is settled. None of them is worth showing to
// the applicant.
var genericAcks = []string{"تم", "ok", "good", "done"}

// MessageKind tags what an admin message actually is: a
// machine-generated document list, a list with a human note attached,
// or plain free text.
type MessageKind string

const (
	KindDocListOnly     MessageKind = "doc-list-only"
	KindDocListWithNote MessageKind = "doc-list-with-note"
	KindFreeText        MessageKind = "free-text"
)

// ParsedMessage is the result of classifying an administrator's
// free-text message.
type ParsedMessage struct {
	// HasContent is false for empty, too-short or generic-ack messages.
	HasContent bool
	// IsJustDocList is true when the message is only the request header
	// followed by bullet lines (or the header alone). Such messages are
	// generated alongside the extra slots and are not a genuine
	// instruction to the applicant.
	IsJustDocList bool
	// FormattedMessage is the text the applicant-facing UI renders:
	// header stripped, bullets normalized to "• ", blank lines removed.
	FormattedMessage string
	RawMessage       string
	Kind             MessageKind
	// Note carries the prose lines when Kind is doc-list-with-note.
	Note string
}

// ParseAdminMessage classifies and reformats an administrator's
// free-text request. It is total: any input yields a usable result.
func ParseAdminMessage(message string) ParsedMessage {
	p := ParsedMessage{RawMessage: message}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return p
	}

	p.IsJustDocList = isJustDocList(trimmed)
	p.Kind, p.Note = classifyMessage(trimmed)
	p.FormattedMessage = formatMessage(trimmed)

	if utf8.RuneCountInString(trimmed) < minMessageRunes {
		return p
	}
	if isGenericAck(trimmed) {
		return p
	}
	p.HasContent = true
	return p
}

// IsJustDocList reports whether the message consists solely of the
// request header and bullet lines. A header with no bullets at all
// still counts (degenerate empty request).
func IsJustDocList(message string) bool {
	return isJustDocList(strings.TrimSpace(message))
}

func isJustDocList(trimmed string) bool {
	lines := nonEmptyLines(trimmed)
	if len(lines) == 0 {
		return false
	}
	if !isHeaderLine(lines[0]) {
		return false
	}
	for _, line := range lines[1:] {
		if !isBulletLine(line) {
			return false
		}
	}
	return true
}

func classifyMessage(trimmed string) (MessageKind, string) {
	lines := nonEmptyLines(trimmed)
	if len(lines) == 0 || !isHeaderLine(lines[0]) {
		return KindFreeText, ""
	}
	var prose []string
	for _, line := range lines[1:] {
		if !isBulletLine(line) {
			prose = append(prose, line)
		}
	}
	if len(prose) == 0 {
		return KindDocListOnly, ""
	}
	return KindDocListWithNote, strings.Join(prose, "\n")
}

func formatMessage(trimmed string) string {
	var out []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isHeaderLine(line) {
			continue
		}
		if isBulletLine(line) {
			out = append(out, "• "+bulletLabel(line))
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isGenericAck(trimmed string) bool {
	for _, ack := range genericAcks {
		if strings.EqualFold(trimmed, ack) {
			return true
		}
	}
	return false
}

func isHeaderLine(line string) bool {
	return strings.TrimSpace(line) == RequestHeader
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

func bulletLabel(line string) string {
	if strings.HasPrefix(line, "•") {
		return strings.TrimSpace(strings.TrimPrefix(line, "•"))
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "-"))
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
