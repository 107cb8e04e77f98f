package utils

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	nonDigits      = regexp.MustCompile(`\D`)
)

// ISOLayout is the JSON/ISO-8601 rendering used for every timestamp leaving the API.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SanitizeString removes tag-like substrings (<...>) and surrounding whitespace.
// Tags are stripped before trimming so that a second pass is a no-op.
func SanitizeString(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// FormatPhoneNumber -> (XXX) XXX-XXXX untuk nomor 10 digit, selain itu input asli dikembalikan
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	cleaned := nonDigits.ReplaceAllString(phone, "")
	if len(cleaned) == 10 {
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	}
	return phone
}

// ParseDate parses the date formats accepted from clients and normalizes the result to UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a time value or a parseable date string as an ISO-8601 UTC string.
// The second result is false when the value is absent or cannot be parsed.
func FormatDate(value interface{}) (string, bool) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return "", false
		}
		t = *v
	case string:
		parsed, ok := ParseDate(v)
		if !ok {
			InfoLogger.Debugf("date formatting skipped, unparseable value %q", v)
			return "", false
		}
		t = parsed
	default:
		return "", false
	}
	if t.IsZero() {
		return "", false
	}
	return t.UTC().Format(ISOLayout), true
}

// ToObjectID validates a store identifier and returns its canonical (lowercase hex) form.
func ToObjectID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

// NewObjectID generates a fresh store identifier.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}
