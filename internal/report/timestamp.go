package report

import (
	"encoding/json"
	"strconv"
	"time"
)

// timeLayouts are tried in order when a timestamp arrives as a string.
// Includes the HTML datetime-local form used by task entry forms.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp converts a timestamp-like value into a time.Time.
// Accepted shapes: time.Time (and *time.Time), RFC3339-ish strings,
// integer or float epoch seconds, and serialized store timestamps carrying
// a "seconds" field. Anything else, including garbage, yields ok=false;
// the function never panics.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return ParseTimestamp(*t)
	case string:
		if t == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		// bare numeric string, treated as epoch seconds
		if secs, err := strconv.ParseFloat(t, 64); err == nil {
			return epochSeconds(secs), true
		}
		return time.Time{}, false
	case float64:
		return epochSeconds(t), true
	case int:
		return epochSeconds(float64(t)), true
	case int64:
		return epochSeconds(float64(t)), true
	case json.Number:
		secs, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochSeconds(secs), true
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			if raw, ok := t[key]; ok {
				return ParseTimestamp(raw)
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func epochSeconds(secs float64) time.Time {
	whole := int64(secs)
	frac := secs - float64(whole)
	return time.Unix(whole, int64(frac*float64(time.Second)))
}

// Normalize builds a canonical Task from a schemaless store document.
// Timestamp-bearing fields may arrive in any shape ParseTimestamp accepts;
// unparseable or absent values stay nil. Normalize never fails.
func Normalize(doc map[string]any) Task {
	t := Task{
		ID:     docString(doc, "id"),
		UserID: docString(doc, "user_id", "userId"),
		Title:  docString(doc, "title"),
		Link:   docString(doc, "link"),
	}
	t.FromTime = docTime(doc, "from_time", "fromTime")
	t.ToTime = docTime(doc, "to_time", "toTime")
	t.CreatedAt = docTime(doc, "created_at", "createdAt")
	t.UpdatedAt = docTime(doc, "updated_at", "updatedAt")
	return t
}

// docString returns the first present string value among the given keys.
func docString(doc map[string]any, keys ...string) string {
	for _, k := range keys {
		if raw, ok := doc[k]; ok {
			if s, ok := raw.(string); ok {
				return s
			}
		}
	}
	return ""
}

// docTime returns the first parseable timestamp among the given keys.
func docTime(doc map[string]any, keys ...string) *time.Time {
	for _, k := range keys {
		raw, ok := doc[k]
		if !ok {
			continue
		}
		if parsed, ok := ParseTimestamp(raw); ok {
			return &parsed
		}
	}
	return nil
}
