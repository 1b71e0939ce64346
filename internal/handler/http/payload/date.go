package payload

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"dinas-portal/internal/domain/entity"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var errDate = &entity.ValidationError{
	Field:   "publication_date",
	Message: "must be an RFC3339 timestamp, YYYY-MM-DDTHH:MM:SS, YYYY-MM-DD or unix milliseconds",
}

// Date is a publication date that accepts the string layouts above or a JSON number of
// Unix milliseconds. Values without a zone are read as UTC. JSON null leaves it zero.
type Date struct {
	time.Time
}

// ParseDate parses s with the accepted layouts and normalizes to UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errDate
}

func (d *Date) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errDate
		}
		t, err := ParseDate(s)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errDate
		}
		t := time.UnixMilli(ms).UTC()
		if y := t.Year(); y < 1 || y > 9999 {
			return errDate
		}
		d.Time = t
		return nil
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// DateOption converts a present Date into the domain's optional time.
func DateOption(o entity.Optional[Date]) entity.Optional[time.Time] {
	return entity.Optional[time.Time]{Set: o.Set, Null: o.Null, Value: o.Value.Time}
}
