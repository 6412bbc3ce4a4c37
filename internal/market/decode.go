package market

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// number decodes a JSON number, a numeric string or null. Both market APIs
// switch between the two representations across endpoints.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = number(f)
	return nil
}

// stringList decodes either a JSON array of strings or a string holding one,
// as Polymarket does for outcomePrices.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		if inner == "" {
			*l = nil
			return nil
		}
		data = []byte(inner)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var n number
		if err := n.UnmarshalJSON(r); err != nil {
			return err
		}
		out = append(out, strconv.FormatFloat(float64(n), 'f', -1, 64))
	}
	*l = out
	return nil
}

// tagList accepts plain strings or objects carrying a label.
type tagList []string

func (l *tagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return err
		}
		if obj.Label != "" {
			out = append(out, obj.Label)
		}
	}
	*l = out
	return nil
}

func parseTime(values ...string) (time.Time, bool) {
	for _, v := range values {
		if v == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func timeOr(fallback time.Time, values ...string) time.Time {
	if t, ok := parseTime(values...); ok {
		return t
	}
	return fallback
}
