package query

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Query file formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// DateLayout is the calendar date layout accepted next to RFC 3339.
const DateLayout = "2006-01-02"

// ParseDate parses an RFC 3339 timestamp or a calendar date. Calendar
// dates are midnight in time.Local.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// Decode reads QueryData in the given format.
func Decode(r io.Reader, format string) (QueryData, error) {
	var q QueryData
	switch strings.ToLower(format) {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&q); err != nil {
			return QueryData{}, errors.Wrap(err, "decode json query")
		}
	case FormatYAML, "yml", "":
		if err := yaml.NewDecoder(r).Decode(&q); err != nil && err != io.EOF {
			return QueryData{}, errors.Wrap(err, "decode yaml query")
		}
	default:
		return QueryData{}, errors.Errorf("unsupported query format %q", format)
	}
	return q, nil
}

// LoadFile reads a query file; the format follows the extension and
// defaults to YAML.
func LoadFile(path string) (QueryData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QueryData{}, errors.Wrapf(err, "read query file %s", path)
	}
	return Decode(bytes.NewReader(data), FormatOf(path))
}

// FormatOf returns the query format implied by a file name.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// fieldValueDoc is the serialized form of FieldValue with dates as strings.
type fieldValueDoc struct {
	Text      string  `json:"text" yaml:"text"`
	StartDate *string `json:"startDate" yaml:"startDate"`
	EndDate   *string `json:"endDate" yaml:"endDate"`
}

// UnmarshalJSON accepts calendar dates as well as RFC 3339 timestamps.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var doc fieldValueDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return v.fromDoc(doc)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *FieldValue) UnmarshalYAML(node *yaml.Node) error {
	var doc fieldValueDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	return v.fromDoc(doc)
}

func (v *FieldValue) fromDoc(doc fieldValueDoc) error {
	start, err := parseOptionalDate(doc.StartDate)
	if err != nil {
		return errors.Wrap(err, "startDate")
	}
	end, err := parseOptionalDate(doc.EndDate)
	if err != nil {
		return errors.Wrap(err, "endDate")
	}
	*v = FieldValue{Text: doc.Text, StartDate: start, EndDate: end}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
