package query

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

// isoMillis is the layout of a UTC timestamp with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

var (
	whitespace    = regexp.MustCompile(`[\t\n\v\f\r \p{Zs}\x{2028}\x{2029}\x{FEFF}]`)
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r \p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
)

// dropdownValues substitutes display values with their query expression.
var dropdownValues = map[string]string{
	"Web Assets":     "NOT %5C/dxdam/*",
	"Managed Assets": "%5C/dxdam/*",
}

// dropdownExclusion is a (field, value) pair that means "no filter".
type dropdownExclusion struct {
	field string
	value string
}

var dropdownExclusions = []dropdownExclusion{
	{field: "location", value: "All"},
}

// text

func (f TextField) included(entry SearchField) bool {
	return entry.Value.Text != ""
}

func (f TextField) print(entry SearchField, _ *Builder) (string, error) {
	condition := entry.Option.Condition
	if condition == "" {
		condition = ConditionEquals
	}
	operator := entry.Option.Operator
	if operator == "" {
		operator = OperatorSingle
	}

	switch operator {
	case OperatorSingle:
		return ":" + withCondition(entry.Value.Text, condition), nil
	case OperatorAnd:
		return ":(" + multiValue(entry.Value.Text, condition, " AND ") + ")", nil
	case OperatorOr:
		return ":(" + multiValue(entry.Value.Text, condition, " OR ") + ")", nil
	}
	return "", errors.Wrapf(ErrUnknownOperator, "%q", operator)
}

// withCondition trims the token, escapes its first inner whitespace run and
// wraps it in wildcards for the Contains condition.
func withCondition(text, condition string) string {
	text = strings.TrimFunc(text, isSpace)
	if loc := whitespaceRun.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + `\ ` + text[loc[1]:]
	}
	if condition == ConditionContains {
		return "*" + text + "*"
	}
	return text
}

func multiValue(text, condition, join string) string {
	tokens := strings.Split(text, ",")
	for i, token := range tokens {
		tokens[i] = withCondition(token, condition)
	}
	return strings.Join(tokens, join)
}

// isSpace matches the whitespace class: U+0085 is not whitespace there.
func isSpace(r rune) bool {
	return r != '\u0085' && (unicode.IsSpace(r) || r == '\uFEFF')
}

// date

func (f DateField) included(entry SearchField) bool {
	switch entry.Option.DateRange {
	case RangeFuture, RangePast:
		return true
	case RangeWithin:
		return entry.Value.StartDate != nil && entry.Value.EndDate != nil
	case "":
		return false
	}
	// unknown ranges reach the printer and fail there
	return true
}

func (f DateField) print(entry SearchField, b *Builder) (string, error) {
	switch entry.Option.DateRange {
	case RangeFuture:
		return ":[NOW TO *]", nil
	case RangePast:
		return ":[* TO NOW]", nil
	case RangeWithin:
		if entry.Value.StartDate == nil || entry.Value.EndDate == nil {
			return "", ErrMissingDate
		}
		start := b.calendarDate(*entry.Value.StartDate)
		end := b.calendarDate(*entry.Value.EndDate).Add(24*time.Hour - time.Millisecond)
		return ":[" + start.Format(isoMillis) + " TO " + end.Format(isoMillis) + "]", nil
	}
	return "", errors.Wrapf(ErrUnknownDateRange, "%q", entry.Option.DateRange)
}

// calendarDate returns midnight UTC of the date the user picked: t in the
// builder location, or in t's own zone with WithTimestampZone.
func (b *Builder) calendarDate(t time.Time) time.Time {
	if !b.ownZone {
		t = t.In(b.location)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dropdown

func (f DropdownField) included(entry SearchField) bool {
	for _, ex := range dropdownExclusions {
		if ex.field == entry.Field && ex.value == entry.Value.Text {
			return false
		}
	}
	return entry.Value.Text != ""
}

func (f DropdownField) print(entry SearchField, _ *Builder) (string, error) {
	text, ok := dropdownValues[entry.Value.Text]
	if !ok {
		text = strings.ToLower(entry.Value.Text)
	}
	if whitespace.MatchString(text) {
		text = "(" + text + ")"
	}
	return ":" + text, nil
}
