package parser

import (
	"errors"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Converter reads the text of a value, already stripped of its "name:"
// prefix.
type Converter func(s string) (value.Value, error)

// AutoConverter is used for values written without a converter prefix.
const AutoConverter = "auto"

var (
	errNotNumber  = errors.New("not a number")
	errNotDate    = errors.New("not a date")
	isoDateLayout = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// DefaultConverters returns the converters registered in every new parser.
func DefaultConverters() map[string]Converter {
	return map[string]Converter{
		AutoConverter: convertAuto,
		"number":      convertNumber,
		"epoch":       convertEpoch,
		"isodate":     convertISODate,
		"date":        convertDate,
		"boolean":     convertBoolean,
		"string":      convertString,
		"re":          convertRegex(true),
		"RE":          convertRegex(false),
		"glob":        convertGlob,
	}
}

// convertAuto reads keywords and canonical numbers, everything else stays a
// string. "10" is a number, "010" and "1e1" are strings.
func convertAuto(s string) (value.Value, error) {
	switch s {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null", "undefined":
		return value.Null(), nil
	case "Infinity":
		return value.Num(math.Inf(1)), nil
	case "-Infinity":
		return value.Num(math.Inf(-1)), nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && value.FormatNumber(n) == s {
		return value.Num(n), nil
	}
	return convertString(s)
}

func convertNumber(s string) (value.Value, error) {
	n, err := parseNumber(s)
	if err != nil {
		return value.Value{}, err
	}
	return value.Num(n), nil
}

func parseNumber(s string) (float64, error) {
	s, err := url.PathUnescape(s)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) {
		return 0, errNotNumber
	}
	return n, nil
}

// convertEpoch reads milliseconds since the Unix epoch. Values outside the
// int64 range are rejected.
func convertEpoch(s string) (value.Value, error) {
	n, err := parseNumber(s)
	if err != nil || n < math.MinInt64 || n >= math.MaxInt64 {
		return value.Value{}, errNotDate
	}
	return value.Date(time.UnixMilli(int64(n)).UTC()), nil
}

// convertISODate reads an ISO 8601 date. Times without a zone are UTC.
func convertISODate(s string) (value.Value, error) {
	s, err := url.PathUnescape(s)
	if err != nil {
		return value.Value{}, err
	}
	for _, layout := range isoDateLayout {
		if t, err := time.Parse(layout, s); err == nil {
			return value.Date(t), nil
		}
	}
	return value.Value{}, errNotDate
}

// convertDate accepts both ISO dates and epoch milliseconds.
func convertDate(s string) (value.Value, error) {
	if v, err := convertISODate(s); err == nil {
		return v, nil
	}
	return convertEpoch(s)
}

func convertBoolean(s string) (value.Value, error) {
	return value.Bool(s == "true"), nil
}

func convertString(s string) (value.Value, error) {
	u, err := url.PathUnescape(s)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(u), nil
}

func convertRegex(insensitive bool) Converter {
	return func(s string) (value.Value, error) {
		u, err := url.PathUnescape(s)
		if err != nil {
			return value.Value{}, err
		}
		if insensitive {
			u = "(?i)" + u
		}
		re, err := regexp.Compile(u)
		if err != nil {
			return value.Value{}, err
		}
		return value.Regex(re), nil
	}
}

// convertGlob turns a shell pattern into a case-insensitive regular
// expression. * matches any run of characters and ? a single one.
func convertGlob(s string) (value.Value, error) {
	u, err := url.PathUnescape(s)
	if err != nil {
		return value.Value{}, err
	}
	var b strings.Builder
	for _, r := range u {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	expr := b.String()
	if rest, ok := strings.CutPrefix(expr, ".*"); ok {
		expr = rest
	} else {
		expr = "^" + expr
	}
	if rest, ok := strings.CutSuffix(expr, ".*"); ok {
		expr = rest
	} else {
		expr += "$"
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.Regex(re), nil
}
