package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Kind names a validation check as written in rule sheets.
type Kind string

const (
	KindNotNull    Kind = "not_null"
	KindNotEmpty   Kind = "not_empty"
	KindGreater    Kind = "greater_than"
	KindLess       Kind = "less_than"
	KindBetween    Kind = "between"
	KindEquals     Kind = "equals"
	KindNotEquals  Kind = "not_equals"
	KindInList     Kind = "is_in_list"
	KindNotInList  Kind = "not_in_list"
	KindRegex      Kind = "regex_match"
	KindIsDate     Kind = "is_date"
	KindIsNumeric  Kind = "is_numeric"
	KindIsInteger  Kind = "is_integer"
	KindUnique     Kind = "unique"
	KindMinLength  Kind = "min_length"
	KindMaxLength  Kind = "max_length"
	KindStartsWith Kind = "starts_with"
	KindEndsWith   Kind = "ends_with"
	KindContains   Kind = "contains"
	KindExpression Kind = "expression"
)

// Kinds lists every supported check kind in documentation order.
var Kinds = []Kind{
	KindNotNull, KindNotEmpty, KindGreater, KindLess, KindBetween, KindEquals, KindNotEquals,
	KindInList, KindNotInList, KindRegex, KindIsDate, KindIsNumeric, KindIsInteger, KindUnique,
	KindMinLength, KindMaxLength, KindStartsWith, KindEndsWith, KindContains, KindExpression,
}

// IsKnown reports whether k is one of Kinds.
func (k Kind) IsKnown() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

var (
	// ErrUnknownCheck is returned by ParseCheck for a kind outside Kinds.
	ErrUnknownCheck = errors.New("unknown check type")
	// ErrInvalidPattern marks a regex_match pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid regex")
	// ErrInvalidExpression marks an expression that does not compile.
	ErrInvalidExpression = errors.New("invalid expression")
)

// Check is one typed validation constraint. The set of implementations is closed.
type Check interface {
	Kind() Kind
	sealed()
}

type NotNull struct{}
type NotEmpty struct{}
type GreaterThan struct{ Threshold float64 }
type LessThan struct{ Threshold float64 }

// Between is an inclusive range.
type Between struct{ Min, Max float64 }
type Equals struct{ Expected string }
type NotEquals struct{ Forbidden string }
type InList struct{ Values []string }
type NotInList struct{ Values []string }

// RegexMatch matches from the start of the value. Patterns use the backtracking
// syntax of rule sheets, so lookaround and backreferences are allowed.
type RegexMatch struct {
	Pattern string
	re      *regexp2.Regexp
}

// IsDate parses values with Format, a named token or a strftime pattern.
type IsDate struct {
	Format string
	layout string
}
type IsNumeric struct{}
type IsInteger struct{}

// Unique fails every occurrence of a repeated value.
type Unique struct{}
type MinLength struct{ N int }
type MaxLength struct{ N int }
type StartsWith struct{ Prefix string }
type EndsWith struct{ Suffix string }
type Contains struct{ Substring string }

func (NotNull) Kind() Kind     { return KindNotNull }
func (NotEmpty) Kind() Kind    { return KindNotEmpty }
func (GreaterThan) Kind() Kind { return KindGreater }
func (LessThan) Kind() Kind    { return KindLess }
func (Between) Kind() Kind     { return KindBetween }
func (Equals) Kind() Kind      { return KindEquals }
func (NotEquals) Kind() Kind   { return KindNotEquals }
func (InList) Kind() Kind      { return KindInList }
func (NotInList) Kind() Kind   { return KindNotInList }
func (RegexMatch) Kind() Kind  { return KindRegex }
func (IsDate) Kind() Kind      { return KindIsDate }
func (IsNumeric) Kind() Kind   { return KindIsNumeric }
func (IsInteger) Kind() Kind   { return KindIsInteger }
func (Unique) Kind() Kind      { return KindUnique }
func (MinLength) Kind() Kind   { return KindMinLength }
func (MaxLength) Kind() Kind   { return KindMaxLength }
func (StartsWith) Kind() Kind  { return KindStartsWith }
func (EndsWith) Kind() Kind    { return KindEndsWith }
func (Contains) Kind() Kind    { return KindContains }

func (NotNull) sealed()     {}
func (NotEmpty) sealed()    {}
func (GreaterThan) sealed() {}
func (LessThan) sealed()    {}
func (Between) sealed()     {}
func (Equals) sealed()      {}
func (NotEquals) sealed()   {}
func (InList) sealed()      {}
func (NotInList) sealed()   {}
func (RegexMatch) sealed()  {}
func (IsDate) sealed()      {}
func (IsNumeric) sealed()   {}
func (IsInteger) sealed()   {}
func (Unique) sealed()      {}
func (MinLength) sealed()   {}
func (MaxLength) sealed()   {}
func (StartsWith) sealed()  {}
func (EndsWith) sealed()    {}
func (Contains) sealed()    {}

// ParseCheck builds the typed check for kind from the rule's two parameters.
func ParseCheck(kind Kind, p1, p2 Param) (Check, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case KindNotNull:
		return NotNull{}, nil
	case KindNotEmpty:
		return NotEmpty{}, nil
	case KindGreater:
		t, err := floatParam(p1, 0)
		return GreaterThan{Threshold: t}, err
	case KindLess:
		t, err := floatParam(p1, 0)
		return LessThan{Threshold: t}, err
	case KindBetween:
		lo, err := floatParam(p1, 0)
		if err != nil {
			return nil, err
		}
		hi, err := floatParam(p2, 100)
		return Between{Min: lo, Max: hi}, err
	case KindEquals:
		return Equals{Expected: string(p1)}, nil
	case KindNotEquals:
		return NotEquals{Forbidden: string(p1)}, nil
	case KindInList:
		return InList{Values: listParam(p1)}, nil
	case KindNotInList:
		return NotInList{Values: listParam(p1)}, nil
	case KindRegex:
		return NewRegexMatch(string(p1))
	case KindIsDate:
		return NewIsDate(p1.String()), nil
	case KindIsNumeric:
		return IsNumeric{}, nil
	case KindIsInteger:
		return IsInteger{}, nil
	case KindUnique:
		return Unique{}, nil
	case KindMinLength:
		n, err := intParam(p1, 0)
		return MinLength{N: n}, err
	case KindMaxLength:
		n, err := intParam(p1, 255)
		return MaxLength{N: n}, err
	case KindStartsWith:
		return StartsWith{Prefix: string(p1)}, nil
	case KindEndsWith:
		return EndsWith{Suffix: string(p1)}, nil
	case KindContains:
		return Contains{Substring: string(p1)}, nil
	case KindExpression:
		return NewExpression(p1.String())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, kind)
	}
}

// regexTimeout bounds a single match.
const regexTimeout = time.Second

// namedBackref is a (?P=name) backreference, which regexp2 spells \k<name>.
var namedBackref = regexp.MustCompile(`\(\?P=(\w+)\)`)

// NewRegexMatch compiles pattern anchored at the start of the value.
func NewRegexMatch(pattern string) (RegexMatch, error) {
	expr := strings.ReplaceAll(pattern, "(?P<", "(?<")
	expr = namedBackref.ReplaceAllString(expr, `\k<$1>`)
	if _, err := regexp2.Compile(expr, regexp2.None); err != nil {
		return RegexMatch{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re, err := regexp2.Compile(`\A(?:`+expr+`)`, regexp2.None)
	if err != nil {
		return RegexMatch{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re.MatchTimeout = regexTimeout
	return RegexMatch{Pattern: pattern, re: re}, nil
}

// Match reports whether the pattern matches at the start of s.
func (c RegexMatch) Match(s string) (bool, error) {
	ok, err := c.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("regex %q: %w", c.Pattern, err)
	}
	return ok, nil
}

// NewIsDate resolves format to a time layout. A blank format means %Y-%m-%d.
func NewIsDate(format string) IsDate {
	if format == "" {
		format = "%Y-%m-%d"
	}
	return IsDate{Format: format, layout: dateLayout(format)}
}

func floatParam(p Param, def float64) (float64, error) {
	if p.IsBlank() {
		return def, nil
	}
	f, err := strconv.ParseFloat(p.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert string to float: '%s'", p.String())
	}
	return f, nil
}

func intParam(p Param, def int) (int, error) {
	if p.IsBlank() {
		return def, nil
	}
	n, err := strconv.Atoi(p.String())
	if err != nil {
		// integral floats such as "10.0" come out of spreadsheets
		f, ferr := strconv.ParseFloat(p.String(), 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid literal for int: '%s'", p.String())
		}
		return int(f), nil
	}
	return n, nil
}

func listParam(p Param) []string {
	parts := strings.Split(string(p), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
