package challenges

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxAnswerBytes bounds the raw answer size. Longer input is rejected
// before any normalization work is done.
const MaxAnswerBytes = 4096

// RuleKind enumerates the ways a normalized answer can be matched.
type RuleKind int

const (
	RuleExact       RuleKind = iota // Answer equals one of the values
	RuleContains                    // Answer contains one of the values
	RuleContainsAll                 // Answer contains every value
	RulePrefix                      // Answer starts with one of the values
)

func (k RuleKind) String() string {
	switch k {
	case RuleExact:
		return "exact"
	case RuleContains:
		return "contains"
	case RuleContainsAll:
		return "contains_all"
	case RulePrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Rule is one matching clause of a Matcher.
type Rule struct {
	Kind   RuleKind
	Values []string
}

// Exact builds a rule accepting any of the given answers verbatim
// (after normalization).
func Exact(values ...string) Rule { return Rule{Kind: RuleExact, Values: values} }

// Contains builds a rule accepting answers containing any of the values.
func Contains(values ...string) Rule { return Rule{Kind: RuleContains, Values: values} }

// ContainsAll builds a rule accepting answers containing every value.
func ContainsAll(values ...string) Rule { return Rule{Kind: RuleContainsAll, Values: values} }

// Prefix builds a rule accepting answers starting with any of the values.
func Prefix(values ...string) Rule { return Rule{Kind: RulePrefix, Values: values} }

// Normalization is a set of flags adjusting the normalization pipeline.
type Normalization uint8

const (
	// CaseSensitive skips case folding.
	CaseSensitive Normalization = 1 << iota
	// SeparatorsToSpace turns '-' and '_' into spaces.
	SeparatorsToSpace
	// RemoveSpaces deletes all whitespace instead of collapsing it.
	RemoveSpaces
	// KeepDelimiters skips stripping of quotes, trailing punctuation and
	// flag{...} wrappers. Used where punctuation is the answer.
	KeepDelimiters
)

func (n Normalization) has(flag Normalization) bool { return n&flag != 0 }

// Matcher decides whether an answer is correct: the answer is normalized
// with Norm and accepted if any rule matches.
type Matcher struct {
	Norm  Normalization
	Rules []Rule
}

// Answers builds a Matcher with default normalization.
func Answers(rules ...Rule) Matcher {
	return Matcher{Rules: rules}
}

// With returns a copy of m with the given normalization flags added.
func (m Matcher) With(flags Normalization) Matcher {
	m.Norm |= flags
	return m
}

// compile normalizes every rule value with the matcher's own pipeline so
// that seed data can be written naturally.
func (m Matcher) compile() Matcher {
	out := Matcher{Norm: m.Norm, Rules: make([]Rule, 0, len(m.Rules))}
	for _, r := range m.Rules {
		cr := Rule{Kind: r.Kind, Values: make([]string, 0, len(r.Values))}
		for _, v := range r.Values {
			if nv, ok := normalize(v, m.Norm); ok {
				cr.Values = append(cr.Values, nv)
			}
		}
		out.Rules = append(out.Rules, cr)
	}
	return out
}

// match reports whether the raw answer satisfies a compiled matcher.
func (m Matcher) match(raw string) bool {
	answer, ok := normalize(raw, m.Norm)
	if !ok {
		return false
	}
	for _, r := range m.Rules {
		if r.matches(answer) {
			return true
		}
	}
	return false
}

func (r Rule) matches(answer string) bool {
	if len(r.Values) == 0 {
		return false
	}
	switch r.Kind {
	case RuleExact:
		for _, v := range r.Values {
			if answer == v {
				return true
			}
		}
	case RuleContains:
		for _, v := range r.Values {
			if strings.Contains(answer, v) {
				return true
			}
		}
	case RuleContainsAll:
		for _, v := range r.Values {
			if !strings.Contains(answer, v) {
				return false
			}
		}
		return true
	case RulePrefix:
		for _, v := range r.Values {
			if strings.HasPrefix(answer, v) {
				return true
			}
		}
	}
	return false
}

// Validate reports whether raw is an accepted answer for the challenge or
// variant id. It returns false for unknown ids and for any input it cannot
// interpret; it never panics.
func Validate(id string, raw []byte) bool {
	if len(raw) > MaxAnswerBytes {
		return false
	}
	return ValidateString(id, string(raw))
}

// ValidateString is Validate for string input.
func ValidateString(id, answer string) bool {
	if len(answer) > MaxAnswerBytes {
		return false
	}
	m, ok := cat.matchers[id]
	if !ok {
		return false
	}
	return m.match(answer)
}

// Check reports whether answer solves c.
func (c Challenge) Check(answer string) bool {
	return ValidateString(c.ID, answer)
}

// NormalizeAnswer exposes the default normalization pipeline, e.g. for
// journaling what the player actually typed in canonical form.
func NormalizeAnswer(answer string) string {
	if len(answer) > MaxAnswerBytes {
		return ""
	}
	s, _ := normalize(answer, 0)
	return s
}

// normalize runs the answer normalization pipeline. The boolean is false
// when nothing comparable remains.
//
// Normalization rules:
// - Invalid UTF-8, control and format characters are dropped
// - Unicode compatibility forms are folded (NFKC)
// - Whitespace is trimmed and internal runs collapse to one space
// - Wrapping quotes/backticks, trailing '.'/'!' and flag{...} are stripped
// - Comparison is case-insensitive unless CaseSensitive is set
func normalize(s string, flags Normalization) (string, bool) {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)

	if !flags.has(KeepDelimiters) {
		s = stripDelimiters(s)
	}
	if !flags.has(CaseSensitive) {
		s = cases.Fold().String(s)
	}
	if flags.has(SeparatorsToSpace) {
		s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	}
	if flags.has(RemoveSpaces) {
		s = strings.Join(strings.Fields(s), "")
	} else {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s, s != ""
}

// stripDelimiters removes presentation wrappers players commonly type
// around an answer. Each wrapper is removed at most once per pass and the
// number of passes is bounded.
func stripDelimiters(s string) string {
	for range 4 {
		before := s
		if inner, ok := unwrapFlag(s); ok {
			s = inner
		}
		if len(s) >= 2 {
			first, last := s[0], s[len(s)-1]
			if first == last && (first == '"' || first == '\'' || first == '`') {
				s = s[1 : len(s)-1]
			}
		}
		s = strings.TrimRight(s, ".!")
		s = strings.TrimSpace(s)
		if s == before {
			break
		}
	}
	return s
}

// unwrapFlag strips a CTF-style flag{...} or ctf{...} wrapper.
func unwrapFlag(s string) (string, bool) {
	if !strings.HasSuffix(s, "}") {
		return s, false
	}
	for _, prefix := range []string{"flag{", "ctf{", "ghost{"} {
		if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			return strings.TrimSpace(s[len(prefix) : len(s)-1]), true
		}
	}
	return s, false
}
