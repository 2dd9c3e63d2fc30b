package pattern

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/kailas-cloud/regexboard/internal/domain"
)

// knownFlags is the flag alphabet of the host engine (ECMAScript).
const knownFlags = "dgimsuvy"

// Descriptor is a parsed /pattern/flags string.
type Descriptor struct {
	raw     string
	pattern string
	flags   string
}

// Parse splits a /pattern/flags string on its last slash and checks that the
// body compiles under the flags. The body may contain slashes: "/a/b/" is the
// body "a/b", while "/a/b" is the body "a" with the (unknown) flag "b".
func Parse(input string) (Descriptor, error) {
	if len(input) < 2 || input[0] != '/' {
		return Descriptor{}, domain.NewPatternValidation(input, "missing leading slash")
	}
	last := strings.LastIndexByte(input, '/')
	if last == 0 {
		return Descriptor{}, domain.NewPatternValidation(input, "missing closing slash")
	}

	body, flags := input[1:last], input[last+1:]
	if strings.ContainsAny(body, "\n\r\u2028\u2029") {
		return Descriptor{}, domain.NewPatternValidation(input, "line terminator in pattern body")
	}
	for _, c := range flags {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return Descriptor{}, domain.NewPatternValidation(input, "flags must be letters")
		}
	}
	if reason := checkFlags(flags); reason != "" {
		return Descriptor{}, domain.NewPatternValidation(input, reason)
	}

	d := Descriptor{raw: input, pattern: body, flags: flags}
	if _, err := regexp2.Compile(body, d.options()); err != nil {
		return Descriptor{}, domain.NewPatternValidation(input, err.Error())
	}
	return d, nil
}

// Valid reports whether input parses.
func Valid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

func checkFlags(flags string) string {
	seen := make(map[rune]bool, len(flags))
	for _, c := range flags {
		if !strings.ContainsRune(knownFlags, c) {
			return "unknown flag " + string(c)
		}
		if seen[c] {
			return "duplicate flag " + string(c)
		}
		seen[c] = true
	}
	if seen['u'] && seen['v'] {
		return "flags u and v are mutually exclusive"
	}
	return ""
}

// Raw returns the canonical /pattern/flags form.
func (d Descriptor) Raw() string { return d.raw }

// Pattern returns the body between the slashes.
func (d Descriptor) Pattern() string { return d.pattern }

// Flags returns the trailing flag letters.
func (d Descriptor) Flags() string { return d.flags }

// HasFlag reports whether flag f is set.
func (d Descriptor) HasFlag(f rune) bool { return strings.ContainsRune(d.flags, f) }

// String re-serializes the descriptor.
func (d Descriptor) String() string { return "/" + d.pattern + "/" + d.flags }

func (d Descriptor) options() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if d.HasFlag('i') {
		opts |= regexp2.IgnoreCase
	}
	if d.HasFlag('m') {
		opts |= regexp2.Multiline
	}
	if d.HasFlag('s') {
		opts |= regexp2.Singleline
	}
	if d.HasFlag('u') || d.HasFlag('v') {
		opts |= regexp2.Unicode
	}
	return opts
}

// Compile builds the engine matcher. A zero timeout means no limit.
func (d Descriptor) Compile(timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(d.pattern, d.options())
	if err != nil {
		return nil, domain.NewPatternValidation(d.raw, err.Error())
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}
