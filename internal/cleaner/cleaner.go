// Package cleaner normalizes raw title candidates pulled out of captions
// into display-ready names. Cleaning is idempotent: running a cleaned name
// through again returns it unchanged.
package cleaner

import (
	"regexp"
	"strings"
)

// wordSub is a whole-word, case-insensitive replacement.
type wordSub struct {
	pattern     *regexp.Regexp
	replacement string
}

// Cleaner strips channel handles, bracketed noise, and stray punctuation
// from title candidates and shortens common language/subtitle words.
type Cleaner struct {
	channelPrefix *regexp.Regexp
	brackets      []*regexp.Regexp
	edgeDashes    []*regexp.Regexp
	wordSubs      []wordSub
	punctuation   *regexp.Regexp
	whitespace    *regexp.Regexp
}

// New creates a Cleaner with all patterns precompiled
func New() *Cleaner {
	return &Cleaner{
		channelPrefix: regexp.MustCompile(`^@\w+\s*-\s*`),
		brackets: []*regexp.Regexp{
			regexp.MustCompile(`\[.*?\]`),
			regexp.MustCompile(`\(.*?\)`),
			regexp.MustCompile(`\{.*?\}`),
		},
		edgeDashes: []*regexp.Regexp{
			regexp.MustCompile(`^\s*-\s*`),
			regexp.MustCompile(`\s*-\s*$`),
		},
		wordSubs: []wordSub{
			{regexp.MustCompile(`(?i)\bTamil\b`), "Tam"},
			{regexp.MustCompile(`(?i)\bEnglish\b`), "Eng"},
			{regexp.MustCompile(`(?i)\bDubbed\b`), "Dub"},
			{regexp.MustCompile(`(?i)\bSubbed\b`), "Sub"},
		},
		punctuation: regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`),
		whitespace:  regexp.MustCompile(`\s+`),
	}
}

// Clean normalizes a raw title candidate. The steps run in a fixed order:
// channel handle, bracketed segments, edge dashes, word shortenings,
// punctuation, whitespace collapse, trim.
func (c *Cleaner) Clean(name string) string {
	name = c.channelPrefix.ReplaceAllString(name, "")

	for _, b := range c.brackets {
		name = b.ReplaceAllString(name, "")
	}

	for _, d := range c.edgeDashes {
		name = d.ReplaceAllString(name, "")
	}

	for _, s := range c.wordSubs {
		name = s.pattern.ReplaceAllString(name, s.replacement)
	}

	name = c.punctuation.ReplaceAllString(name, "")
	name = c.whitespace.ReplaceAllString(name, " ")

	return strings.TrimSpace(name)
}
