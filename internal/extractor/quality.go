package extractor

import (
	"regexp"
	"sort"
	"strconv"
)

// DefaultQuality is returned when no allow-listed resolution is found
const DefaultQuality = "720P"

// allowedQualities is the fixed resolution allow-list
var allowedQualities = map[int]bool{
	144:  true,
	240:  true,
	360:  true,
	480:  true,
	720:  true,
	1080: true,
	1440: true,
	2160: true,
}

// compileQualityPatterns returns the ordered quality patterns. The bare
// NNNp form is tried first, then bracketed and labeled forms. The label
// variants cover the small-caps decoration some channels use.
func compileQualityPatterns() []*regexp.Regexp {
	patterns := []string{
		`(\d+)[pP]`,
		`\[(\d+)[pP]?\]`,
		`Qᴜᴀʟɪᴛʏ\s*:\s*(\d+)[pP]?`,
		`QUALITY\s*:\s*(\d+)[pP]?`,
		`(\d+)\s*[pP]`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+pattern))
	}
	return compiled
}

// ExtractQuality scans for a resolution token and validates it against the
// allow-list. A matched number outside the allow-list does not stop the
// scan; later patterns still get a chance. Unmatched input yields the
// default. The result always carries the P suffix.
func (e *Extractor) ExtractQuality(text string) string {
	for _, pattern := range e.qualityPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if allowedQualities[number] {
			return m[1] + "P"
		}
	}

	return DefaultQuality
}

// AllowedQualities returns the allow-list in ascending order, P-suffixed
func AllowedQualities() []string {
	values := make([]int, 0, len(allowedQualities))
	for v := range allowedQualities {
		values = append(values, v)
	}
	sort.Ints(values)

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v) + "P"
	}
	return out
}
