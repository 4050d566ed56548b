// Package formatter turns raw captions into normalized leech-command
// strings. It glues the extractor, cleaner, and rotator together and is
// the only place the output wire format is assembled.
package formatter

import (
	"fmt"
	"strings"

	"github.com/avenkat/caprelay/internal/cleaner"
	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/extractor"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/rotation"
	"github.com/avenkat/caprelay/internal/settings"
	"github.com/avenkat/caprelay/internal/stats"
)

// DefaultTitle is used when neither the caption nor the fixed-name
// override yields a usable title.
const DefaultTitle = "Unknown Anime"

// Formatter builds output captions. All dependencies are required except
// stats, which may be nil.
type Formatter struct {
	extractor    *extractor.Extractor
	cleaner      *cleaner.Cleaner
	rotator      *rotation.Rotator
	settings     *settings.Settings
	stats        *stats.Stats
	defaultTitle string
}

// New creates a Formatter
func New(ext *extractor.Extractor, cln *cleaner.Cleaner, rot *rotation.Rotator, set *settings.Settings, st *stats.Stats, defaultTitle string) *Formatter {
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}
	return &Formatter{
		extractor:    ext,
		cleaner:      cln,
		rotator:      rot,
		settings:     set,
		stats:        st,
		defaultTitle: defaultTitle,
	}
}

// Format rewrites a raw caption into the output command string.
//
// Empty or whitespace-only input returns an empty-caption error before any
// shared state is touched: the rotation counter and the stats counters are
// left exactly as they were.
func (f *Formatter) Format(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.EmptyCaptionError()
	}

	f.recordProcessed()

	info := f.extractor.ExtractEpisodeInfo(raw)
	quality := f.extractor.ExtractQuality(raw)
	language := f.extractor.ExtractLanguage(raw)

	title := f.settings.FixedName()
	if title == "" {
		title = f.cleaner.Clean(info.Title)
	}
	if title == "" {
		title = f.defaultTitle
	}

	if language != "" && !strings.Contains(title, language) {
		title = title + " " + language
	}

	tag := fmt.Sprintf("[S%s-E%s]", info.Season, info.Episode)
	prefix := f.rotator.Next()
	out := fmt.Sprintf("%s %s %s [%s] [Single]%s", prefix, tag, title, quality, sniffExtension(raw))

	f.recordFormatted()
	logger.AppLogger().WithFields(map[string]interface{}{
		"title":   title,
		"tag":     tag,
		"quality": quality,
	}).Debug("caption formatted")

	return out, nil
}

// sniffExtension picks the output container extension from the raw caption.
// Only mp4 and avi are recognized; everything else becomes mkv.
func sniffExtension(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, ".mp4"):
		return ".mp4"
	case strings.Contains(lower, ".avi"):
		return ".avi"
	default:
		return ".mkv"
	}
}

func (f *Formatter) recordProcessed() {
	if f.stats != nil {
		f.stats.RecordProcessed()
	}
}

func (f *Formatter) recordFormatted() {
	if f.stats != nil {
		f.stats.RecordFormatted()
	}
}
