package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Format identifies the encoding profile selected for a file.
type Format string

const (
	FormatMovie   Format = "movie"
	FormatTVShow  Format = "tvshow"
	FormatCustom  Format = "custom"
	FormatPreview Format = "preview"
)

// Rules are evaluated in order; the first match wins.
var (
	reSeasonEpisode = regexp.MustCompile(`(?i)^(.*?)[.\s_-]+s(\d{1,2})[\s._-]?e(\d{1,3})`)
	reParenYear     = regexp.MustCompile(`^(.+?)[\s._]*\((19\d{2}|20\d{2})\)`)
)

// ParsedName holds the structured result of filename classification.
type ParsedName struct {
	Format  Format
	Show    string
	Season  int
	Episode int
	Title   string
	Year    string
}

// ParseFormat validates an explicit format override. Matching is
// case-sensitive and exact; preview is not a selectable override.
func ParseFormat(value string) (Format, bool) {
	switch Format(value) {
	case FormatMovie, FormatTVShow, FormatCustom:
		return Format(value), true
	default:
		return "", false
	}
}

// Detect returns the format for a bare filename (no path component).
func Detect(filename string) Format {
	return Parse(filename).Format
}

// Parse classifies a bare filename and extracts the naming components the
// matched rule provides.
func Parse(filename string) ParsedName {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	if m := reSeasonEpisode.FindStringSubmatch(base); m != nil {
		return ParsedName{
			Format:  FormatTVShow,
			Show:    cleanName(m[1]),
			Season:  atoi(m[2]),
			Episode: atoi(m[3]),
		}
	}

	if m := reParenYear.FindStringSubmatch(base); m != nil {
		return ParsedName{
			Format: FormatMovie,
			Title:  cleanName(m[1]),
			Year:   m[2],
		}
	}

	return ParsedName{Format: FormatCustom, Title: cleanName(base)}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func cleanName(name string) string {
	var b strings.Builder
	prevSpace := false
	for _, r := range name {
		switch r {
		case '.', '_', '-':
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		case ' ':
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
