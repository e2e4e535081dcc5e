// Package format holds locale-aware formatting helpers for templates.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ptMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// FmtDate formats time in a locale-friendly short form. The zero time renders empty.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "pt":
		return t.Format("2") + " " + ptMonths[t.Month()-1] + " " + t.Format("2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate renders the machine-readable form used in <time datetime>.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Year returns the calendar year of t as shown in the footer.
func Year(t time.Time) int { return t.Year() }

// TagLabel title-cases a tag for display, e.g. "hard-surface" -> "Hard-Surface".
// Tags that already carry capitals (UE5, PBR) are left alone.
func TagLabel(tag, lang string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag != strings.ToLower(tag) {
		return tag
	}
	return cases.Title(language.Make(lang)).String(tag)
}
