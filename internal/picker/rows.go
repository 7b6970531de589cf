package picker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches escape sequences a file name could smuggle into the
// terminal: CSI, OSC (BEL or ST terminated), charset designations and other
// two-byte escapes.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`|` +
	`[#()*+\-./][A-Za-z0-9]` +
	`)`)

// extRE matches the final extension of a path, never crossing a slash.
var extRE = regexp.MustCompile(`\.[^/.]+$`)

const ellipsis = "…"

// DisplayName is the row text for a path: the path without its extension.
// "notes/todo.md" becomes "notes/todo"; "notes.d/readme" is unchanged.
func DisplayName(path string) string {
	return extRE.ReplaceAllString(path, "")
}

// CleanName makes a file name printable on a single terminal line. Escape
// sequences are dropped, invalid UTF-8 becomes U+FFFD and any other
// control character (a newline in a file name, say) becomes '?'.
func CleanName(s string) string {
	s = strings.ToValidUTF8(ansiRE.ReplaceAllString(s, ""), "�")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}

// TruncatePath fits a vault path into maxWidth display columns. The file
// name is kept whole when it fits and the directory part is cut, at a
// slash when possible: "journal/2024/january/entry" at 16 columns becomes
// "journal/…/entry". Otherwise the middle of the path is elided.
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}

	slash := strings.LastIndexByte(path, '/')
	if slash <= 0 {
		return middleTruncate(path, maxWidth)
	}
	dir, name := path[:slash], path[slash+1:]
	budget := maxWidth - runewidth.StringWidth(name) - 2
	if budget < 1 {
		return middleTruncate(path, maxWidth)
	}

	head := truncateLeft(dir, budget)
	if i := strings.LastIndexByte(head, '/'); i > 0 {
		head = head[:i+1]
	}
	return head + ellipsis + "/" + name
}

// rowText prepares a path for a list row within maxWidth columns; zero
// means unlimited.
func rowText(path string, maxWidth int) string {
	s := CleanName(DisplayName(path))
	if maxWidth > 0 {
		s = TruncatePath(s, maxWidth)
	}
	return s
}

// middleTruncate replaces the middle of s with an ellipsis. Wide runes
// count as two columns. Below 3 columns s is cut from the right.
func middleTruncate(s string, maxWidth int) string {
	if maxWidth < 3 {
		return truncateLeft(s, maxWidth)
	}
	remaining := maxWidth - 1
	return truncateLeft(s, (remaining+1)/2) + ellipsis + truncateRight(s, remaining/2)
}

// truncateLeft returns the longest prefix of s fitting in maxWidth columns.
func truncateLeft(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// truncateRight returns the longest suffix of s fitting in maxWidth columns.
func truncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
