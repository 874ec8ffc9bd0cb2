package render

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal
const DefaultWidth = 80

// TerminalWidth returns the width of the terminal attached to f
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// WrapText wraps text to width display columns. Words are split on spaces;
// runs of wide characters (CJK) without spaces are broken between runes.
func WrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		for runewidth.StringWidth(word) > width {
			if currentLine != "" {
				result = append(result, currentLine)
				currentLine = ""
			}
			head := runewidth.Truncate(word, width, "")
			result = append(result, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}

		switch {
		case currentLine == "":
			currentLine = word
		case runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Width returns the visible column width of s, ignoring escape sequences
func Width(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// PadRight pads s with spaces to width visible columns
func PadRight(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
