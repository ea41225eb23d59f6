package main

import (
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// pastedText turns clipboard contents into a single line of meme text.
// Rich text and HTML markup are dropped and whitespace runs collapse to one
// space.
func pastedText(raw string) string {
	switch {
	case isRTF(raw):
		raw = rtfToText(raw)
	case isHTML(raw):
		raw = htmlToText(raw)
	}
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	text := strings.Join(strings.Fields(raw), " ")
	if runes := []rune(text); len(runes) > maxTextLength {
		text = strings.TrimSpace(string(runes[:maxTextLength]))
	}
	return text
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "<") {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") || strings.Contains(lower, "<span") || strings.Contains(lower, "<p")
}

// rtfToText keeps the literal text of an RTF document. Control words are
// skipped, except \par and \line which become spaces, and escaped braces and
// backslashes are kept.
func rtfToText(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
		default:
			if r != '\n' && r != '\r' {
				out.WriteRune(r)
			}
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		if next == '\\' || next == '{' || next == '}' {
			out.WriteRune(next)
			i++
			continue
		}
		if !unicode.IsLetter(next) {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		word := string(runes[i+1 : j])
		for j < len(runes) && (runes[j] == '-' || unicode.IsDigit(runes[j])) {
			j++
		}
		if j < len(runes) && runes[j] == ' ' {
			j++
		}
		if word == "par" || word == "line" || word == "tab" {
			out.WriteByte(' ')
		}
		i = j - 1
	}
	return out.String()
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func htmlToText(html string) string {
	var out strings.Builder
	out.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
			out.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return htmlEntities.Replace(out.String())
}
