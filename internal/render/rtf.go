package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// headingLine matches an all-caps line with limited punctuation, the
// convention for section headings inside raw report text.
var headingLine = regexp.MustCompile(`^[A-Z][A-Z0-9 \-/&()']*$`)

// RTF renders the document and any appendices as a minimal rich-text
// file: one top-level group declaring a single default font, one
// paragraph group per line. Each appendix starts on a new page with its
// own bold title paragraph.
func RTF(doc Document, appendices ...Document) []byte {
	var b strings.Builder
	b.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0\fnil\fcharset0 Calibri;}}\f0\fs22`)
	b.WriteString("\n")

	writeRTFDocument(&b, doc, false)
	for _, appendix := range appendices {
		writeRTFDocument(&b, appendix, true)
	}

	b.WriteString("}")
	return []byte(b.String())
}

func writeRTFDocument(b *strings.Builder, doc Document, pageBreak bool) {
	if pageBreak {
		b.WriteString(`\page`)
		b.WriteString("\n")
	}

	if doc.Title != "" {
		fmt.Fprintf(b, `{\pard\sa200\b\fs28 %s\par}`, escapeRTF(doc.Title))
		b.WriteString("\n")
	}

	for _, section := range doc.Sections {
		fmt.Fprintf(b, `{\pard\sb200\sa100\b\ul %s\ulnone\b0\par}`, escapeRTF(strings.ToUpper(section.Heading)))
		b.WriteString("\n")
		for _, line := range section.Lines {
			writeRTFLine(b, line)
		}
	}
}

func writeRTFLine(b *strings.Builder, line string) {
	switch {
	case line == "":
		// Empty paragraph for vertical spacing.
		b.WriteString(`{\pard\par}`)
	case strings.HasPrefix(line, "- "):
		// Hanging indent with the bullet re-inserted after the
		// "- " prefix is stripped.
		fmt.Fprintf(b, `{\pard\fi-240\li360\sa40 \bullet  %s\par}`, escapeRTF(line[2:]))
	case headingLine.MatchString(line):
		fmt.Fprintf(b, `{\pard\sb200\sa100\b\ul %s\ulnone\b0\par}`, escapeRTF(line))
	default:
		fmt.Fprintf(b, `{\pard\sa40 %s\par}`, escapeRTF(line))
	}
	b.WriteString("\n")
}

// escapeRTF escapes RTF control characters in text content: backslash
// first, then braces, so an escape is never itself re-escaped.
// Characters outside 7-bit ASCII are emitted as unicode control words.
func escapeRTF(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `{`, `\{`)
	s = strings.ReplaceAll(s, `}`, `\}`)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\line `)
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFFFF:
			// RTF \u takes a signed 16-bit value; the trailing '?'
			// is the fallback for readers without unicode support.
			fmt.Fprintf(&b, `\u%d?`, int16(r))
		default:
			// Runes beyond the BMP are written as a UTF-16
			// surrogate pair, one control word per half.
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%d?\u%d?`, int16(hi), int16(lo))
		}
	}
	return b.String()
}
