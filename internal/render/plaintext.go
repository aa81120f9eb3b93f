package render

import "strings"

const textDivider = "============================================================"

// PlainText renders the document as plain text: the title, then each
// section as an uppercase heading line followed by its content lines,
// with a blank line between sections. Appendices follow under a divider
// line. No escaping is needed.
func PlainText(doc Document, appendices ...Document) []byte {
	var b strings.Builder
	writePlainDocument(&b, doc)

	for _, appendix := range appendices {
		b.WriteString("\n")
		b.WriteString(textDivider)
		b.WriteString("\n\n")
		writePlainDocument(&b, appendix)
	}

	return []byte(b.String())
}

func writePlainDocument(b *strings.Builder, doc Document) {
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}

	for i, section := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.ToUpper(section.Heading))
		b.WriteString("\n")
		for _, line := range section.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
}
