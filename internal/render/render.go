// Package render serializes assembled documents to the two export
// formats: plain text and minimal RTF. Both serializers are pure
// functions of their input; the calling layer owns the file download.
package render

import (
	"strings"

	"github.com/gp-assess/platform/internal/report"
)

// Format identifies an export format.
type Format string

const (
	FormatText Format = "text"
	FormatRTF  Format = "rtf"
)

// ParseFormat normalises a format query value. Unknown values report
// ok=false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "text", "txt", "plain":
		return FormatText, true
	case "rtf":
		return FormatRTF, true
	}
	return "", false
}

// MIME returns the format's content type
func (f Format) MIME() string {
	if f == FormatRTF {
		return "application/rtf"
	}
	return "text/plain"
}

// Ext returns the format's file extension without the dot
func (f Format) Ext() string {
	if f == FormatRTF {
		return "rtf"
	}
	return "txt"
}

// Document is one titled sequence of sections. Appended sub-documents
// (completed-instrument reports) are further Documents.
type Document struct {
	Title    string
	Sections []report.Section
}

// Serialize renders the document and any appendices in the given
// format. An empty document still produces a validly formatted file.
func Serialize(format Format, doc Document, appendices ...Document) []byte {
	if format == FormatRTF {
		return RTF(doc, appendices...)
	}
	return PlainText(doc, appendices...)
}
