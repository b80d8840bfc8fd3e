// Package extract turns uploaded curriculum documents into plain text.
// Bytes in, best-effort text out, or an explicit error — never a crash.
package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	rpdf "rsc.io/pdf"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// Document is a named blob handed over by the surface: a syllabus PDF,
// a plain-text source, whatever the teacher picked.
type Document struct {
	Name string
	Data []byte
}

// IsPDF reports whether the document looks like a PDF.
func (d Document) IsPDF() bool {
	return bytes.HasPrefix(d.Data, pdfMagic)
}

// Text extracts plain text from the document. PDFs are extracted per
// page and concatenated with newline separators; anything else is
// treated as UTF-8 plain text.
func Text(doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", &Error{Name: doc.Name, Reason: "document is empty"}
	}
	if doc.IsPDF() {
		return pdfText(doc)
	}
	if !utf8.Valid(doc.Data) {
		return "", &Error{Name: doc.Name, Reason: "not a PDF and not valid UTF-8 text"}
	}
	return string(doc.Data), nil
}

// pdfText extracts the text of every page. The pdf library panics on
// malformed files, so the whole walk runs under a recover.
func pdfText(doc Document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Name: doc.Name, Reason: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	reader, rerr := rpdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if rerr != nil {
		return "", &Error{Name: doc.Name, Reason: rerr.Error()}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		b.WriteString(pageText(page))
		b.WriteString("\n")
	}

	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", &Error{Name: doc.Name, Reason: "no extractable text (scanned or image-only PDF?)"}
	}
	return out, nil
}

// pageText reassembles a page's text fragments into reading order:
// top-to-bottom by Y, left-to-right within a line.
func pageText(page rpdf.Page) string {
	frags := page.Content().Text
	if len(frags) == 0 {
		return ""
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y // PDF Y grows upward
		}
		return frags[i].X < frags[j].X
	})

	var b strings.Builder
	lastY := frags[0].Y
	for _, f := range frags {
		if f.Y != lastY {
			b.WriteString("\n")
			lastY = f.Y
		}
		b.WriteString(f.S)
	}
	return b.String()
}
