package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText_PlainUTF8(t *testing.T) {
	doc := Document{Name: "syllabus.txt", Data: []byte("Kursplan i modersmål\nÅrskurs 4-6")}
	got, err := Text(doc)
	require.NoError(t, err)
	require.Equal(t, "Kursplan i modersmål\nÅrskurs 4-6", got)
}

func TestText_GreekText(t *testing.T) {
	doc := Document{Name: "source.txt", Data: []byte("Η Αθήνα είναι η πρωτεύουσα της Ελλάδας.")}
	got, err := Text(doc)
	require.NoError(t, err)
	require.Contains(t, got, "Αθήνα")
}

func TestText_Empty(t *testing.T) {
	_, err := Text(Document{Name: "empty.txt"})
	var exErr *Error
	require.True(t, errors.As(err, &exErr))
	require.Contains(t, exErr.Error(), "empty.txt")
}

func TestText_BinaryGarbage(t *testing.T) {
	_, err := Text(Document{Name: "blob.bin", Data: []byte{0xff, 0xfe, 0x00, 0x92}})
	var exErr *Error
	require.True(t, errors.As(err, &exErr))
}

func TestText_TruncatedPDF(t *testing.T) {
	// Carries the PDF magic but no structure; must error, not panic.
	doc := Document{Name: "broken.pdf", Data: []byte("%PDF-1.7\nthis is not a real pdf")}
	_, err := Text(doc)
	var exErr *Error
	require.True(t, errors.As(err, &exErr))
	require.NotEmpty(t, exErr.Reason)
}

func TestIsPDF(t *testing.T) {
	require.True(t, Document{Data: []byte("%PDF-1.4 rest")}.IsPDF())
	require.False(t, Document{Data: []byte("plain text")}.IsPDF())
}
