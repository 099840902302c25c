package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKeyValueAlignsToWidth(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Subtotal", "390.00")

	plain := d.PlainText()
	line := strings.TrimSuffix(plain, "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Subtotal"))
	assert.True(t, strings.HasSuffix(line, "390.00"))
}

func TestDocumentItemLineTruncatesLongNames(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "An Extremely Long Menu Item Name That Overflows", "M", "300.00")

	line := strings.TrimSuffix(d.PlainText(), "\n")
	assert.LessOrEqual(t, len(line), 32)
	assert.True(t, strings.HasSuffix(line, "300.00"))
}

func TestDocumentPlainTextExcludesControlBytes(t *testing.T) {
	d := NewDocument(32)
	d.SetAlign(AlignCenter).
		SetBold(true).
		Text("Test Cafe").
		SetBold(false).
		Cut()

	plain := d.PlainText()
	assert.Contains(t, plain, "Test Cafe")
	assert.NotContains(t, plain, string(rune(ESC)))
	assert.NotContains(t, plain, string(rune(GS)))

	// The raw stream keeps them
	raw := d.Bytes()
	assert.Contains(t, string(raw), string(rune(ESC)))
}

func TestDocumentCenterAlignPadsPlainMirror(t *testing.T) {
	d := NewDocument(32)
	d.SetAlign(AlignCenter).Text("Hi")

	line := strings.TrimSuffix(d.PlainText(), "\n")
	assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", 15)))
	assert.True(t, strings.HasSuffix(line, "Hi"))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.NoError(t, p.Print([]byte("x")))

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)
}
