package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds an ESC/POS byte stream for thermal printers. It also
// keeps a plain-text mirror of everything printed so the same render can
// be archived to disk next to the bill.
type Document struct {
	buf   bytes.Buffer
	plain strings.Builder
	align int
	width int // print width in characters (default 32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	d.plain.WriteByte('\n')
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.LineFeed()
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.align = align
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// line writes s to both the raw stream and the plain mirror, applying
// the current alignment to the mirror (the printer handles its own).
func (d *Document) line(s string) {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)

	pad := d.width - len(s)
	switch {
	case d.align == AlignCenter && pad > 1:
		d.plain.WriteString(strings.Repeat(" ", pad/2))
	case d.align == AlignRight && pad > 0:
		d.plain.WriteString(strings.Repeat(" ", pad))
	}
	d.plain.WriteString(s)
	d.plain.WriteByte('\n')
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.line(s)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.line(fmt.Sprintf(format, args...))
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.line(strings.Repeat(string(char), d.width))
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal              Rs.390.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.line(key + strings.Repeat(" ", spaces) + value)
	return d
}

// ItemLine prints a bill item line: qty x name (size), then right-aligned
// line total. Long names are truncated so the amount column stays fixed.
// Example: "2x Latte (M)          Rs.300.00"
func (d *Document) ItemLine(qty int, name, size, total string) *Document {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	if size != "" {
		prefix += " (" + size + ")"
	}
	max := d.width - len(total) - 1
	if max > 0 && len(prefix) > max {
		prefix = prefix[:max]
	}
	spaces := d.width - len(prefix) - len(total)
	if spaces < 1 {
		spaces = 1
	}
	d.line(prefix + strings.Repeat(" ", spaces) + total)
	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// PlainText returns the printable text without ESC/POS control bytes.
func (d *Document) PlainText() string {
	return d.plain.String()
}

// Reset clears both buffers and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.plain.Reset()
	d.align = AlignLeft
	d.Init()
	return d
}
