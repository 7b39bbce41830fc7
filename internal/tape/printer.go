package tape

import "strings"

// Printer accumulates tape output, optionally in fixed-size letter groups
// separated by a single space.
type Printer struct {
	groupSize int
	inGroup   int
	buf       strings.Builder
}

// NewPrinter returns a printer. A groupSize of zero or less prints runes
// as they come.
func NewPrinter(groupSize int) *Printer {
	return &Printer{groupSize: groupSize}
}

func (p *Printer) Print(r rune) {
	if p.groupSize > 0 {
		if p.inGroup == p.groupSize {
			p.buf.WriteByte(' ')
			p.inGroup = 0
		}
		p.inGroup++
	}
	p.buf.WriteRune(r)
}

func (p *Printer) String() string {
	return p.buf.String()
}

// Len is the number of bytes printed so far, separators included.
func (p *Printer) Len() int {
	return p.buf.Len()
}

// Reset tears off the tape.
func (p *Printer) Reset() {
	p.buf.Reset()
	p.inGroup = 0
}
