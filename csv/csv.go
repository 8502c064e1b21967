// Package csv writes RFC 4180 style records with configurable quoting
// and line endings.
package csv

import (
	"bufio"
	"io"
	"strings"
)

const (
	quote = '"'
	nl    = '\n'
	cr    = '\r'
	space = ' '
)

type Writer struct {
	inner *bufio.Writer

	ForceQuote bool
	UseCRLF    bool
	Comma      byte
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		inner: bufio.NewWriter(w),
		Comma: ',',
	}
	return &ws
}

func (w *Writer) WriteAll(data [][]string) error {
	for _, d := range data {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	return w.inner.Flush()
}

func (w *Writer) Write(record []string) error {
	for i, str := range record {
		if i > 0 {
			if err := w.inner.WriteByte(w.Comma); err != nil {
				return err
			}
		}
		var err error
		if w.needQuotes(str) {
			err = w.writeQuoted(str)
		} else {
			_, err = w.inner.WriteString(str)
		}
		if err != nil {
			return err
		}
	}
	return w.writeEOL()
}

func (w *Writer) Flush() {
	w.inner.Flush()
}

func (w *Writer) Error() error {
	_, err := w.inner.Write(nil)
	return err
}

func (w *Writer) writeEOL() error {
	if w.UseCRLF {
		if err := w.inner.WriteByte(cr); err != nil {
			return err
		}
	}
	return w.inner.WriteByte(nl)
}

func (w *Writer) writeQuoted(str string) error {
	if err := w.inner.WriteByte(quote); err != nil {
		return err
	}
	for i := 0; i < len(str); i++ {
		var err error
		switch c := str[i]; c {
		case quote:
			w.inner.WriteByte(c)
			err = w.inner.WriteByte(c)
		case cr:
			if w.UseCRLF {
				err = w.inner.WriteByte(c)
			}
		case nl:
			err = w.writeEOL()
		default:
			err = w.inner.WriteByte(c)
		}
		if err != nil {
			return err
		}
	}
	return w.inner.WriteByte(quote)
}

func (w *Writer) needQuotes(str string) bool {
	if w.ForceQuote {
		return true
	}
	if str == "" {
		return false
	}
	if str[0] == space || str[len(str)-1] == space {
		return true
	}
	return strings.ContainsAny(str, string([]byte{w.Comma, quote, cr, nl}))
}
