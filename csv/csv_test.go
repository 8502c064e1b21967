package csv

import (
	"strings"
	"testing"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		records [][]string
		force   bool
		crlf    bool
		want    string
	}{
		{
			records: [][]string{{"a", "b"}, {"c", "d"}},
			want:    "a,b\nc,d\n",
		},
		{
			records: [][]string{{"a", "b"}},
			force:   true,
			want:    "\"a\",\"b\"\n",
		},
		{
			records: [][]string{{"with,comma", "with\"quote"}},
			want:    "\"with,comma\",\"with\"\"quote\"\n",
		},
		{
			records: [][]string{{" leading", "trailing "}},
			want:    "\" leading\",\"trailing \"\n",
		},
		{
			records: [][]string{{"a", "b"}},
			crlf:    true,
			want:    "a,b\r\n",
		},
		{
			records: [][]string{{"multi\nline"}},
			crlf:    true,
			want:    "\"multi\r\nline\"\r\n",
		},
		{
			records: [][]string{{"", "x"}},
			want:    ",x\n",
		},
	}
	for _, tt := range tests {
		var (
			buf strings.Builder
			ws  = NewWriter(&buf)
		)
		ws.ForceQuote = tt.force
		ws.UseCRLF = tt.crlf
		if err := ws.WriteAll(tt.records); err != nil {
			t.Errorf("%v: unexpected error: %s", tt.records, err)
			continue
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.records, got, tt.want)
		}
	}
}

func TestWriterSemicolon(t *testing.T) {
	var (
		buf strings.Builder
		ws  = NewWriter(&buf)
	)
	ws.Comma = ';'
	if err := ws.Write([]string{"a;b", "c,d"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ws.Flush()
	if err := ws.Error(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "\"a;b\";c,d\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
