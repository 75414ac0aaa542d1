package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 4, 2)
	cw.WriteAt(1, 1, "hi")
	cw.SetOffset(0, 0)
	cw.WriteColorAt(3, 5, ColorRed, "+5")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[3;5Hhi") {
		t.Fatalf("offset not applied: %q", got)
	}
	want := "\033[5;3H" + FG(ColorRed) + "+5" + ColorReset
	if !strings.HasSuffix(got, want) {
		t.Fatalf("coloured write = %q, want suffix %q", got, want)
	}
}

func TestChunkWriterFlushesLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Fatalf("flushed %d bytes, want %d", out.Len(), len(big))
	}

	out.Reset()
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatal("second flush should write nothing")
	}
}
