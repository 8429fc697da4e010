package linescan

import (
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func lines(input string) []string {
	sc := New(strings.NewReader(input))
	out := []string{}
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	So(sc.Err(), ShouldBeNil)
	return out
}

func TestScanLineEnds(t *testing.T) {
	Convey("Given text with mixed line ends", t, func() {
		Convey("Then LF, CRLF and bare CR all end a line", func() {
			So(lines("a\nb\r\nc\rd"), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("Then CR-only text splits into one line per CR", func() {
			So(lines("one\rtwo\rthree\r"), ShouldResemble, []string{"one", "two", "three"})
		})

		Convey("Then blank lines are kept", func() {
			So(lines("a\n\nb\r\rc\r\n\r\nd"), ShouldResemble, []string{"a", "", "b", "", "c", "", "d"})
		})

		Convey("Then a missing final terminator still yields the last line", func() {
			So(lines("tail"), ShouldResemble, []string{"tail"})
		})

		Convey("Then empty input yields nothing", func() {
			So(lines(""), ShouldBeEmpty)
		})
	})

	Convey("Given a line longer than the default scanner cap", t, func() {
		long := strings.Repeat("x", 200*1024)

		Convey("Then it is returned whole", func() {
			So(lines(long+"\nnext"), ShouldResemble, []string{long, "next"})
		})
	})
}

func TestScanCRLFAcrossReads(t *testing.T) {
	Convey("Given a CRLF split between two reads", t, func() {
		r := &chunkReader{chunks: []string{"first\r", "\nsecond\n"}}
		sc := New(r)
		var got []string
		for sc.Scan() {
			got = append(got, sc.Text())
		}

		Convey("Then no empty line appears between them", func() {
			So(sc.Err(), ShouldBeNil)
			So(got, ShouldResemble, []string{"first", "second"})
		})
	})
}

type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if c.chunks[0] == "" {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}
