// Package linescan reads text line by line, accepting "\n", "\r\n" and a
// bare "\r" as line ends. Lines are not length-capped.
package linescan

import (
	"bufio"
	"bytes"
	"io"
	"math"
)

const initialBufSize = 64 * 1024

// New returns a Scanner over r whose tokens are lines without their
// terminator. A line ending in a bare "\r" is emitted as soon as the "\r"
// is read.
func New(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialBufSize), math.MaxInt)
	sc.Split(splitter())
	return sc
}

func splitter() bufio.SplitFunc {
	afterCR := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if afterCR && len(data) > 0 {
			afterCR = false
			if data[0] == '\n' {
				return 1, nil, nil
			}
		}
		if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
			afterCR = data[i] == '\r'
			return i + 1, data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
