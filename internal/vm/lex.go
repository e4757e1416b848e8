package vm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineLength bounds a single program line. Real programs keep lines
// short; the limit only guards against binary input.
const maxLineLength = 1 << 20

// Line is one tokenized program line.
type Line struct {
	Number int
	Fields []string
}

// Lex splits program text into token lines, skipping blank lines and lines
// whose first non-space character is '#'.
func Lex(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Fields: strings.Fields(text)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading program at line %d: %w", n+1, err)
	}
	return lines, nil
}

// LexString is Lex over an in-memory program.
func LexString(src string) ([]Line, error) {
	return Lex(strings.NewReader(src))
}
