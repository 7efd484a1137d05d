package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/Ahlawat23/resumekeeper/internal/document"
)

// TextParser handles plain text resumes as a single page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return singlePage(strings.Join(lines, "\n")), nil
}
