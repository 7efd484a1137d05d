package parser

import (
	"strings"
	"testing"
)

func TestForFile_SupportedFormats(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.DOCX", "cv.txt", "cv.md", "cv.html"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("%s: expected a parser, got %v", name, err)
		}
	}
	if _, err := ForFile("cv.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestTextParser_SinglePageWithLines(t *testing.T) {
	input := "Jane Doe\nSenior Designer\n\nSkills\nFigma, Jira\n"
	pages, err := (&TextParser{}).Parse(strings.NewReader(input), "cv.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("expected one page numbered 1, got %+v", pages)
	}
	if !strings.Contains(pages[0].Text, "Skills\nFigma, Jira") {
		t.Errorf("line structure not preserved: %q", pages[0].Text)
	}
}

func TestCleanPage_StripsNullBytesAndTrims(t *testing.T) {
	if got := cleanPage("  Jane\x00 Doe \n"); got != "Jane Doe" {
		t.Errorf("got %q", got)
	}
}

func TestMarkdownParser_HeadingsAndBulletsBecomeLines(t *testing.T) {
	input := "# Jane Doe\n\nSenior Designer\n\n## Work Experience\n\nDesigner - Acme, Berlin\n\n- Built X\n- Shipped Y\n"
	pages, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "cv.md")
	if err != nil {
		t.Fatal(err)
	}
	text := pages[0].Text
	for _, want := range []string{"Jane Doe", "Work Experience", "Designer - Acme, Berlin", "• Built X"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected line %q in output:\n%s", want, text)
		}
	}
}

func TestHTMLParser_FlattensToLines(t *testing.T) {
	input := `<html><head><style>p{}</style></head><body>
		<h1>Jane Doe</h1><p>Senior Designer</p>
		<h2>Skills</h2><ul><li>Figma</li><li>Jira</li></ul>
	</body></html>`
	pages, err := (&HTMLParser{}).Parse(strings.NewReader(input), "cv.html")
	if err != nil {
		t.Fatal(err)
	}
	text := pages[0].Text
	for _, want := range []string{"Jane Doe", "Skills", "• Figma"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "p{}") {
		t.Error("style content leaked into output")
	}
}
