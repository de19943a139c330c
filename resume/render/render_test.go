package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"resume-generator/resume/content"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document><w:body>
<w:p><w:r><w:t>{title}</w:t></w:r></w:p>
<w:p><w:r><w:t>{lastJob}</w:t></w:r></w:p>
<w:p><w:r><w:t>{summary}</w:t></w:r></w:p>
{#skills}<w:p><w:r><w:t>{category}: {items}</w:t></w:r></w:p>{/skills}
{#bullets1}<w:p>{#bullet}<w:r><w:t>{plain}</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>{bold}</w:t></w:r>{/bullet}</w:p>{/bullets1}
{#bullets2}<w:p>{#bullet}<w:r><w:t>{plain}</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>{bold}</w:t></w:r>{/bullet}</w:p>{/bullets2}
{#bullets3}<w:p>{#bullet}<w:r><w:t>{plain}</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>{bold}</w:t></w:r>{/bullet}</w:p>{/bullets3}
</w:body></w:document>`

func buildTemplate(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func extractDocumentXML(t *testing.T, docxBytes []byte) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("open rendered docx: %v", err)
	}
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			data, err := readZipFile(file)
			if err != nil {
				t.Fatalf("read document.xml: %v", err)
			}
			return string(data)
		}
	}
	t.Fatalf("rendered docx missing word/document.xml")
	return ""
}

func sampleContent() content.ResumeContent {
	return content.ResumeContent{
		CompanyName: "Acme",
		RoleTitle:   "Backend Engineer",
		Summary:     "A **strong** backend generalist",
		SkillGroups: []content.SkillGroup{
			{Category: "Languages", Items: []string{"Go", "Rust"}},
			{Category: "Storage", Items: []string{"Postgres"}},
		},
		ExperienceFirst:  []string{"Led **3** engineers", "No emphasis here"},
		ExperienceSecond: []string{"Cut latency by **40%**"},
		ExperienceThird:  []string{},
	}
}

func TestRenderSubstitutesContract(t *testing.T) {
	template := buildTemplate(t, testDocumentXML)

	docx, err := Render(template, sampleContent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	documentXML := extractDocumentXML(t, docx)

	for _, want := range []string{
		"Backend Engineer",
		"A strong backend generalist", // summary emphasis stripped, not reproduced
		"Languages: Go, Rust",
		"Storage: Postgres",
		"Led ",
		"<w:b/></w:rPr><w:t>3</w:t>",
		"No emphasis here",
		"Cut latency by ",
		"<w:b/></w:rPr><w:t>40%</w:t>",
	} {
		if !strings.Contains(documentXML, want) {
			t.Fatalf("document.xml missing %q\n%s", want, documentXML)
		}
	}
	for _, leftover := range []string{"{title}", "{summary}", "{#skills}", "{/bullets1}", "{plain}", "{bold}"} {
		if strings.Contains(documentXML, leftover) {
			t.Fatalf("document.xml still contains %q", leftover)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	template := buildTemplate(t, testDocumentXML)

	first, err := Render(template, sampleContent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(template, sampleContent())
	if err != nil {
		t.Fatalf("Render again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("renderer is not deterministic for fixed inputs")
	}
}

func TestRenderEscapesXMLText(t *testing.T) {
	template := buildTemplate(t, testDocumentXML)
	c := sampleContent()
	c.Summary = "Ships <fast> & safe"

	docx, err := Render(template, c)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	documentXML := extractDocumentXML(t, docx)
	if !strings.Contains(documentXML, "Ships &lt;fast&gt; &amp; safe") {
		t.Fatalf("expected escaped summary, got:\n%s", documentXML)
	}
}

func TestRenderRejectsNonContainer(t *testing.T) {
	if _, err := Render([]byte("definitely not a zip"), sampleContent()); !errors.Is(err, ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestRenderRejectsMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("mimetype")
	w.Write([]byte("application/zip"))
	zw.Close()

	if _, err := Render(buf.Bytes(), sampleContent()); !errors.Is(err, ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestRenderRejectsUnbalancedBlock(t *testing.T) {
	template := buildTemplate(t, `<w:document><w:body>{#skills}{category}</w:body></w:document>`)

	if _, err := Render(template, sampleContent()); !errors.Is(err, ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestRenderAllowsBraceTokensInContent(t *testing.T) {
	template := buildTemplate(t, testDocumentXML)
	c := sampleContent()
	c.Summary = "Built tooling around {JSON} payloads daily"
	c.ExperienceFirst = []string{"Parsed **{nested}** config blocks"}

	docx, err := Render(template, c)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	documentXML := extractDocumentXML(t, docx)
	if !strings.Contains(documentXML, "Built tooling around {JSON} payloads daily") {
		t.Fatalf("brace token in summary not carried through:\n%s", documentXML)
	}
	if !strings.Contains(documentXML, "{nested}") {
		t.Fatalf("brace token in bullet not carried through:\n%s", documentXML)
	}
}

func TestRenderRejectsUnknownPlaceholder(t *testing.T) {
	template := buildTemplate(t, `<w:document><w:body><w:t>{title} {salary}</w:t></w:body></w:document>`)

	if _, err := Render(template, sampleContent()); !errors.Is(err, ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestExpandBlockEmptySlice(t *testing.T) {
	out, err := expandBlock("a{#skills}X{/skills}b", "skills", 0, func(string, int) (string, error) {
		t.Fatal("renderItem should not run for empty slice")
		return "", nil
	})
	if err != nil {
		t.Fatalf("expandBlock: %v", err)
	}
	if out != "ab" {
		t.Fatalf("expandBlock = %q, want ab", out)
	}
}
