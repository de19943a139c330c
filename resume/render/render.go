package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"resume-generator/resume/content"
)

// ErrTemplate indicates the template cannot be parsed as a document
// container or its placeholder set does not match the content contract.
var ErrTemplate = errors.New("template error")

const documentEntry = "word/document.xml"

// Tag names form a fixed contract between this system and the template
// author: title, lastJob, summary, the skills loop with category/items,
// and three bullet loops with plain/bold segment tags.
var bulletBlocks = []string{"bullets1", "bullets2", "bullets3"}

var tagPattern = regexp.MustCompile(`\{[#/]?[A-Za-z][A-Za-z0-9_]*\}`)

// contractTags is the full placeholder set a template may use. Anything
// else in the template is a template error. Validation runs on the
// template text before substitution, so brace tokens inside content
// values are never mistaken for tags.
var contractTags = map[string]bool{
	"{title}":     true,
	"{lastJob}":   true,
	"{summary}":   true,
	"{#skills}":   true,
	"{/skills}":   true,
	"{category}":  true,
	"{items}":     true,
	"{#bullets1}": true,
	"{/bullets1}": true,
	"{#bullets2}": true,
	"{/bullets2}": true,
	"{#bullets3}": true,
	"{/bullets3}": true,
	"{#bullet}":   true,
	"{/bullet}":   true,
	"{plain}":     true,
	"{bold}":      true,
}

// Render merges structured resume content into a docx template and returns
// the rendered document. It is a pure function: the same template and
// content always produce byte-identical output.
func Render(templateBytes []byte, c content.ResumeContent) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a document container: %v", ErrTemplate, err)
	}

	var documentFile *zip.File
	for _, file := range reader.File {
		if normalizeZipName(file.Name) == documentEntry {
			documentFile = file
			break
		}
	}
	if documentFile == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrTemplate, documentEntry)
	}

	documentXML, err := readZipFile(documentFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrTemplate, documentEntry, err)
	}

	rendered, err := renderDocumentText(string(documentXML), c)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, file := range reader.File {
		fileContent := []byte(rendered)
		if normalizeZipName(file.Name) != documentEntry {
			fileContent, err = readZipFile(file)
			if err != nil {
				return nil, fmt.Errorf("%w: read %s: %v", ErrTemplate, file.Name, err)
			}
		}
		if err := writeZipFile(writer, file, fileContent); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return output.Bytes(), nil
}

func renderDocumentText(text string, c content.ResumeContent) (string, error) {
	for _, tag := range tagPattern.FindAllString(text, -1) {
		if !contractTags[tag] {
			return "", fmt.Errorf("%w: unknown placeholder %s", ErrTemplate, tag)
		}
	}

	text, err := expandBlock(text, "skills", len(c.SkillGroups), func(body string, i int) (string, error) {
		group := c.SkillGroups[i]
		body = replaceTag(body, "category", group.Category)
		body = replaceTag(body, "items", strings.Join(group.Items, ", "))
		return body, nil
	})
	if err != nil {
		return "", err
	}

	bulletSlices := [][]string{c.ExperienceFirst, c.ExperienceSecond, c.ExperienceThird}
	for blockIdx, block := range bulletBlocks {
		bullets := bulletSlices[blockIdx]
		text, err = expandBlock(text, block, len(bullets), func(body string, i int) (string, error) {
			segments := content.SplitBullet(bullets[i])
			return expandBlock(body, "bullet", len(segments), func(inner string, j int) (string, error) {
				seg := segments[j]
				plain, bold := seg.Text, ""
				if seg.Bold {
					plain, bold = "", seg.Text
				}
				inner = replaceTag(inner, "plain", plain)
				inner = replaceTag(inner, "bold", bold)
				return inner, nil
			})
		})
		if err != nil {
			return "", err
		}
	}

	text = replaceTag(text, "title", c.RoleTitle)
	text = replaceTag(text, "lastJob", c.RoleTitle)
	text = replaceTag(text, "summary", c.PlainSummary())
	return text, nil
}

// expandBlock replaces every {#name}...{/name} region with count copies of
// its body rendered through renderItem. A template without the block is
// left untouched; an unbalanced pair is a template error.
func expandBlock(text, name string, count int, renderItem func(body string, i int) (string, error)) (string, error) {
	openTag := "{#" + name + "}"
	closeTag := "{/" + name + "}"

	var out strings.Builder
	rest := text
	for {
		openIdx := strings.Index(rest, openTag)
		closeIdx := strings.Index(rest, closeTag)
		if openIdx == -1 && closeIdx == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}
		if openIdx == -1 || closeIdx < openIdx {
			return "", fmt.Errorf("%w: unbalanced block %q", ErrTemplate, name)
		}

		body := rest[openIdx+len(openTag) : closeIdx]
		out.WriteString(rest[:openIdx])
		for i := 0; i < count; i++ {
			item, err := renderItem(body, i)
			if err != nil {
				return "", err
			}
			out.WriteString(item)
		}
		rest = rest[closeIdx+len(closeTag):]
	}
}

func replaceTag(text, name, value string) string {
	return strings.ReplaceAll(text, "{"+name+"}", escapeXMLText(value))
}

var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXMLText(value string) string {
	return xmlTextEscaper.Replace(value)
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func writeZipFile(writer *zip.Writer, source *zip.File, fileContent []byte) error {
	header := source.FileHeader
	header.Name = normalizeZipName(source.Name)

	dst, err := writer.CreateHeader(&header)
	if err != nil {
		return err
	}
	if _, err := dst.Write(fileContent); err != nil {
		return err
	}
	return nil
}

func normalizeZipName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
