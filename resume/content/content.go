package content

import "strings"

// emphasisMarker is the paired marker splitting a bullet into plain and
// emphasized segments.
const emphasisMarker = "**"

// ResumeContent is the structured content merged into a developer's
// template. The field names below are a fixed contract with the template
// author; the template file decides the final layout.
type ResumeContent struct {
	CompanyName      string       `json:"companyName"`
	RoleTitle        string       `json:"roleTitle"`
	Summary          string       `json:"summary"`
	SkillGroups      []SkillGroup `json:"skills"`
	ExperienceFirst  []string     `json:"experience_first"`
	ExperienceSecond []string     `json:"experience_second"`
	ExperienceThird  []string     `json:"experience_third"`
}

// SkillGroup is one ordered category of skills.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Segment is one fragment of a bullet, either plain or emphasized.
type Segment struct {
	Text string
	Bold bool
}

// SplitBullet splits a bullet on the paired emphasis marker. Even-indexed
// segments are plain, odd-indexed segments emphasized. An unpaired marker
// leaves the dangling segment classified strictly by index parity, which
// can mis-render; that matches how the merge has always behaved.
func SplitBullet(bullet string) []Segment {
	parts := strings.Split(bullet, emphasisMarker)
	segments := make([]Segment, len(parts))
	for i, part := range parts {
		segments[i] = Segment{Text: part, Bold: i%2 == 1}
	}
	return segments
}

// SkillLine renders one skill group as "Category: item, item".
func (g SkillGroup) SkillLine() string {
	return g.Category + ": " + strings.Join(g.Items, ", ")
}

// PlainSummary returns the summary with emphasis-marker characters
// stripped wholesale. Unlike bullets, the summary never reproduces
// emphasis.
func (c ResumeContent) PlainSummary() string {
	return strings.ReplaceAll(c.Summary, "*", "")
}
