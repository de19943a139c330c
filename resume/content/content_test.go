package content

import (
	"reflect"
	"testing"
)

func TestSplitBulletWithEmphasis(t *testing.T) {
	got := SplitBullet("Led **3** engineers")
	want := []Segment{
		{Text: "Led ", Bold: false},
		{Text: "3", Bold: true},
		{Text: " engineers", Bold: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBullet = %#v, want %#v", got, want)
	}
}

func TestSplitBulletNoMarker(t *testing.T) {
	got := SplitBullet("No emphasis here")
	want := []Segment{{Text: "No emphasis here", Bold: false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBullet = %#v, want %#v", got, want)
	}
}

func TestSplitBulletUnpairedMarker(t *testing.T) {
	// The dangling segment stays classified by index parity.
	got := SplitBullet("Shipped **v2")
	want := []Segment{
		{Text: "Shipped ", Bold: false},
		{Text: "v2", Bold: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBullet = %#v, want %#v", got, want)
	}
}

func TestSkillLine(t *testing.T) {
	group := SkillGroup{Category: "Languages", Items: []string{"Go", "Rust"}}
	if line := group.SkillLine(); line != "Languages: Go, Rust" {
		t.Fatalf("SkillLine = %q", line)
	}
}

func TestPlainSummaryStripsMarkers(t *testing.T) {
	c := ResumeContent{Summary: "A **great** fit with *drive*"}
	if got := c.PlainSummary(); got != "A great fit with drive" {
		t.Fatalf("PlainSummary = %q", got)
	}
}
