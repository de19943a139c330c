package resumes

import "regexp"

var roleTitleSeparators = regexp.MustCompile(`[\s/]+`)

// DeriveName builds the artifact identifier from a role title and company
// name: whitespace and slash runs in the title collapse to underscores,
// then the company is appended after a hyphen. The company goes in
// untouched and the result is case-sensitive; the namespace resolver
// rejects anything that would still escape the bucket.
func DeriveName(roleTitle, companyName string) string {
	return roleTitleSeparators.ReplaceAllString(roleTitle, "_") + "-" + companyName
}
