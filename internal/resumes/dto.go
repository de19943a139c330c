package resumes

import "resume-generator/resume/content"

// FinalizeRequest carries the structured content plus the raw source job
// description and its reference URL.
type FinalizeRequest struct {
	Content        content.ResumeContent `json:"content" binding:"required"`
	JobDescription string                `json:"jobDescription"`
	JDURL          string                `json:"jdUrl"`
}

// FileEntry is one listed artifact.
type FileEntry struct {
	Name       string `json:"filename"`
	JDURL      string `json:"jdUrl"`
	BucketDate string `json:"date"`
	Path       string `json:"path"`
}

// ListResult is one page of an owner's artifacts with per-date counts.
type ListResult struct {
	Files      []FileEntry    `json:"files"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	DateCounts map[string]int `json:"dateCounts"`
}
