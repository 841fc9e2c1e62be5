package dto

import (
	"main/model"
)

// FileUpload is one uploaded screenshot as it arrives from the form
// layer: raw bytes plus the declared filename and content type.
type FileUpload struct {
	Name        string
	Data        []byte
	ContentType string
}

// ExperienceSubmission carries the raw form-field values of a create
// or edit submit. Tags arrive as a single comma-separated string and
// Category as a plain string; both are checked and converted by the
// usecase layer, never trusted here. KeptScreenshots holds the
// already-stored attachments an edit chose to keep, Uploads the new
// files of this submit.
type ExperienceSubmission struct {
	Title           string             `json:"title" form:"title"`
	Problem         string             `json:"problem" form:"problem"`
	Solution        string             `json:"solution" form:"solution"`
	Tags            string             `json:"tags" form:"tags"`
	Category        string             `json:"category" form:"category"`
	CodeSnippet     string             `json:"code_snippet" form:"code_snippet"`
	Notes           string             `json:"notes" form:"notes"`
	Date            string             `json:"date" form:"date"`
	KeptScreenshots []model.Screenshot `json:"kept_screenshots" form:"-"`
	Uploads         []FileUpload       `json:"-" form:"-"`
}

type ExperienceResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Problem     string             `json:"problem"`
	Solution    string             `json:"solution"`
	Tags        []string           `json:"tags"`
	CodeSnippet string             `json:"code_snippet,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Screenshots []model.Screenshot `json:"screenshots"`
	Category    model.Category     `json:"category"`
	Date        string             `json:"date"`
}

type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	TotalCount  int                  `json:"total_count"`
}

func ToExperienceResponse(exp *model.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:          exp.ID.Hex(),
		Title:       exp.Title,
		Problem:     exp.Problem,
		Solution:    exp.Solution,
		Tags:        exp.Tags,
		CodeSnippet: exp.CodeSnippet,
		Notes:       exp.Notes,
		Screenshots: exp.Screenshots,
		Category:    exp.Category,
		Date:        exp.Date,
	}
}

func ToExperienceListResponse(exps []*model.Experience) ExperienceListResponse {
	responses := make([]ExperienceResponse, len(exps))
	for i, exp := range exps {
		responses[i] = ToExperienceResponse(exp)
	}
	return ExperienceListResponse{
		Experiences: responses,
		TotalCount:  len(responses),
	}
}
