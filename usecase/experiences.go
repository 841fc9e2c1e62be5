package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxScreenshotSize is the per-file upload limit. Images are stored
// inline as base64 inside the document, so this bound also caps
// document growth.
const MaxScreenshotSize = 5 * 1024 * 1024

var (
	ErrInvalidTags     = errors.New("at least one tag is required")
	ErrInvalidCategory = errors.New(`category must be one of "problem", "tip" or "note"`)
)

// ValidationError reports the first field that failed validation.
// Checking runs in a fixed order, so the reported field is
// deterministic for a given submission.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type ExperienceService struct {
	Repo  *repository.ExperiencesRepo
	cache *listCache
}

func NewExperienceService(repo *repository.ExperiencesRepo, cacheTTL time.Duration) *ExperienceService {
	return &ExperienceService{
		Repo:  repo,
		cache: newListCache(cacheTTL),
	}
}

// ParseTags splits a comma-separated tag string, trimming each token
// and dropping empties. Order is preserved.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func validateScreenshot(s model.Screenshot) error {
	if s.Name == "" {
		return errors.New("screenshot name is required")
	}
	if s.Data == "" {
		return errors.New("screenshot data is required")
	}
	if s.MimeType == "" {
		return errors.New("screenshot mime type is required")
	}
	return nil
}

// BuildExperience converts a raw submission into a validated
// Experience. Pure: no store access, no side effects. Uploads larger
// than MaxScreenshotSize are skipped individually and reported as
// warnings rather than failing the whole submission.
func BuildExperience(sub dto.ExperienceSubmission) (*model.Experience, []string, error) {
	title := strings.TrimSpace(sub.Title)
	if title == "" {
		return nil, nil, &ValidationError{Field: "title", Err: errors.New("title is required")}
	}

	problem := strings.TrimSpace(sub.Problem)
	if problem == "" {
		return nil, nil, &ValidationError{Field: "problem", Err: errors.New("problem is required")}
	}

	solution := strings.TrimSpace(sub.Solution)
	if solution == "" {
		return nil, nil, &ValidationError{Field: "solution", Err: errors.New("solution is required")}
	}

	tags := ParseTags(sub.Tags)
	if len(tags) == 0 {
		return nil, nil, &ValidationError{Field: "tags", Err: ErrInvalidTags}
	}

	category, ok := model.ParseCategory(sub.Category)
	if !ok {
		return nil, nil, &ValidationError{Field: "category", Err: ErrInvalidCategory}
	}

	screenshots := make([]model.Screenshot, 0, len(sub.KeptScreenshots)+len(sub.Uploads))
	for _, kept := range sub.KeptScreenshots {
		if err := validateScreenshot(kept); err != nil {
			return nil, nil, &ValidationError{Field: "screenshots", Err: err}
		}
		screenshots = append(screenshots, kept)
	}

	var warnings []string
	for _, upload := range sub.Uploads {
		if len(upload.Data) > MaxScreenshotSize {
			warnings = append(warnings, fmt.Sprintf("%s skipped: file exceeds the 5 MiB limit", upload.Name))
			continue
		}
		screenshot := model.Screenshot{
			Name:     upload.Name,
			Data:     base64.StdEncoding.EncodeToString(upload.Data),
			MimeType: upload.ContentType,
		}
		if err := validateScreenshot(screenshot); err != nil {
			return nil, nil, &ValidationError{Field: "screenshots", Err: err}
		}
		screenshots = append(screenshots, screenshot)
	}

	date := strings.TrimSpace(sub.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if !utils.ValidDate(date) {
		return nil, nil, &ValidationError{Field: "date", Err: errors.New("date must be in YYYY-MM-DD form")}
	}

	return &model.Experience{
		Title:       title,
		Problem:     problem,
		Solution:    solution,
		Tags:        tags,
		CodeSnippet: sub.CodeSnippet,
		Notes:       sub.Notes,
		Screenshots: screenshots,
		Category:    category,
		Date:        date,
	}, warnings, nil
}

// List returns every experience, most recent date first, served from
// the read cache when it is fresh.
func (svc *ExperienceService) List(ctx context.Context) ([]*model.Experience, error) {
	if cached, ok := svc.cache.Get(); ok {
		return cached, nil
	}

	experiences, err := svc.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	svc.cache.Set(experiences)
	return experiences, nil
}

// Create validates the submission and inserts a new experience. The
// read cache is invalidated before returning so the next List call
// reflects the insert.
func (svc *ExperienceService) Create(ctx context.Context, sub dto.ExperienceSubmission) (primitive.ObjectID, []string, error) {
	exp, warnings, err := BuildExperience(sub)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}

	id, err := svc.Repo.Insert(ctx, exp)
	if err != nil {
		return primitive.NilObjectID, warnings, err
	}

	svc.cache.Invalidate()
	return id, warnings, nil
}

// Update validates the submission and replaces the whole document at
// id. When the submission carries no date the original creation date
// is preserved; everything else is a full overwrite.
func (svc *ExperienceService) Update(ctx context.Context, idHex string, sub dto.ExperienceSubmission) ([]string, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, &ValidationError{Field: "id", Err: errors.New("invalid experience id")}
	}

	if strings.TrimSpace(sub.Date) == "" {
		existing, err := svc.Repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sub.Date = existing.Date
	}

	exp, warnings, err := BuildExperience(sub)
	if err != nil {
		return nil, err
	}

	if err := svc.Repo.Replace(ctx, id, exp); err != nil {
		return warnings, err
	}

	svc.cache.Invalidate()
	return warnings, nil
}

// Delete removes the experience at id. A missing id still counts as a
// successful delete.
func (svc *ExperienceService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return &ValidationError{Field: "id", Err: errors.New("invalid experience id")}
	}

	if err := svc.Repo.Delete(ctx, id); err != nil {
		return err
	}

	svc.cache.Invalidate()
	return nil
}

// Search narrows records to those where query is a case-insensitive
// substring of the title, problem, solution, code snippet or any tag.
// An empty query returns the input unchanged; order is preserved.
func Search(records []*model.Experience, query string) []*model.Experience {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	filtered := make([]*model.Experience, 0)
	for _, exp := range records {
		if matchesQuery(exp, query) {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}

func matchesQuery(exp *model.Experience, query string) bool {
	if strings.Contains(strings.ToLower(exp.Title), query) ||
		strings.Contains(strings.ToLower(exp.Problem), query) ||
		strings.Contains(strings.ToLower(exp.Solution), query) ||
		strings.Contains(strings.ToLower(exp.CodeSnippet), query) {
		return true
	}
	for _, tag := range exp.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
