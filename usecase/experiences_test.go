package usecase

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"main/dto"
	"main/model"
)

func validSubmission() dto.ExperienceSubmission {
	return dto.ExperienceSubmission{
		Title:    "Container cannot reach host",
		Problem:  "Docker container times out calling the host machine",
		Solution: "Use host.docker.internal instead of localhost",
		Tags:     "docker, networking",
		Category: "problem",
	}
}

func TestBuildExperience(t *testing.T) {
	t.Run("ValidSubmission", func(t *testing.T) {
		exp, warnings, err := BuildExperience(validSubmission())
		if err != nil {
			t.Fatal("build failed", err)
		}
		if len(warnings) != 0 {
			t.Fatal("unexpected warnings", warnings)
		}
		if exp.Category != model.CategoryProblem {
			t.Errorf("category = %q, want %q", exp.Category, model.CategoryProblem)
		}
		if _, err := time.Parse("2006-01-02", exp.Date); err != nil {
			t.Errorf("date %q is not YYYY-MM-DD", exp.Date)
		}
		if exp.Screenshots == nil || len(exp.Screenshots) != 0 {
			t.Errorf("screenshots should default to an empty slice, got %#v", exp.Screenshots)
		}
	})

	t.Run("TagsRoundTrip", func(t *testing.T) {
		sub := validSubmission()
		sub.Tags = "docker, postgres , , networking"
		exp, _, err := BuildExperience(sub)
		if err != nil {
			t.Fatal("build failed", err)
		}
		want := []string{"docker", "postgres", "networking"}
		if !reflect.DeepEqual(exp.Tags, want) {
			t.Errorf("tags = %v, want %v", exp.Tags, want)
		}
	})

	t.Run("EmptyTags", func(t *testing.T) {
		sub := validSubmission()
		sub.Tags = " , ,, "
		_, _, err := BuildExperience(sub)
		if !errors.Is(err, ErrInvalidTags) {
			t.Fatalf("err = %v, want ErrInvalidTags", err)
		}
	})

	t.Run("OutOfEnumCategory", func(t *testing.T) {
		sub := validSubmission()
		sub.Category = "urgent"
		_, _, err := BuildExperience(sub)
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("err = %v, want ErrInvalidCategory", err)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "category" {
			t.Fatalf("expected a category field error, got %v", err)
		}
	})

	t.Run("MissingRequiredText", func(t *testing.T) {
		for _, field := range []string{"title", "problem", "solution"} {
			sub := validSubmission()
			switch field {
			case "title":
				sub.Title = "   "
			case "problem":
				sub.Problem = ""
			case "solution":
				sub.Solution = "\t\n"
			}
			_, _, err := BuildExperience(sub)
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != field {
				t.Errorf("%s: err = %v, want field error for %s", field, err, field)
			}
		}
	})

	t.Run("OversizedUploadSkipped", func(t *testing.T) {
		sub := validSubmission()
		sub.Uploads = []dto.FileUpload{
			{Name: "huge.png", Data: make([]byte, 6*1024*1024), ContentType: "image/png"},
			{Name: "small.png", Data: make([]byte, 1024), ContentType: "image/png"},
		}
		exp, warnings, err := BuildExperience(sub)
		if err != nil {
			t.Fatal("build failed", err)
		}
		if len(exp.Screenshots) != 1 {
			t.Fatalf("screenshots = %d, want 1", len(exp.Screenshots))
		}
		if exp.Screenshots[0].Name != "small.png" {
			t.Errorf("kept %q, want small.png", exp.Screenshots[0].Name)
		}
		if len(warnings) != 1 || !strings.Contains(warnings[0], "huge.png") {
			t.Errorf("warnings = %v, want one naming huge.png", warnings)
		}
		decoded, err := base64.StdEncoding.DecodeString(exp.Screenshots[0].Data)
		if err != nil || len(decoded) != 1024 {
			t.Errorf("screenshot data does not round-trip through base64")
		}
	})

	t.Run("KeptScreenshotMissingField", func(t *testing.T) {
		sub := validSubmission()
		sub.KeptScreenshots = []model.Screenshot{{Name: "old.png", Data: "aGk="}}
		_, _, err := BuildExperience(sub)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "screenshots" {
			t.Fatalf("err = %v, want screenshots field error", err)
		}
	})

	t.Run("SuppliedDateKept", func(t *testing.T) {
		sub := validSubmission()
		sub.Date = "2023-04-01"
		exp, _, err := BuildExperience(sub)
		if err != nil {
			t.Fatal("build failed", err)
		}
		if exp.Date != "2023-04-01" {
			t.Errorf("date = %q, want 2023-04-01", exp.Date)
		}
	})

	t.Run("MalformedDateRejected", func(t *testing.T) {
		sub := validSubmission()
		sub.Date = "01/04/2023"
		_, _, err := BuildExperience(sub)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "date" {
			t.Fatalf("err = %v, want date field error", err)
		}
	})
}

func TestSearch(t *testing.T) {
	records := []*model.Experience{
		{Title: "Postgres locks", Problem: "deadlock on migration", Solution: "reorder statements", Tags: []string{"postgres"}},
		{Title: "Slow builds", Problem: "CI takes forever", Solution: "cache Docker layers", Tags: []string{"ci"}},
		{Title: "Panic in handler", Problem: "nil map write", Solution: "initialize the map", CodeSnippet: "m := make(map[string]int)", Tags: []string{"go"}},
	}

	t.Run("EmptyQueryReturnsAll", func(t *testing.T) {
		if got := Search(records, "  "); len(got) != len(records) {
			t.Errorf("got %d records, want %d", len(got), len(records))
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		got := Search(records, "POSTGRES")
		if len(got) != 1 || got[0].Title != "Postgres locks" {
			t.Errorf("got %v, want the Postgres record", got)
		}
	})

	t.Run("MatchesEachField", func(t *testing.T) {
		cases := map[string]string{
			"title":        "slow builds",
			"problem":      "deadlock",
			"solution":     "docker layers",
			"code_snippet": "make(map",
			"tag":          "ci",
		}
		for field, query := range cases {
			if got := Search(records, query); len(got) != 1 {
				t.Errorf("query %q (%s): got %d matches, want 1", query, field, len(got))
			}
		}
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		got := Search(records, "o")
		for i := 1; i < len(got); i++ {
			if indexOf(records, got[i-1]) > indexOf(records, got[i]) {
				t.Fatal("search reordered results")
			}
		}
	})
}

func indexOf(records []*model.Experience, target *model.Experience) int {
	for i, r := range records {
		if r == target {
			return i
		}
	}
	return -1
}
