package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the three-way classification of an experience.
type Category string

const (
	CategoryProblem Category = "problem"
	CategoryTip     Category = "tip"
	CategoryNote    Category = "note"
)

// Categories lists every accepted category value, in display order.
var Categories = []Category{CategoryProblem, CategoryTip, CategoryNote}

// ParseCategory converts a raw form value into a Category.
func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryProblem, CategoryTip, CategoryNote:
		return Category(value), true
	}
	return "", false
}

// LegacyCriticality is the pre-migration classification field.
type LegacyCriticality string

const (
	CriticalityBlocking LegacyCriticality = "blocking"
	CriticalityAnnoying LegacyCriticality = "annoying"
)

// CriticalityToCategory maps legacy criticality values to the current
// categories. Anything not in the table migrates to CategoryNote.
var CriticalityToCategory = map[LegacyCriticality]Category{
	CriticalityBlocking: CategoryProblem,
	CriticalityAnnoying: CategoryTip,
}

type Experience struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Problem     string             `bson:"problem" json:"problem"`
	Solution    string             `bson:"solution" json:"solution"`
	Tags        []string           `bson:"tags" json:"tags"`
	CodeSnippet string             `bson:"code_snippet" json:"code_snippet"`
	Notes       string             `bson:"notes" json:"notes"`
	Screenshots []Screenshot       `bson:"screenshots" json:"screenshots"`
	Category    Category           `bson:"category" json:"category"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD, set at creation
}

// Screenshot is an inline image attachment. The image bytes live in
// Data as base64 text; screenshots have no lifecycle of their own.
type Screenshot struct {
	Name     string `bson:"name" json:"name"`
	Data     string `bson:"data" json:"data"`
	MimeType string `bson:"mime_type" json:"mime_type"`
}
