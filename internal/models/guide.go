package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Year is a model year. Clients send it either as a JSON string or a number;
// it is always stored as a string. A numeric 0 counts as missing.
type Year string

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*y = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("year must be a string or a number: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("year must be a string or a number: %w", err)
	}
	switch {
	case f == 0:
		*y = ""
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		*y = Year(strconv.FormatInt(int64(f), 10))
	default:
		*y = Year(n.String())
	}
	return nil
}

// Vehicle identifies the car a guide is about.
type Vehicle struct {
	Make  string `bson:"make"  json:"make"  validate:"required"`
	Model string `bson:"model" json:"model" validate:"required"`
	Year  Year   `bson:"year"  json:"year"  validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (v Vehicle) Trimmed() Vehicle {
	return Vehicle{
		Make:  strings.TrimSpace(v.Make),
		Model: strings.TrimSpace(v.Model),
		Year:  Year(strings.TrimSpace(string(v.Year))),
	}
}

// String renders "2015 Honda Civic".
func (v Vehicle) String() string {
	return fmt.Sprintf("%s %s %s", v.Year, v.Make, v.Model)
}

// ChatMessage is one turn of a guide's follow-up transcript.
type ChatMessage struct {
	Role      string    `bson:"role"      json:"role"`
	Text      string    `bson:"text"      json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Guide is an AI-generated maintenance answer for a vehicle + question,
// together with its chat transcript.
type Guide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Vehicle   Vehicle            `bson:"vehicle"             json:"vehicle"`
	Question  string             `bson:"question"            json:"question"`
	AIAnswer  string             `bson:"aiAnswer"            json:"aiAnswer"`
	Chat      []ChatMessage      `bson:"chat"                json:"chat"`
	Embedding []float32          `bson:"embedding,omitempty" json:"-"`
	Version   int64              `bson:"version"             json:"-"` // optimistic concurrency token
	CreatedAt time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"           json:"updatedAt"`
}

// GuideSummary is the sidebar projection of a Guide.
type GuideSummary struct {
	ID        primitive.ObjectID `bson:"_id"       json:"id"`
	Vehicle   Vehicle            `bson:"vehicle"   json:"vehicle"`
	Question  string             `bson:"question"  json:"question"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Score     float64            `bson:"score,omitempty" json:"score,omitempty"` // related-guide similarity
}

// Summary projects g onto a GuideSummary.
func (g Guide) Summary() GuideSummary {
	return GuideSummary{ID: g.ID, Vehicle: g.Vehicle, Question: g.Question, CreatedAt: g.CreatedAt}
}
