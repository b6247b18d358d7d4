package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StructuredGuide is the fixed-shape JSON variant of a guide. It is only
// ever produced by the normalizer, so every field is always populated.
type StructuredGuide struct {
	Title       string   `json:"title"`
	Vehicle     any      `json:"vehicle"`
	Difficulty  string   `json:"difficulty"`
	Warnings    []string `json:"warnings"`
	Tools       []Tool   `json:"tools"`
	Parts       []Part   `json:"parts"`
	Steps       []Step   `json:"steps"`
	Notes       []string `json:"notes"`
	SourcesUsed []string `json:"sourcesUsed"`
}

type Tool struct {
	Name  string `bson:"name"  json:"name"`
	Notes string `bson:"notes" json:"notes"`
}

type Part struct {
	Name  string  `bson:"name"  json:"name"`
	Qty   float64 `bson:"qty"   json:"qty"`
	Notes string  `bson:"notes" json:"notes"`
}

type Step struct {
	Step int      `json:"step"`
	Text string   `json:"text"`
	Tips []string `json:"tips"`
}

// QueryLog keeps the raw provider output behind a structured guide request.
type QueryLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Vehicle     Vehicle            `bson:"vehicle"       json:"vehicle"`
	Question    string             `bson:"question"      json:"question"`
	RawText     string             `bson:"rawText"       json:"rawText"`
	SourcesUsed []string           `bson:"sourcesUsed"   json:"sourcesUsed"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
}

// ServiceCatalogEntry is the seeded reference list of parts and tools for a
// common maintenance job ("oil_change", "tire_change", ...).
type ServiceCatalogEntry struct {
	Service   string    `bson:"service"   json:"service"`
	Parts     []Part    `bson:"parts"     json:"parts"`
	Tools     []Tool    `bson:"tools"     json:"tools"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
