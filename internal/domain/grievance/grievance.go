package grievance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category enumerates the kinds of water-service complaints a citizen can file.
type Category string

const (
	CategoryNoWaterSupply        Category = "no-water-supply"
	CategoryPipelineLeakage      Category = "pipeline-leakage"
	CategoryWaterQuality         Category = "water-quality"
	CategoryBillingIssue         Category = "billing-issue"
	CategoryInfrastructureDamage Category = "infrastructure-damage"
	CategoryOther                Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryNoWaterSupply,
	CategoryPipelineLeakage,
	CategoryWaterQuality,
	CategoryBillingIssue,
	CategoryInfrastructureDamage,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryNoWaterSupply:        "No Water Supply",
	CategoryPipelineLeakage:      "Pipeline Leakage",
	CategoryWaterQuality:         "Water Quality",
	CategoryBillingIssue:         "Billing Issue",
	CategoryInfrastructureDamage: "Infrastructure Damage",
	CategoryOther:                "Other",
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory accepts either the slug or the display label, case-insensitively.
func ParseCategory(raw string) (Category, error) {
	needle := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(needle, string(c)) || strings.EqualFold(needle, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown grievance category %q", raw)
}

// Status tracks where a grievance is in its administrative lifecycle.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

var statusLabels = map[Status]string{
	StatusOpen:       "Open",
	StatusInProgress: "In Progress",
	StatusResolved:   "Resolved",
	StatusClosed:     "Closed",
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts either the slug or the display label, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	needle := strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(needle, string(s)) || strings.EqualFold(needle, s.Label()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown grievance status %q", raw)
}

// Grievance is a citizen-submitted water-service complaint.
type Grievance struct {
	ID          string    `json:"id" yaml:"id"`
	Category    Category  `json:"category" yaml:"category"`
	Summary     string    `json:"summary" yaml:"summary"`
	Location    string    `json:"location" yaml:"location"`
	Status      Status    `json:"status" yaml:"status"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at"`
}

// Draft carries the fields extracted from a citizen's message before an id is assigned.
type Draft struct {
	Category Category `json:"category" validate:"required"`
	Location string   `json:"location" validate:"required"`
	Summary  string   `json:"summary" validate:"required"`
}

var ErrInvalidDraft = errors.New("invalid grievance draft")

// Validate checks that every field is populated and the category is known.
func (d Draft) Validate() error {
	if !d.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidDraft, d.Category)
	}
	if strings.TrimSpace(d.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidDraft)
	}
	if strings.TrimSpace(d.Summary) == "" {
		return fmt.Errorf("%w: summary is required", ErrInvalidDraft)
	}
	return nil
}
