package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

// File is the on-disk shape of a seed document.
//
//	grievances:
//	  - id: JSS-5821
//	    category: pipeline-leakage
//	    summary: Major pipeline leak near the main market square.
//	    location: Sector 15, Chandigarh
//	    status: in-progress
//	    submitted_at: 2026-03-12T09:30:00Z   # or age: 48h
type File struct {
	Grievances []Entry `yaml:"grievances" jsonschema:"required"`
}

// Entry is one seeded grievance. Category and status accept slugs or labels;
// age is an alternative to submitted_at, relative to load time.
type Entry struct {
	ID          string    `yaml:"id" jsonschema:"required,description=Ticket id such as JSS-5821"`
	Category    string    `yaml:"category" jsonschema:"required,description=Category slug or label"`
	Summary     string    `yaml:"summary" jsonschema:"required"`
	Location    string    `yaml:"location" jsonschema:"required"`
	Status      string    `yaml:"status,omitempty" jsonschema:"description=Status slug or label; defaults to open"`
	SubmittedAt time.Time `yaml:"submitted_at,omitempty"`
	Age         string    `yaml:"age,omitempty" jsonschema:"description=Go duration before load time such as 48h; excludes submitted_at"`
}

// Load reads path, or returns the built-in demonstration records when path is empty.
func Load(path string, now time.Time) ([]grievance.Grievance, error) {
	if path == "" {
		return grievance.DefaultSeed(now), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	records, err := Parse(bytes.NewReader(data), now)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader, now time.Time) ([]grievance.Grievance, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	records := make([]grievance.Grievance, 0, len(file.Grievances))
	for i, entry := range file.Grievances {
		g, err := entry.toGrievance(now)
		if err != nil {
			return nil, fmt.Errorf("grievance %d: %w", i+1, err)
		}
		records = append(records, g)
	}
	return records, nil
}

func (e Entry) toGrievance(now time.Time) (grievance.Grievance, error) {
	category, err := grievance.ParseCategory(e.Category)
	if err != nil {
		return grievance.Grievance{}, err
	}

	status := grievance.StatusOpen
	if e.Status != "" {
		if status, err = grievance.ParseStatus(e.Status); err != nil {
			return grievance.Grievance{}, err
		}
	}

	submittedAt := e.SubmittedAt
	switch {
	case e.Age != "" && !submittedAt.IsZero():
		return grievance.Grievance{}, fmt.Errorf("set either submitted_at or age for %s, not both", e.ID)
	case e.Age != "":
		age, err := time.ParseDuration(e.Age)
		if err != nil {
			return grievance.Grievance{}, fmt.Errorf("age for %s: %w", e.ID, err)
		}
		submittedAt = now.Add(-age)
	case submittedAt.IsZero():
		submittedAt = now
	}

	draft := grievance.Draft{Category: category, Location: e.Location, Summary: e.Summary}
	if err := draft.Validate(); err != nil {
		return grievance.Grievance{}, fmt.Errorf("%s: %w", e.ID, err)
	}

	return grievance.Grievance{
		ID:          e.ID,
		Category:    category,
		Summary:     e.Summary,
		Location:    e.Location,
		Status:      status,
		SubmittedAt: submittedAt,
	}, nil
}
