package grievanceresponses

import (
	"time"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

type GrievanceResponse struct {
	ID            string    `json:"id"`
	Object        string    `json:"object"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	Summary       string    `json:"summary"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type GrievanceListResponse struct {
	Object string              `json:"object"`
	Data   []GrievanceResponse `json:"data"`
	Total  int                 `json:"total"`
}

type CategoryCountResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type DashboardResponse struct {
	Object     string                  `json:"object"`
	Total      int                     `json:"total"`
	Open       int                     `json:"open"`
	InProgress int                     `json:"in_progress"`
	Resolved   int                     `json:"resolved"`
	ByStatus   map[string]int          `json:"by_status"`
	ByCategory []CategoryCountResponse `json:"by_category"`
	Recent     []GrievanceResponse     `json:"recent"`
}

func NewGrievanceResponse(g grievance.Grievance) GrievanceResponse {
	return GrievanceResponse{
		ID:            g.ID,
		Object:        "grievance",
		Category:      string(g.Category),
		CategoryLabel: g.Category.Label(),
		Summary:       g.Summary,
		Location:      g.Location,
		Status:        string(g.Status),
		StatusLabel:   g.Status.Label(),
		SubmittedAt:   g.SubmittedAt,
	}
}

func NewGrievanceListResponse(records []grievance.Grievance) GrievanceListResponse {
	data := make([]GrievanceResponse, 0, len(records))
	for _, g := range records {
		data = append(data, NewGrievanceResponse(g))
	}
	return GrievanceListResponse{Object: "list", Data: data, Total: len(data)}
}

func NewDashboardResponse(stats grievance.Stats) DashboardResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	byCategory := make([]CategoryCountResponse, 0, len(stats.ByCategory))
	for _, c := range stats.ByCategory {
		byCategory = append(byCategory, CategoryCountResponse{Category: string(c.Category), Label: c.Label, Count: c.Count})
	}
	return DashboardResponse{
		Object:     "dashboard",
		Total:      stats.Total,
		Open:       stats.Open,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
		ByStatus:   byStatus,
		ByCategory: byCategory,
		Recent:     NewGrievanceListResponse(stats.Recent).Data,
	}
}
