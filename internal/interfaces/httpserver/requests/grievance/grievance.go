package grievancerequests

// UpdateStatusRequest represents an administrative status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DashboardQueryParams represents query parameters for the dashboard.
type DashboardQueryParams struct {
	Recent *int `form:"recent" binding:"omitempty,min=0,max=100"`
}
