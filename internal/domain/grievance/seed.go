package grievance

import "time"

const day = 24 * time.Hour

// DefaultSeed returns the demonstration grievances shipped with the service,
// most recent first, with submission times relative to now.
func DefaultSeed(now time.Time) []Grievance {
	return []Grievance{
		{
			ID:          "JSS-5821",
			Category:    CategoryPipelineLeakage,
			Summary:     "Major pipeline leak near the main market square.",
			Location:    "Sector 15, Chandigarh",
			Status:      StatusInProgress,
			SubmittedAt: now.Add(-2 * day),
		},
		{
			ID:          "JSS-5820",
			Category:    CategoryNoWaterSupply,
			Summary:     "No water supply for the past 3 days in our area.",
			Location:    "Aundh, Pune",
			Status:      StatusResolved,
			SubmittedAt: now.Add(-5 * day),
		},
		{
			ID:          "JSS-5819",
			Category:    CategoryWaterQuality,
			Summary:     "Water is muddy and has a strange smell.",
			Location:    "Indiranagar, Bangalore",
			Status:      StatusOpen,
			SubmittedAt: now.Add(-1 * day),
		},
		{
			ID:          "JSS-5818",
			Category:    CategoryBillingIssue,
			Summary:     "Received an incorrect water bill for this month.",
			Location:    "Koramangala, Bangalore",
			Status:      StatusClosed,
			SubmittedAt: now.Add(-10 * day),
		},
	}
}
