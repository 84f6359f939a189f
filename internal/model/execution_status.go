package model

// Allowed execution status values.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
)

// ExecutionStatuses is the closed set of valid Status values.
var ExecutionStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// IsExecutionStatus reports whether s is a valid status value.
func IsExecutionStatus(s string) bool {
	for _, v := range ExecutionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ExecutionStatus is a store manager's progress report on running a campaign
// at one store. Feedback is optional but must carry at least 10 characters
// when present.
type ExecutionStatus struct {
	StatusID   int    `json:"status_id"`
	CampaignID int    `json:"campaign_id"`
	StoreID    int    `json:"store_id"`
	Status     string `json:"status"`
	Feedback   string `json:"feedback"`
}
