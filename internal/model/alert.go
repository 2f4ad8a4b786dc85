package model

import "time"

// AlertType is the severity of a budget alert.
type AlertType string

const (
	// AlertWarning is raised when period spend crosses the warning
	// threshold but is still within the limit.
	AlertWarning AlertType = "WARNING"
	// AlertCritical is raised when period spend exceeds the limit.
	AlertCritical AlertType = "CRITICAL"
)

// BudgetAlert is the persisted record of an emitted budget alert. Besides
// serving as an audit trail, it suppresses repeat alerts of the same type
// for the same category within one period.
type BudgetAlert struct {
	CreatedAt  time.Time
	ID         string
	UserID     string
	CategoryID string
	AlertType  AlertType
	Message    string
}
