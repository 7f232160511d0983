package models

import "time"

// SymptomReport is the health record produced by an assessment. Escalated
// is set once a severity-triggered alert has actually been created, so
// reports and dashboards can show that the escalation happened.
type SymptomReport struct {
    ID              uint      `gorm:"primaryKey" json:"id"`
    UserID          uint      `gorm:"index" json:"user_id"`
    Description     string    `gorm:"type:text" json:"description"`
    ImageURL        string    `json:"image_url"`
    ConditionLabel  string    `json:"condition_label"`
    Recommendations string    `gorm:"type:text" json:"recommendations"`
    SeverityScore   int       `json:"severity_score"` // 0-100
    Escalated       bool      `json:"escalated"`
    CreatedAt       time.Time `json:"created_at"`
}
