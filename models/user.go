package models

import (
    "gorm.io/gorm"
)

// User is read-only from the alerting core's perspective: producers only
// need email/phone targets and the active flag.
type User struct {
    gorm.Model
    Email            string `gorm:"uniqueIndex;not null" json:"email"`
    Phone            string `json:"phone"`
    FullName         string `json:"full_name"`
    IsActive         bool   `gorm:"index;default:true" json:"is_active"`
    HealthConditions string `json:"health_conditions"`
}
