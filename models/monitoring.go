package models

import (
    "time"

    "gorm.io/datatypes"
)

// DailyMonitoringEntry holds one day's self-reported vitals. The metric
// payload is opaque to the alerting core; only its existence for a given
// day matters to the reminder producer.
type DailyMonitoringEntry struct {
    ID        uint           `gorm:"primaryKey" json:"id"`
    UserID    uint           `gorm:"uniqueIndex:idx_monitoring_day" json:"user_id"`
    Date      time.Time      `gorm:"uniqueIndex:idx_monitoring_day" json:"date"`
    Metrics   datatypes.JSON `json:"metrics"`
    CreatedAt time.Time      `json:"created_at"`
    UpdatedAt time.Time      `json:"updated_at"`
}
