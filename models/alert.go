package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type AlertType string

const (
	AlertTypeSymptom      AlertType = "symptom"
	AlertTypeMedication   AlertType = "medication"
	AlertTypeRoutineCheck AlertType = "routine_check"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeSymptom, AlertTypeMedication, AlertTypeRoutineCheck:
		return true
	}
	return false
}

type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pending"
	AlertStatusSent     AlertStatus = "sent"
	AlertStatusResolved AlertStatus = "resolved"
)

// Rank orders the lifecycle: pending < sent < resolved. Unknown values rank -1.
func (s AlertStatus) Rank() int {
	switch s {
	case AlertStatusPending:
		return 0
	case AlertStatusSent:
		return 1
	case AlertStatusResolved:
		return 2
	}
	return -1
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelApp   Channel = "app"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelApp:
		return true
	}
	return false
}

// ChannelList is stored as a jsonb column.
type ChannelList []Channel

func (l ChannelList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ChannelList) Scan(v any) error {
	switch data := v.(type) {
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for ChannelList")
}

func (l ChannelList) Contains(c Channel) bool {
	for _, x := range l {
		if x == c {
			return true
		}
	}
	return false
}

type Alert struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	Type      AlertType   `gorm:"size:20" json:"type"`
	Severity  int         `json:"severity"` // 0-100
	Title     string      `json:"title"`
	Message   string      `gorm:"type:text" json:"message"`
	Status    AlertStatus `gorm:"size:10;index" json:"status"`
	Channels  ChannelList `gorm:"type:jsonb" json:"channels"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
