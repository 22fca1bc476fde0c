package domain

import (
	"errors"
	"time"
)

// ActivityType is the fixed set of schedulable dealership events.
type ActivityType string

const (
	ActivityAppointment ActivityType = "appointment"
	ActivityFollowUp    ActivityType = "follow_up"
	ActivityTestDrive   ActivityType = "test_drive"
	ActivityDelivery    ActivityType = "delivery"
	ActivityService     ActivityType = "service"
	ActivityMeeting     ActivityType = "meeting"
	ActivityCall        ActivityType = "call"
)

var ErrActivityNotFound = errors.New("activity not found")

// Activity is a scheduled event on a user's calendar.
type Activity struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Type           ActivityType `json:"type"`
	Description    string       `json:"description,omitempty"`
	ScheduledAt    time.Time    `json:"scheduledAt"`
	EndAt          *time.Time   `json:"endAt,omitempty"`
	AssignedTo     string       `json:"assignedTo"`
	AssignedToName string       `json:"assignedToName,omitempty"`
	CreatedBy      string       `json:"createdBy"`
	CreatedByName  string       `json:"createdByName,omitempty"`
	RelatedLead    string       `json:"relatedLead,omitempty"`
	Location       string       `json:"location,omitempty"`
	IsCompleted    bool         `json:"isCompleted"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
