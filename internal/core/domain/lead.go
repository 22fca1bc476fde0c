package domain

import (
	"errors"
	"time"
)

// LeadChannel is the inbound contact channel.
type LeadChannel string

const (
	ChannelEmail LeadChannel = "email"
	ChannelSMS   LeadChannel = "sms"
)

// LeadStatus represents the lifecycle state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusConverted LeadStatus = "converted"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead is an inbound customer contact.
type Lead struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customerName"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Channel         LeadChannel `json:"channel"`
	Status          LeadStatus  `json:"status"`
	Subject         string      `json:"subject,omitempty"`
	Message         string      `json:"message"`
	AssignedTo      string      `json:"assignedTo,omitempty"`
	AssignedToName  string      `json:"assignedToName,omitempty"`
	VehicleInterest string      `json:"vehicleInterest,omitempty"`
	Source          string      `json:"source,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
