package models

import (
	"strings"
	"time"
)

type AlertType string

const (
	AlertTypeCritical AlertType = "critical"
	AlertTypeWarning  AlertType = "warning"
	AlertTypeInfo     AlertType = "info"
	AlertTypeSuccess  AlertType = "success"
)

// AlertTypes lists every alert type in display order.
var AlertTypes = []AlertType{AlertTypeCritical, AlertTypeWarning, AlertTypeInfo, AlertTypeSuccess}

func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeCritical, AlertTypeWarning, AlertTypeInfo, AlertTypeSuccess:
		return true
	}
	return false
}

// ParseAlertType maps a case-insensitive name to an AlertType.
func ParseAlertType(s string) (AlertType, bool) {
	t := AlertType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	IsActive    bool      `json:"is_active"`
	Location    string    `json:"location,omitempty"`
	Source      string    `json:"source,omitempty"`
	ExternalRef string    `json:"external_ref,omitempty"` // feed item id, used for de-duplication
}

// AlertDraft is the caller-supplied part of a new alert.
type AlertDraft struct {
	Type        AlertType `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Location    string    `json:"location"`
	Source      string    `json:"source,omitempty"`
	ExternalRef string    `json:"external_ref,omitempty"`
}

type AlertStats struct {
	Active int               `json:"active"`
	ByType map[AlertType]int `json:"by_type"`
}

type AlertEventKind string

const (
	AlertEventCreated     AlertEventKind = "created"
	AlertEventDeactivated AlertEventKind = "deactivated"
	AlertEventDismissed   AlertEventKind = "dismissed"
)

type AlertEvent struct {
	Kind  AlertEventKind `json:"kind"`
	Alert Alert          `json:"alert"`
}
