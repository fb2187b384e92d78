package models

type EventStatus string

const (
	StatusPlanning  EventStatus = "Planning"
	StatusActive    EventStatus = "Active"
	StatusCompleted EventStatus = "Completed"
	StatusCancelled EventStatus = "Cancelled"
)

// EventStatuses lists the accepted statuses in display order.
var EventStatuses = []EventStatus{StatusPlanning, StatusActive, StatusCompleted, StatusCancelled}

func (s EventStatus) Valid() bool {
	for _, known := range EventStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "Pending"
	RSVPConfirmed RSVPStatus = "Confirmed"
	RSVPDeclined  RSVPStatus = "Declined"
)

// RSVPStatuses lists the accepted RSVP states in display order.
var RSVPStatuses = []RSVPStatus{RSVPPending, RSVPConfirmed, RSVPDeclined}

func (s RSVPStatus) Valid() bool {
	for _, known := range RSVPStatuses {
		if s == known {
			return true
		}
	}
	return false
}
