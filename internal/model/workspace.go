package model

import (
	"time"

	"github.com/google/uuid"
)

// maxActivities caps the activity feed; the oldest entries are evicted.
const maxActivities = 50

// Workspace is the whole persisted CRM document: every collection plus
// settings. It is loaded and saved as a single snapshot.
type Workspace struct {
	Leads      []Lead     `json:"leads"`
	Deals      []Deal     `json:"deals"`
	Clients    []Client   `json:"clients"`
	Services   []Service  `json:"services"`
	Tasks      []Task     `json:"tasks"`
	Activities []Activity `json:"activities"`
	Settings   Settings   `json:"settings"`
}

// LeadByID returns the lead with the given id, or nil.
func (w *Workspace) LeadByID(id string) *Lead {
	for i := range w.Leads {
		if w.Leads[i].ID == id {
			return &w.Leads[i]
		}
	}
	return nil
}

// DealByID returns the deal with the given id, or nil.
func (w *Workspace) DealByID(id string) *Deal {
	for i := range w.Deals {
		if w.Deals[i].ID == id {
			return &w.Deals[i]
		}
	}
	return nil
}

// ClientByID returns the client with the given id, or nil.
func (w *Workspace) ClientByID(id string) *Client {
	for i := range w.Clients {
		if w.Clients[i].ID == id {
			return &w.Clients[i]
		}
	}
	return nil
}

// ClientByLeadID returns the client referencing the given lead, or nil.
// This is the guard that keeps lead-to-client conversion idempotent.
func (w *Workspace) ClientByLeadID(leadID string) *Client {
	for i := range w.Clients {
		if w.Clients[i].LeadID == leadID {
			return &w.Clients[i]
		}
	}
	return nil
}

// ServiceByID returns the service with the given id, or nil.
func (w *Workspace) ServiceByID(id string) *Service {
	for i := range w.Services {
		if w.Services[i].ID == id {
			return &w.Services[i]
		}
	}
	return nil
}

// TaskByID returns the task with the given id, or nil.
func (w *Workspace) TaskByID(id string) *Task {
	for i := range w.Tasks {
		if w.Tasks[i].ID == id {
			return &w.Tasks[i]
		}
	}
	return nil
}

// AddActivity prepends an entry to the feed and evicts beyond the cap.
func (w *Workspace) AddActivity(kind ActivityType, text string, at time.Time) {
	w.Activities = append([]Activity{{
		ID:        uuid.New().String(),
		Type:      kind,
		Text:      text,
		Timestamp: at,
	}}, w.Activities...)
	if len(w.Activities) > maxActivities {
		w.Activities = w.Activities[:maxActivities]
	}
}
