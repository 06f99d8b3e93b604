package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/autobrand/crm-cli/internal/model"
)

// AddLead creates a lead from manual entry. New leads are prepended so the
// list stays most-recent-first.
func (e *Engine) AddLead(in model.LeadInput) (*model.Lead, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	now := e.now()
	lead := model.Lead{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Platform:  model.PlatformTwitch,
		Source:    model.SourceOutbound,
		Followers: in.Followers,
		Status:    model.LeadStatusNew,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Platform != "" {
		lead.Platform = model.Platform(in.Platform)
	}
	if in.Source != "" {
		lead.Source = model.LeadSource(in.Source)
	}
	lead.SetScore(in.Score)

	e.ws.Leads = append([]model.Lead{lead}, e.ws.Leads...)
	e.ws.AddActivity(model.ActivityLeadAdded,
		fmt.Sprintf("New lead %s was added", lead.Name), now)

	return e.ws.LeadByID(lead.ID), nil
}

// UpdateLead edits a lead. Score writes re-derive the tier.
func (e *Engine) UpdateLead(leadID string, in model.LeadInput, status string) (*model.Lead, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	lead := e.ws.LeadByID(leadID)
	if lead == nil {
		return nil, eris.Wrapf(ErrNotFound, "lead %s", leadID)
	}

	lead.Name = in.Name
	lead.Email = in.Email
	if in.Platform != "" {
		lead.Platform = model.Platform(in.Platform)
	}
	lead.Followers = in.Followers
	lead.Notes = in.Notes
	lead.SetScore(in.Score)
	if status != "" {
		lead.Status = model.LeadStatus(status)
	}
	lead.UpdatedAt = e.now()

	return lead, nil
}

// MarkLeadContacted bumps a new lead to contacted and logs the outreach.
func (e *Engine) MarkLeadContacted(leadID string) (*model.Lead, error) {
	lead := e.ws.LeadByID(leadID)
	if lead == nil {
		return nil, eris.Wrapf(ErrNotFound, "lead %s", leadID)
	}

	now := e.now()
	lead.Status = model.LeadStatusContacted
	lead.UpdatedAt = now
	e.ws.AddActivity(model.ActivityLeadContacted,
		fmt.Sprintf("Reached out to %s", lead.Name), now)

	return lead, nil
}

// DeleteLead hard-deletes a lead. Deals and clients keep their dangling
// references; conversion handles the missing lead gracefully.
func (e *Engine) DeleteLead(leadID string) error {
	for i := range e.ws.Leads {
		if e.ws.Leads[i].ID == leadID {
			e.ws.Leads = append(e.ws.Leads[:i], e.ws.Leads[i+1:]...)
			return nil
		}
	}
	return eris.Wrapf(ErrNotFound, "lead %s", leadID)
}

// UpdateClient edits a client's status, revenue, and notes.
func (e *Engine) UpdateClient(clientID, status string, mrr int, notes string) (*model.Client, error) {
	client := e.ws.ClientByID(clientID)
	if client == nil {
		return nil, eris.Wrapf(ErrNotFound, "client %s", clientID)
	}

	if status != "" {
		client.Status = model.ClientStatus(status)
	}
	if mrr >= 0 {
		client.MRR = mrr
	}
	if notes != "" {
		client.Notes = notes
	}

	return client, nil
}

// AddService creates a service offering.
func (e *Engine) AddService(in model.ServiceInput) (*model.Service, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	svc := model.Service{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Period:      model.BillingPeriod(in.Period),
		Features:    in.Features,
	}
	e.ws.Services = append(e.ws.Services, svc)

	return e.ws.ServiceByID(svc.ID), nil
}

// UpdateService edits a service. Deals keep their cached ServiceName.
func (e *Engine) UpdateService(serviceID string, in model.ServiceInput) (*model.Service, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	svc := e.ws.ServiceByID(serviceID)
	if svc == nil {
		return nil, eris.Wrapf(ErrNotFound, "service %s", serviceID)
	}

	svc.Name = in.Name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.Period = model.BillingPeriod(in.Period)
	svc.Features = in.Features

	return svc, nil
}

// AddTask creates a pending task, optionally tied to a lead or client.
func (e *Engine) AddTask(in model.TaskInput) (*model.Task, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	due, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, eris.Wrap(err, "parse due date")
	}

	task := model.Task{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Type:      model.TaskType(in.Type),
		Status:    model.TaskPending,
		DueDate:   due,
		RelatedTo: in.RelatedTo,
		CreatedAt: e.now(),
	}
	e.ws.Tasks = append(e.ws.Tasks, task)

	return e.ws.TaskByID(task.ID), nil
}

// ToggleTask flips a task between pending and completed. Completion is
// logged; reopening is not.
func (e *Engine) ToggleTask(taskID string) (*model.Task, error) {
	task := e.ws.TaskByID(taskID)
	if task == nil {
		return nil, eris.Wrapf(ErrNotFound, "task %s", taskID)
	}

	if task.Status == model.TaskCompleted {
		task.Status = model.TaskPending
		return task, nil
	}

	task.Status = model.TaskCompleted
	e.ws.AddActivity(model.ActivityTaskCompleted,
		fmt.Sprintf("Task %s completed", task.Title), e.now())

	return task, nil
}

// DeleteTask removes a task.
func (e *Engine) DeleteTask(taskID string) error {
	for i := range e.ws.Tasks {
		if e.ws.Tasks[i].ID == taskID {
			e.ws.Tasks = append(e.ws.Tasks[:i], e.ws.Tasks[i+1:]...)
			return nil
		}
	}
	return eris.Wrapf(ErrNotFound, "task %s", taskID)
}
