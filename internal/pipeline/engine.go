// Package pipeline applies the business rules that move records through the
// funnel: lead to deal, deal through stages, won deal to client.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/autobrand/crm-cli/internal/model"
)

// ErrNotFound is returned when an operation references a missing entity.
var ErrNotFound = eris.New("not found")

// onboardingLeadTime is how far out the post-conversion onboarding task is due.
const onboardingLeadTime = 3 * 24 * time.Hour

// Engine mutates a workspace under the pipeline rules. It holds no state of
// its own beyond the workspace reference; persistence is the caller's job.
type Engine struct {
	ws  *model.Workspace
	now func() time.Time
}

// New returns an engine over the given workspace.
func New(ws *model.Workspace) *Engine {
	return &Engine{ws: ws, now: time.Now}
}

// WithClock overrides the engine clock. Tests use this to pin timestamps.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// CreateDealFromLead opens a deal at the initial stage and bumps the source
// lead to qualified. The service name is denormalized onto the deal so the
// card keeps its label if the service later changes.
func (e *Engine) CreateDealFromLead(leadID, serviceID string, value int, name, notes string) (*model.Deal, error) {
	lead := e.ws.LeadByID(leadID)
	if lead == nil {
		return nil, eris.Wrapf(ErrNotFound, "lead %s", leadID)
	}

	serviceName := "Custom"
	if svc := e.ws.ServiceByID(serviceID); svc != nil {
		serviceName = svc.Name
	}

	now := e.now()
	deal := model.Deal{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		Name:        name,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Value:       value,
		Stage:       model.StageLead,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.ws.Deals = append(e.ws.Deals, deal)

	lead.Status = model.LeadStatusQualified
	lead.UpdatedAt = now

	e.ws.AddActivity(model.ActivityDealCreated,
		fmt.Sprintf("New deal %s created ($%d)", deal.Name, deal.Value), now)
	zap.L().Info("deal created",
		zap.String("deal_id", deal.ID),
		zap.String("lead_id", leadID),
		zap.Int("value", value),
	)

	return e.ws.DealByID(deal.ID), nil
}

// MoveDeal sets a deal's stage. Stages outside the enum are rejected before
// the deal is touched; within the enum any move is allowed, backward
// included. Moving to won converts the deal's lead into a client unless one
// already exists, so repeating the move is harmless.
func (e *Engine) MoveDeal(dealID, stage string) (*model.Deal, error) {
	newStage, err := model.ParseStage(stage)
	if err != nil {
		return nil, err
	}

	deal := e.ws.DealByID(dealID)
	if deal == nil {
		return nil, eris.Wrapf(ErrNotFound, "deal %s", dealID)
	}

	now := e.now()
	oldStage := deal.Stage
	deal.Stage = newStage
	deal.UpdatedAt = now

	switch {
	case newStage == model.StageWon:
		if e.ws.ClientByLeadID(deal.LeadID) == nil {
			e.convertToClient(deal)
		}
		e.ws.AddActivity(model.ActivityDealMoved,
			fmt.Sprintf("Deal %s was won", deal.Name), now)
	case newStage == model.StageLost:
		e.ws.AddActivity(model.ActivityDealMoved,
			fmt.Sprintf("Deal %s was lost", deal.Name), now)
	case oldStage != newStage:
		e.ws.AddActivity(model.ActivityDealMoved,
			fmt.Sprintf("%s moved to %s", deal.Name, newStage), now)
	}

	zap.L().Info("deal moved",
		zap.String("deal_id", deal.ID),
		zap.String("from", string(oldStage)),
		zap.String("to", string(newStage)),
	)

	return deal, nil
}

// convertToClient creates the client record for a won deal. It is the single
// conversion path for both stage moves and deal edits. A deleted lead does
// not abort conversion: the deal's own name and notes stand in for the lead
// identity.
func (e *Engine) convertToClient(deal *model.Deal) *model.Client {
	now := e.now()

	client := model.Client{
		ID:        uuid.New().String(),
		LeadID:    deal.LeadID,
		DealID:    deal.ID,
		Name:      deal.Name,
		Platform:  model.PlatformTwitch,
		Status:    model.ClientOnboarding,
		Services:  []string{deal.ServiceID},
		MRR:       deal.Value,
		StartDate: now,
		Notes:     deal.Notes,
	}
	if lead := e.ws.LeadByID(deal.LeadID); lead != nil {
		client.Name = lead.Name
		client.Email = lead.Email
		client.Platform = lead.Platform
	}
	e.ws.Clients = append(e.ws.Clients, client)

	if svc := e.ws.ServiceByID(deal.ServiceID); svc != nil {
		svc.ClientCount++
	}

	e.ws.Tasks = append(e.ws.Tasks, model.Task{
		ID:          uuid.New().String(),
		Title:       "Onboard " + client.Name,
		Type:        model.TaskOnboarding,
		Status:      model.TaskPending,
		DueDate:     now.Add(onboardingLeadTime),
		RelatedTo:   client.ID,
		RelatedType: "client",
		CreatedAt:   now,
	})

	e.ws.AddActivity(model.ActivityClientAdded,
		fmt.Sprintf("New client %s was added", client.Name), now)
	zap.L().Info("deal converted to client",
		zap.String("deal_id", deal.ID),
		zap.String("client_id", client.ID),
		zap.Int("mrr", client.MRR),
	)

	return e.ws.ClientByID(client.ID)
}

// UpdateDeal edits a deal's fields. Stage changes are delegated to MoveDeal
// so won-conversion and activity logging stay on the single path.
func (e *Engine) UpdateDeal(dealID string, in model.DealInput, stage string) (*model.Deal, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	deal := e.ws.DealByID(dealID)
	if deal == nil {
		return nil, eris.Wrapf(ErrNotFound, "deal %s", dealID)
	}

	deal.Name = in.Name
	deal.Value = in.Value
	deal.Notes = in.Notes
	if in.ServiceID != deal.ServiceID {
		deal.ServiceID = in.ServiceID
		deal.ServiceName = "Custom"
		if svc := e.ws.ServiceByID(in.ServiceID); svc != nil {
			deal.ServiceName = svc.Name
		}
	}
	deal.UpdatedAt = e.now()

	if stage != "" && stage != string(deal.Stage) {
		return e.MoveDeal(dealID, stage)
	}
	return deal, nil
}

// DeleteDeal removes a deal. Clients created from it are left alone.
func (e *Engine) DeleteDeal(dealID string) error {
	for i := range e.ws.Deals {
		if e.ws.Deals[i].ID == dealID {
			e.ws.Deals = append(e.ws.Deals[:i], e.ws.Deals[i+1:]...)
			return nil
		}
	}
	return eris.Wrapf(ErrNotFound, "deal %s", dealID)
}
