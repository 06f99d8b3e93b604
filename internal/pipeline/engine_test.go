package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrand/crm-cli/internal/model"
)

var engineTime = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestWorkspace() *model.Workspace {
	return &model.Workspace{
		Leads: []model.Lead{{
			ID:       "lead-1",
			Name:     "StreamQueen",
			Email:    "queen@x.com",
			Platform: model.PlatformYouTube,
			Score:    80,
			Tier:     model.TierHot,
			Status:   model.LeadStatusReplied,
		}},
		Services: []model.Service{{
			ID:    "svc-1",
			Name:  "Stream Announcements",
			Price: 149,
		}},
		Settings: model.Settings{Currency: "USD"},
	}
}

func newTestEngine(ws *model.Workspace) *Engine {
	return New(ws).WithClock(func() time.Time { return engineTime })
}

func TestCreateDealFromLead(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	deal, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "StreamQueen - Automation Package", "warm intro")
	require.NoError(t, err)

	assert.Equal(t, model.StageLead, deal.Stage)
	assert.Equal(t, "Stream Announcements", deal.ServiceName)
	assert.Equal(t, 149, deal.Value)
	assert.Equal(t, "lead-1", deal.LeadID)

	// Source lead is bumped to qualified; nothing else is touched.
	assert.Equal(t, model.LeadStatusQualified, ws.Leads[0].Status)
	assert.Empty(t, ws.Clients)
	assert.Equal(t, 0, ws.Services[0].ClientCount)

	require.Len(t, ws.Activities, 1)
	assert.Equal(t, model.ActivityDealCreated, ws.Activities[0].Type)
}

func TestCreateDealFromLead_MissingLead(t *testing.T) {
	e := newTestEngine(newTestWorkspace())

	_, err := e.CreateDealFromLead("nope", "svc-1", 100, "x", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDealFromLead_MissingServiceFallsBackToCustom(t *testing.T) {
	ws := newTestWorkspace()
	deal, err := newTestEngine(ws).CreateDealFromLead("lead-1", "svc-missing", 100, "x", "")
	require.NoError(t, err)
	assert.Equal(t, "Custom", deal.ServiceName)
}

func TestMoveDeal_InvalidStageLeavesDealUntouched(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)

	_, err = e.MoveDeal(ws.Deals[0].ID, "closed-won")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidStage)
	assert.Equal(t, model.StageLead, ws.Deals[0].Stage)
}

func TestMoveDeal_MissingDeal(t *testing.T) {
	e := newTestEngine(newTestWorkspace())
	_, err := e.MoveDeal("nope", "qualified")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveDeal_BackwardMoveAllowed(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)
	id := ws.Deals[0].ID

	_, err = e.MoveDeal(id, "negotiation")
	require.NoError(t, err)
	deal, err := e.MoveDeal(id, "qualified")
	require.NoError(t, err)
	assert.Equal(t, model.StageQualified, deal.Stage)
}

func TestMoveDeal_WonConvertsExactlyOnce(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "notes")
	require.NoError(t, err)
	id := ws.Deals[0].ID

	_, err = e.MoveDeal(id, "won")
	require.NoError(t, err)
	_, err = e.MoveDeal(id, "won")
	require.NoError(t, err)

	require.Len(t, ws.Clients, 1)
	client := ws.Clients[0]
	assert.Equal(t, "StreamQueen", client.Name)
	assert.Equal(t, "queen@x.com", client.Email)
	assert.Equal(t, model.PlatformYouTube, client.Platform)
	assert.Equal(t, model.ClientOnboarding, client.Status)
	assert.Equal(t, 149, client.MRR)
	assert.Equal(t, "lead-1", client.LeadID)
	assert.Equal(t, id, client.DealID)
	assert.Equal(t, []string{"svc-1"}, client.Services)

	assert.Equal(t, 1, ws.Services[0].ClientCount)

	// Conversion schedules one onboarding task due three days out.
	require.Len(t, ws.Tasks, 1)
	task := ws.Tasks[0]
	assert.Equal(t, model.TaskOnboarding, task.Type)
	assert.Equal(t, model.TaskPending, task.Status)
	assert.Equal(t, engineTime.Add(72*time.Hour), task.DueDate)
	assert.Equal(t, client.ID, task.RelatedTo)
}

func TestMoveDeal_LostDoesNotConvert(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)

	deal, err := e.MoveDeal(ws.Deals[0].ID, "lost")
	require.NoError(t, err)
	assert.Equal(t, model.StageLost, deal.Stage)
	assert.Empty(t, ws.Clients)
	assert.Empty(t, ws.Tasks)
}

func TestMoveDeal_DeletedLeadStillConverts(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 200, "Ghost - Automation Package", "deal notes")
	require.NoError(t, err)
	id := ws.Deals[0].ID

	require.NoError(t, e.DeleteLead("lead-1"))

	_, err = e.MoveDeal(id, "won")
	require.NoError(t, err)

	require.Len(t, ws.Clients, 1)
	client := ws.Clients[0]
	assert.Equal(t, "Ghost - Automation Package", client.Name)
	assert.Empty(t, client.Email)
	assert.Equal(t, model.PlatformTwitch, client.Platform)
	assert.Equal(t, "deal notes", client.Notes)
	assert.Equal(t, 200, client.MRR)
}

func TestUpdateDeal_StageChangeSharesConversionPath(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)
	id := ws.Deals[0].ID

	in := model.DealInput{Name: "deal", ServiceID: "svc-1", Value: 175}
	deal, err := e.UpdateDeal(id, in, "won")
	require.NoError(t, err)
	assert.Equal(t, model.StageWon, deal.Stage)
	require.Len(t, ws.Clients, 1)
	assert.Equal(t, 175, ws.Clients[0].MRR)

	// A second edit into won must not create another client.
	_, err = e.UpdateDeal(id, in, "won")
	require.NoError(t, err)
	assert.Len(t, ws.Clients, 1)
}

func TestUpdateDeal_ServiceChangeRefreshesDenormalizedName(t *testing.T) {
	ws := newTestWorkspace()
	ws.Services = append(ws.Services, model.Service{ID: "svc-2", Name: "Content Repurposing", Price: 299})
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)

	in := model.DealInput{Name: "deal", ServiceID: "svc-2", Value: 299}
	deal, err := e.UpdateDeal(ws.Deals[0].ID, in, "")
	require.NoError(t, err)
	assert.Equal(t, "Content Repurposing", deal.ServiceName)
}

func TestToggleTask_LogsCompletionOnly(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	task, err := e.AddTask(model.TaskInput{Title: "call back", Type: "follow-up", DueDate: "2026-04-03"})
	require.NoError(t, err)

	done, err := e.ToggleTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, done.Status)
	require.Len(t, ws.Activities, 1)
	assert.Equal(t, model.ActivityTaskCompleted, ws.Activities[0].Type)

	reopened, err := e.ToggleTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, reopened.Status)
	assert.Len(t, ws.Activities, 1)
}

func TestUpdateLead_ScoreEditRederivesTier(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	in := model.LeadInput{Name: "StreamQueen", Email: "queen@x.com", Platform: "YouTube", Followers: 2000, Score: 20}
	lead, err := e.UpdateLead("lead-1", in, "")
	require.NoError(t, err)

	assert.Equal(t, 20, lead.Score)
	assert.Equal(t, model.TierCold, lead.Tier)
	assert.Equal(t, 2000, lead.Followers)
	// Empty status leaves the current one in place.
	assert.Equal(t, model.LeadStatusReplied, lead.Status)
	assert.Equal(t, engineTime, lead.UpdatedAt)
}

func TestUpdateLead_StatusChange(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	in := model.LeadInput{Name: "StreamQueen", Score: 80}
	lead, err := e.UpdateLead("lead-1", in, "unqualified")
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusUnqualified, lead.Status)
	assert.Equal(t, model.TierHot, lead.Tier)
}

func TestUpdateLead_MissingOrInvalid(t *testing.T) {
	e := newTestEngine(newTestWorkspace())

	_, err := e.UpdateLead("nope", model.LeadInput{Name: "x", Score: 50}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.UpdateLead("lead-1", model.LeadInput{Name: "x", Score: 120}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score must be at most 100")
}

func TestUpdateService(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	in := model.ServiceInput{
		Name:     "Stream Announcements Plus",
		Price:    199,
		Period:   "month",
		Features: []string{"Multi-platform posting", "Priority support"},
	}
	svc, err := e.UpdateService("svc-1", in)
	require.NoError(t, err)
	assert.Equal(t, "Stream Announcements Plus", svc.Name)
	assert.Equal(t, 199, svc.Price)
	assert.Len(t, svc.Features, 2)

	_, err = e.UpdateService("nope", in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateService_DealsKeepCachedName(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)
	_, err := e.CreateDealFromLead("lead-1", "svc-1", 149, "deal", "")
	require.NoError(t, err)

	in := model.ServiceInput{Name: "Renamed", Price: 149, Period: "month", Features: []string{"x"}}
	_, err = e.UpdateService("svc-1", in)
	require.NoError(t, err)

	assert.Equal(t, "Stream Announcements", ws.Deals[0].ServiceName)
}

func TestAddLead_PrependsAndDerivesTier(t *testing.T) {
	ws := newTestWorkspace()
	e := newTestEngine(ws)

	lead, err := e.AddLead(model.LeadInput{Name: "NewFace", Score: 30})
	require.NoError(t, err)
	assert.Equal(t, model.TierCold, lead.Tier)
	assert.Equal(t, "NewFace", ws.Leads[0].Name)
	assert.Equal(t, "StreamQueen", ws.Leads[1].Name)
}

func TestAddLead_Invalid(t *testing.T) {
	e := newTestEngine(newTestWorkspace())
	_, err := e.AddLead(model.LeadInput{Score: 50})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
