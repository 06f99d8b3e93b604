package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrand/crm-cli/internal/model"
)

func aggregatesWorkspace() *model.Workspace {
	due := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	return &model.Workspace{
		Leads: []model.Lead{
			{ID: "l1", Name: "alpha", Score: 90, Tier: model.TierHot, Status: model.LeadStatusNew},
			{ID: "l2", Name: "beta", Score: 75, Tier: model.TierHot, Status: model.LeadStatusUnqualified},
			{ID: "l3", Name: "gamma", Score: 72, Tier: model.TierHot, Status: model.LeadStatusContacted},
			{ID: "l4", Name: "delta", Score: 45, Tier: model.TierWarm, Status: model.LeadStatusNew},
		},
		Deals: []model.Deal{
			{ID: "d1", Stage: model.StageLead, Value: 100},
			{ID: "d2", Stage: model.StageNegotiation, Value: 300},
			{ID: "d3", Stage: model.StageWon, Value: 500},
			{ID: "d4", Stage: model.StageLost, Value: 700},
		},
		Clients: []model.Client{
			{ID: "c1", Status: model.ClientActive, MRR: 149},
			{ID: "c2", Status: model.ClientActive, MRR: 299},
			{ID: "c3", Status: model.ClientChurned, MRR: 199},
			{ID: "c4", Status: model.ClientOnboarding, MRR: 599},
		},
		Tasks: []model.Task{
			{ID: "t1", Status: model.TaskPending, DueDate: due.Add(48 * time.Hour)},
			{ID: "t2", Status: model.TaskCompleted, DueDate: due},
			{ID: "t3", Status: model.TaskPending, DueDate: due},
		},
	}
}

func TestSummarize(t *testing.T) {
	m := Summarize(aggregatesWorkspace())

	assert.Equal(t, 4, m.TotalLeads)
	// Won and lost deals do not count as active.
	assert.Equal(t, 2, m.ActiveDeals)
	assert.Equal(t, 400, m.ActiveDealValue)
	// Only active clients contribute to MRR.
	assert.Equal(t, 2, m.ActiveClients)
	assert.Equal(t, 448, m.MRR)
	assert.Equal(t, 2, m.PendingTasks)
}

func TestStageSummaries(t *testing.T) {
	got := StageSummaries(aggregatesWorkspace())
	require.Len(t, got, len(model.Stages))

	byStage := map[model.Stage]StageSummary{}
	for _, s := range got {
		byStage[s.Stage] = s
	}
	assert.Equal(t, 1, byStage[model.StageLead].Count)
	assert.Equal(t, 300, byStage[model.StageNegotiation].Value)
	assert.Equal(t, 0, byStage[model.StageProposal].Count)
	assert.Equal(t, 1, byStage[model.StageWon].Count)

	// Order follows the pipeline.
	assert.Equal(t, model.StageLead, got[0].Stage)
	assert.Equal(t, model.StageLost, got[5].Stage)
}

func TestHotLeads(t *testing.T) {
	got := HotLeads(aggregatesWorkspace(), 5)

	// Unqualified hot leads are excluded; warm leads never qualify.
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Name)
	assert.Equal(t, "gamma", got[1].Name)

	assert.Len(t, HotLeads(aggregatesWorkspace(), 1), 1)
}

func TestUpcomingTasks(t *testing.T) {
	got := UpcomingTasks(aggregatesWorkspace(), 5)

	require.Len(t, got, 2)
	assert.Equal(t, "t3", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
}
