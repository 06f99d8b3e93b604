package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{0, TierCold},
		{39, TierCold},
		{40, TierWarm},
		{69, TierWarm},
		{70, TierHot},
		{100, TierHot},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestLead_SetScore_KeepsTierInSync(t *testing.T) {
	var l Lead
	l.SetScore(85)
	assert.Equal(t, TierHot, l.Tier)

	l.SetScore(12)
	assert.Equal(t, 12, l.Score)
	assert.Equal(t, TierCold, l.Tier)
}

func TestParseStage_Valid(t *testing.T) {
	for _, st := range Stages {
		got, err := ParseStage(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
}

func TestParseStage_Invalid(t *testing.T) {
	_, err := ParseStage("closed-won")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestStage_Terminal(t *testing.T) {
	assert.True(t, StageWon.Terminal())
	assert.True(t, StageLost.Terminal())
	assert.False(t, StageNegotiation.Terminal())
	assert.False(t, StageLead.Terminal())
}

func TestWorkspace_AddActivity_CapsAtFifty(t *testing.T) {
	ws := &Workspace{}
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		ws.AddActivity(ActivityLeadAdded, fmt.Sprintf("event %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	require.Len(t, ws.Activities, 50)
	// Most recent first; the oldest ten evicted.
	assert.Equal(t, "event 59", ws.Activities[0].Text)
	assert.Equal(t, "event 10", ws.Activities[49].Text)
}

func TestWorkspace_Lookups(t *testing.T) {
	ws := &Workspace{
		Leads:   []Lead{{ID: "l1", Name: "streamer"}},
		Deals:   []Deal{{ID: "d1", LeadID: "l1"}},
		Clients: []Client{{ID: "c1", LeadID: "l1", DealID: "d1"}},
	}

	require.NotNil(t, ws.LeadByID("l1"))
	assert.Nil(t, ws.LeadByID("missing"))
	require.NotNil(t, ws.DealByID("d1"))
	require.NotNil(t, ws.ClientByLeadID("l1"))
	assert.Nil(t, ws.ClientByLeadID("l2"))
}

func TestValidateInput_LeadInput(t *testing.T) {
	err := ValidateInput(LeadInput{Name: "", Score: 120})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "score must be at most 100")

	assert.NoError(t, ValidateInput(LeadInput{Name: "ok", Score: 50}))
}
