package pipeline

import (
	"sort"

	"github.com/autobrand/crm-cli/internal/model"
)

// Metrics are the dashboard KPIs. They are recomputed from the live
// collections on every call — views, not stored state.
type Metrics struct {
	TotalLeads      int
	ActiveDeals     int
	ActiveDealValue int
	ActiveClients   int
	MRR             int
	PendingTasks    int
}

// StageSummary is one pipeline column: how many deals sit in a stage and
// what they are worth.
type StageSummary struct {
	Stage model.Stage
	Count int
	Value int
}

// Summarize computes the dashboard KPIs. Won and lost deals are excluded
// from the active-deal figures; only active clients count toward MRR.
func Summarize(ws *model.Workspace) Metrics {
	m := Metrics{TotalLeads: len(ws.Leads)}

	for _, d := range ws.Deals {
		if d.Stage.Terminal() {
			continue
		}
		m.ActiveDeals++
		m.ActiveDealValue += d.Value
	}
	for _, c := range ws.Clients {
		if c.Status == model.ClientActive {
			m.ActiveClients++
			m.MRR += c.MRR
		}
	}
	for _, t := range ws.Tasks {
		if t.Status == model.TaskPending {
			m.PendingTasks++
		}
	}

	return m
}

// StageSummaries returns per-stage deal counts and values in pipeline order.
func StageSummaries(ws *model.Workspace) []StageSummary {
	summaries := make([]StageSummary, len(model.Stages))
	for i, st := range model.Stages {
		summaries[i].Stage = st
	}

	idx := make(map[model.Stage]int, len(model.Stages))
	for i, st := range model.Stages {
		idx[st] = i
	}
	for _, d := range ws.Deals {
		i, ok := idx[d.Stage]
		if !ok {
			continue
		}
		summaries[i].Count++
		summaries[i].Value += d.Value
	}

	return summaries
}

// HotLeads returns up to n hot-tier leads that are still in play, highest
// score first.
func HotLeads(ws *model.Workspace, n int) []model.Lead {
	var hot []model.Lead
	for _, l := range ws.Leads {
		if l.Tier == model.TierHot && l.Status != model.LeadStatusUnqualified {
			hot = append(hot, l)
		}
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].Score > hot[j].Score })

	if len(hot) > n {
		hot = hot[:n]
	}
	return hot
}

// UpcomingTasks returns up to n pending tasks, soonest due first.
func UpcomingTasks(ws *model.Workspace, n int) []model.Task {
	var pending []model.Task
	for _, t := range ws.Tasks {
		if t.Status == model.TaskPending {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].DueDate.Before(pending[j].DueDate) })

	if len(pending) > n {
		pending = pending[:n]
	}
	return pending
}
