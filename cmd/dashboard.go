package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/format"
	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

const (
	dashboardHotLeads   = 5
	dashboardTasks      = 5
	dashboardActivities = 8
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show KPIs, pipeline overview, hot leads, and recent activity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			out := cmd.OutOrStdout()
			cur := ws.Settings.Currency

			m := pipeline.Summarize(ws)
			fmt.Fprintf(out, "Leads: %d   Active deals: %d (%s)   Active clients: %d   MRR: %s   Pending tasks: %d\n\n",
				m.TotalLeads, m.ActiveDeals, format.Money(m.ActiveDealValue, cur),
				m.ActiveClients, format.Money(m.MRR, cur), m.PendingTasks)

			fmt.Fprintln(out, "Pipeline")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, s := range pipeline.StageSummaries(ws) {
				if s.Stage == model.StageLost {
					continue
				}
				fmt.Fprintf(w, "  %s\t%d\t%s\n", s.Stage, s.Count, format.Money(s.Value, cur))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			hot := pipeline.HotLeads(ws, dashboardHotLeads)
			fmt.Fprintln(out, "\nHot leads")
			if len(hot) == 0 {
				fmt.Fprintln(out, "  none yet - import leads from the scraper")
			}
			for _, l := range hot {
				fmt.Fprintf(out, "  %s (%s, %s followers, score %d)\n",
					l.Name, l.Platform, format.Count(l.Followers), l.Score)
			}

			fmt.Fprintln(out, "\nUpcoming tasks")
			for _, t := range pipeline.UpcomingTasks(ws, dashboardTasks) {
				fmt.Fprintf(out, "  %s (%s, due %s)\n", t.Title, t.Type, t.DueDate.Format("2006-01-02"))
			}

			fmt.Fprintln(out, "\nRecent activity")
			for i, a := range ws.Activities {
				if i >= dashboardActivities {
					break
				}
				fmt.Fprintf(out, "  %s  %s\n", a.Timestamp.Format("Jan 2 15:04"), a.Text)
			}

			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
