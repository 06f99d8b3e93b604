package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/format"
	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage leads",
}

var (
	leadTierFilter   string
	leadStatusFilter string
	leadSourceFilter string
)

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, highest score first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			leads := filterLeads(ws.Leads, leadTierFilter, leadStatusFilter, leadSourceFilter)
			sortLeadsByScore(leads)

			if len(leads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leads found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLATFORM\tTIER\tSCORE\tFOLLOWERS\tSTATUS")
			for _, l := range leads {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					l.ID, l.Name, l.Platform, l.Tier, l.Score, format.Count(l.Followers), l.Status)
			}
			return w.Flush()
		})
	},
}

var leadInput model.LeadInput

var leadsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a lead manually",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			lead, err := pipeline.New(ws).AddLead(leadInput)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added lead %s (%s, score %d)\n", lead.Name, lead.Tier, lead.Score)
			return nil
		})
	},
}

var leadID string

var (
	leadNameSet      string
	leadEmailSet     string
	leadPlatformSet  string
	leadFollowersSet int
	leadScoreSet     int
	leadNotesSet     string
	leadStatusSet    string
)

var leadsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a lead's fields, including its status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			lead := ws.LeadByID(leadID)
			if lead == nil {
				return pipeline.ErrNotFound
			}

			in := model.LeadInput{
				Name:      lead.Name,
				Email:     lead.Email,
				Platform:  string(lead.Platform),
				Source:    string(lead.Source),
				Followers: lead.Followers,
				Score:     lead.Score,
				Notes:     lead.Notes,
			}
			if leadNameSet != "" {
				in.Name = leadNameSet
			}
			if leadEmailSet != "" {
				in.Email = leadEmailSet
			}
			if leadPlatformSet != "" {
				in.Platform = leadPlatformSet
			}
			if cmd.Flags().Changed("followers") {
				in.Followers = leadFollowersSet
			}
			if cmd.Flags().Changed("score") {
				in.Score = leadScoreSet
			}
			if leadNotesSet != "" {
				in.Notes = leadNotesSet
			}

			updated, err := pipeline.New(ws).UpdateLead(leadID, in, leadStatusSet)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated lead %s (%s, score %d)\n", updated.Name, updated.Tier, updated.Score)
			return nil
		})
	},
}

var leadsContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Mark a lead as contacted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			lead, err := pipeline.New(ws).MarkLeadContacted(leadID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as contacted\n", lead.Name)
			return nil
		})
	},
}

var leadsRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a lead",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			return pipeline.New(ws).DeleteLead(leadID)
		})
	},
}

// filterLeads applies the optional tier/status/source filters.
func filterLeads(leads []model.Lead, tier, status, source string) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		if tier != "" && string(l.Tier) != tier {
			continue
		}
		if status != "" && string(l.Status) != status {
			continue
		}
		if source != "" && string(l.Source) != source {
			continue
		}
		out = append(out, l)
	}
	return out
}

func sortLeadsByScore(leads []model.Lead) {
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].Score > leads[j].Score })
}

func init() {
	leadsListCmd.Flags().StringVar(&leadTierFilter, "tier", "", "filter by tier (hot|warm|cold)")
	leadsListCmd.Flags().StringVar(&leadStatusFilter, "status", "", "filter by status")
	leadsListCmd.Flags().StringVar(&leadSourceFilter, "source", "", "filter by source")

	leadsAddCmd.Flags().StringVar(&leadInput.Name, "name", "", "creator name (required)")
	leadsAddCmd.Flags().StringVar(&leadInput.Email, "email", "", "business email")
	leadsAddCmd.Flags().StringVar(&leadInput.Platform, "platform", "Twitch", "platform (Twitch|YouTube|Instagram)")
	leadsAddCmd.Flags().StringVar(&leadInput.Source, "source", "outbound", "lead source")
	leadsAddCmd.Flags().IntVar(&leadInput.Followers, "followers", 0, "follower count")
	leadsAddCmd.Flags().IntVar(&leadInput.Score, "score", 50, "lead score 0-100")
	leadsAddCmd.Flags().StringVar(&leadInput.Notes, "notes", "", "free-text notes")
	_ = leadsAddCmd.MarkFlagRequired("name")

	leadsEditCmd.Flags().StringVar(&leadID, "id", "", "lead id (required)")
	leadsEditCmd.Flags().StringVar(&leadNameSet, "name", "", "new name")
	leadsEditCmd.Flags().StringVar(&leadEmailSet, "email", "", "new email")
	leadsEditCmd.Flags().StringVar(&leadPlatformSet, "platform", "", "new platform (Twitch|YouTube|Instagram)")
	leadsEditCmd.Flags().IntVar(&leadFollowersSet, "followers", 0, "new follower count")
	leadsEditCmd.Flags().IntVar(&leadScoreSet, "score", 0, "new score 0-100 (re-derives the tier)")
	leadsEditCmd.Flags().StringVar(&leadNotesSet, "notes", "", "new notes")
	leadsEditCmd.Flags().StringVar(&leadStatusSet, "status", "", "new status (new|contacted|replied|qualified|unqualified)")
	_ = leadsEditCmd.MarkFlagRequired("id")

	leadsContactCmd.Flags().StringVar(&leadID, "id", "", "lead id (required)")
	_ = leadsContactCmd.MarkFlagRequired("id")
	leadsRmCmd.Flags().StringVar(&leadID, "id", "", "lead id (required)")
	_ = leadsRmCmd.MarkFlagRequired("id")

	leadsCmd.AddCommand(leadsListCmd, leadsAddCmd, leadsEditCmd, leadsContactCmd, leadsRmCmd)
	rootCmd.AddCommand(leadsCmd)
}
