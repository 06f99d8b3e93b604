package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/format"
	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Manage the sales pipeline",
}

var dealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deals grouped by stage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			out := cmd.OutOrStdout()
			for _, sum := range pipeline.StageSummaries(ws) {
				fmt.Fprintf(out, "%s (%d, %s)\n", sum.Stage, sum.Count, format.Money(sum.Value, ws.Settings.Currency))
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, d := range ws.Deals {
					if d.Stage != sum.Stage {
						continue
					}
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
						d.ID, d.Name, d.ServiceName, format.Money(d.Value, ws.Settings.Currency))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var (
	dealLeadID    string
	dealInput     model.DealInput
	dealID        string
	dealStage     string
	dealNameSet   string
	dealValueSet  int
	dealNotesSet  string
	dealSvcSet    string
	dealStageEdit string
)

var dealsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a deal from a lead",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			if dealInput.Name == "" {
				if lead := ws.LeadByID(dealLeadID); lead != nil {
					dealInput.Name = lead.Name + " - Automation Package"
				}
			}
			if dealInput.Value == 0 {
				if svc := ws.ServiceByID(dealInput.ServiceID); svc != nil {
					dealInput.Value = svc.Price
				}
			}
			if err := model.ValidateInput(dealInput); err != nil {
				return err
			}

			deal, err := pipeline.New(ws).CreateDealFromLead(
				dealLeadID, dealInput.ServiceID, dealInput.Value, dealInput.Name, dealInput.Notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deal %s (%s) at stage %s\n",
				deal.Name, format.Money(deal.Value, ws.Settings.Currency), deal.Stage)
			return nil
		})
	},
}

var dealsMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a deal to another stage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			deal, err := pipeline.New(ws).MoveDeal(dealID, dealStage)
			if err != nil {
				return err
			}
			switch deal.Stage {
			case model.StageWon:
				fmt.Fprintf(cmd.OutOrStdout(), "Deal %s won\n", deal.Name)
			case model.StageLost:
				fmt.Fprintf(cmd.OutOrStdout(), "Deal %s marked as lost\n", deal.Name)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Deal %s moved to %s\n", deal.Name, deal.Stage)
			}
			return nil
		})
	},
}

var dealsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a deal's fields, including its stage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			deal := ws.DealByID(dealID)
			if deal == nil {
				return pipeline.ErrNotFound
			}

			in := model.DealInput{
				Name:      deal.Name,
				ServiceID: deal.ServiceID,
				Value:     deal.Value,
				Notes:     deal.Notes,
			}
			if dealNameSet != "" {
				in.Name = dealNameSet
			}
			if dealSvcSet != "" {
				in.ServiceID = dealSvcSet
			}
			if cmd.Flags().Changed("value") {
				in.Value = dealValueSet
			}
			if dealNotesSet != "" {
				in.Notes = dealNotesSet
			}

			updated, err := pipeline.New(ws).UpdateDeal(dealID, in, dealStageEdit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated deal %s\n", updated.Name)
			return nil
		})
	},
}

var dealsRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a deal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			return pipeline.New(ws).DeleteDeal(dealID)
		})
	},
}

func init() {
	dealsCreateCmd.Flags().StringVar(&dealLeadID, "lead", "", "lead id (required)")
	dealsCreateCmd.Flags().StringVar(&dealInput.ServiceID, "service", "", "service id (required)")
	dealsCreateCmd.Flags().IntVar(&dealInput.Value, "value", 0, "deal value (defaults to service price)")
	dealsCreateCmd.Flags().StringVar(&dealInput.Name, "name", "", "deal name (defaults to '<lead> - Automation Package')")
	dealsCreateCmd.Flags().StringVar(&dealInput.Notes, "notes", "", "deal notes")
	_ = dealsCreateCmd.MarkFlagRequired("lead")
	_ = dealsCreateCmd.MarkFlagRequired("service")

	dealsMoveCmd.Flags().StringVar(&dealID, "id", "", "deal id (required)")
	dealsMoveCmd.Flags().StringVar(&dealStage, "stage", "", "target stage (required)")
	_ = dealsMoveCmd.MarkFlagRequired("id")
	_ = dealsMoveCmd.MarkFlagRequired("stage")

	dealsEditCmd.Flags().StringVar(&dealID, "id", "", "deal id (required)")
	dealsEditCmd.Flags().StringVar(&dealNameSet, "name", "", "new deal name")
	dealsEditCmd.Flags().StringVar(&dealSvcSet, "service", "", "new service id")
	dealsEditCmd.Flags().IntVar(&dealValueSet, "value", 0, "new deal value")
	dealsEditCmd.Flags().StringVar(&dealNotesSet, "notes", "", "new notes")
	dealsEditCmd.Flags().StringVar(&dealStageEdit, "stage", "", "new stage")
	_ = dealsEditCmd.MarkFlagRequired("id")

	dealsRmCmd.Flags().StringVar(&dealID, "id", "", "deal id (required)")
	_ = dealsRmCmd.MarkFlagRequired("id")

	dealsCmd.AddCommand(dealsListCmd, dealsCreateCmd, dealsMoveCmd, dealsEditCmd, dealsRmCmd)
	rootCmd.AddCommand(dealsCmd)
}
