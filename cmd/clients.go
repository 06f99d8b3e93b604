package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/format"
	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
}

var (
	clientStatusFilter string
	clientSvcFilter    string
)

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			clients := filterClients(ws.Clients, clientStatusFilter, clientSvcFilter)
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLATFORM\tSTATUS\tMRR\tSINCE")
			for _, c := range clients {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Platform, c.Status,
					format.Money(c.MRR, ws.Settings.Currency), c.StartDate.Format("2006-01-02"))
			}
			return w.Flush()
		})
	},
}

var (
	clientID     string
	clientStatus string
	clientMRR    int
	clientNotes  string
)

var clientsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a client's status, revenue, or notes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			mrr := -1
			if cmd.Flags().Changed("mrr") {
				mrr = clientMRR
			}
			client, err := pipeline.New(ws).UpdateClient(clientID, clientStatus, mrr, clientNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s (%s)\n", client.Name, client.Status)
			return nil
		})
	},
}

func filterClients(clients []model.Client, status, serviceID string) []model.Client {
	out := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if status != "" && string(c.Status) != status {
			continue
		}
		if serviceID != "" && !hasService(c, serviceID) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasService(c model.Client, serviceID string) bool {
	for _, id := range c.Services {
		if id == serviceID {
			return true
		}
	}
	return false
}

func init() {
	clientsListCmd.Flags().StringVar(&clientStatusFilter, "status", "", "filter by status")
	clientsListCmd.Flags().StringVar(&clientSvcFilter, "service", "", "filter by service id")

	clientsUpdateCmd.Flags().StringVar(&clientID, "id", "", "client id (required)")
	clientsUpdateCmd.Flags().StringVar(&clientStatus, "status", "", "new status (onboarding|active|paused|churned)")
	clientsUpdateCmd.Flags().IntVar(&clientMRR, "mrr", 0, "new monthly revenue")
	clientsUpdateCmd.Flags().StringVar(&clientNotes, "notes", "", "new notes")
	_ = clientsUpdateCmd.MarkFlagRequired("id")

	clientsCmd.AddCommand(clientsListCmd, clientsUpdateCmd)
	rootCmd.AddCommand(clientsCmd)
}
