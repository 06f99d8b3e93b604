package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/format"
	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage service offerings",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service offerings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tPERIOD\tCLIENTS")
			for _, s := range ws.Services {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					s.ID, s.Name, format.Money(s.Price, ws.Settings.Currency), s.Period, s.ClientCount)
			}
			return w.Flush()
		})
	},
}

var (
	svcName     string
	svcDesc     string
	svcPrice    int
	svcPeriod   string
	svcFeatures string
)

var servicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a service offering",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			in := model.ServiceInput{
				Name:        svcName,
				Description: svcDesc,
				Price:       svcPrice,
				Period:      svcPeriod,
				Features:    splitFeatures(svcFeatures),
			}
			svc, err := pipeline.New(ws).AddService(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added service %s (%s/%s)\n",
				svc.Name, format.Money(svc.Price, ws.Settings.Currency), svc.Period)
			return nil
		})
	},
}

var (
	svcID          string
	svcNameSet     string
	svcDescSet     string
	svcPriceSet    int
	svcPeriodSet   string
	svcFeaturesSet string
)

var servicesEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a service offering",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			svc := ws.ServiceByID(svcID)
			if svc == nil {
				return pipeline.ErrNotFound
			}

			in := model.ServiceInput{
				Name:        svc.Name,
				Description: svc.Description,
				Price:       svc.Price,
				Period:      string(svc.Period),
				Features:    svc.Features,
			}
			if svcNameSet != "" {
				in.Name = svcNameSet
			}
			if svcDescSet != "" {
				in.Description = svcDescSet
			}
			if cmd.Flags().Changed("price") {
				in.Price = svcPriceSet
			}
			if svcPeriodSet != "" {
				in.Period = svcPeriodSet
			}
			if svcFeaturesSet != "" {
				in.Features = splitFeatures(svcFeaturesSet)
			}

			updated, err := pipeline.New(ws).UpdateService(svcID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated service %s (%s/%s)\n",
				updated.Name, format.Money(updated.Price, ws.Settings.Currency), updated.Period)
			return nil
		})
	},
}

// splitFeatures turns a comma-separated flag value into the ordered feature
// list, dropping empty entries.
func splitFeatures(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func init() {
	servicesAddCmd.Flags().StringVar(&svcName, "name", "", "service name (required)")
	servicesAddCmd.Flags().StringVar(&svcDesc, "description", "", "service description")
	servicesAddCmd.Flags().IntVar(&svcPrice, "price", 199, "price")
	servicesAddCmd.Flags().StringVar(&svcPeriod, "period", "month", "billing period (month|year|one-time)")
	servicesAddCmd.Flags().StringVar(&svcFeatures, "features", "", "comma-separated feature list")
	_ = servicesAddCmd.MarkFlagRequired("name")

	servicesEditCmd.Flags().StringVar(&svcID, "id", "", "service id (required)")
	servicesEditCmd.Flags().StringVar(&svcNameSet, "name", "", "new name")
	servicesEditCmd.Flags().StringVar(&svcDescSet, "description", "", "new description")
	servicesEditCmd.Flags().IntVar(&svcPriceSet, "price", 0, "new price")
	servicesEditCmd.Flags().StringVar(&svcPeriodSet, "period", "", "new billing period (month|year|one-time)")
	servicesEditCmd.Flags().StringVar(&svcFeaturesSet, "features", "", "new comma-separated feature list")
	_ = servicesEditCmd.MarkFlagRequired("id")

	servicesCmd.AddCommand(servicesListCmd, servicesAddCmd, servicesEditCmd)
	rootCmd.AddCommand(servicesCmd)
}
