package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autobrand/crm-cli/internal/export"
	"github.com/autobrand/crm-cli/internal/model"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leads, deals, and clients to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			if err := export.WriteWorkbook(exportPath, ws); err != nil {
				return err
			}
			zap.L().Info("export complete",
				zap.String("path", exportPath),
				zap.Int("leads", len(ws.Leads)),
				zap.Int("deals", len(ws.Deals)),
				zap.Int("clients", len(ws.Clients)),
			)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "out", "crm-export.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
