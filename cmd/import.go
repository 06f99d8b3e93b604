package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autobrand/crm-cli/internal/importer"
	"github.com/autobrand/crm-cli/internal/model"
)

var importCSVPath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import leads from a scraper CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := importer.CheckFilename(importCSVPath); err != nil {
			return err
		}

		data, err := os.ReadFile(importCSVPath)
		if err != nil {
			return eris.Wrapf(err, "read %s", importCSVPath)
		}

		var res *importer.Result
		err = withWorkspace(ctx, func(ws *model.Workspace) error {
			res, err = importer.Import(string(data), ws.Leads, time.Now())
			if err != nil {
				return err
			}

			ws.Leads = append(res.Accepted, ws.Leads...)
			ws.AddActivity(model.ActivityLeadAdded,
				fmt.Sprintf("%d leads imported from Twitch Scraper", len(res.Accepted)), time.Now())
			return nil
		})
		if err != nil {
			return err
		}

		var hot, warm, cold int
		for _, l := range res.Accepted {
			switch l.Tier {
			case model.TierHot:
				hot++
			case model.TierWarm:
				warm++
			default:
				cold++
			}
		}

		zap.L().Info("import complete",
			zap.Int("accepted", len(res.Accepted)),
			zap.Int("duplicates", res.Duplicates),
			zap.Int("hot", hot),
			zap.Int("warm", warm),
			zap.Int("cold", cold),
			zap.String("csv", importCSVPath),
		)

		if res.Duplicates > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d leads (%d duplicates skipped)\n", len(res.Accepted), res.Duplicates)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d leads\n", len(res.Accepted))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to CSV file (required)")
	_ = importCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(importCmd)
}
