// Package export writes workspace collections to an XLSX workbook.
package export

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/autobrand/crm-cli/internal/model"
)

const dateLayout = "2006-01-02"

// WriteWorkbook writes Leads, Deals, and Clients sheets to path.
func WriteWorkbook(path string, ws *model.Workspace) error {
	f := xlsx.NewFile()

	if err := addLeadsSheet(f, ws.Leads); err != nil {
		return err
	}
	if err := addDealsSheet(f, ws.Deals); err != nil {
		return err
	}
	if err := addClientsSheet(f, ws.Clients); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func addLeadsSheet(f *xlsx.File, leads []model.Lead) error {
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add leads sheet")
	}

	writeRow(sheet, "Name", "Email", "Platform", "Source", "Followers", "Score", "Tier", "Status", "Created")
	for _, l := range leads {
		writeRow(sheet,
			l.Name, l.Email, string(l.Platform), string(l.Source),
			strconv.Itoa(l.Followers), strconv.Itoa(l.Score),
			string(l.Tier), string(l.Status), formatDate(l.CreatedAt),
		)
	}
	return nil
}

func addDealsSheet(f *xlsx.File, deals []model.Deal) error {
	sheet, err := f.AddSheet("Deals")
	if err != nil {
		return eris.Wrap(err, "export: add deals sheet")
	}

	writeRow(sheet, "Name", "Service", "Value", "Stage", "Created", "Updated")
	for _, d := range deals {
		writeRow(sheet,
			d.Name, d.ServiceName, strconv.Itoa(d.Value), string(d.Stage),
			formatDate(d.CreatedAt), formatDate(d.UpdatedAt),
		)
	}
	return nil
}

func addClientsSheet(f *xlsx.File, clients []model.Client) error {
	sheet, err := f.AddSheet("Clients")
	if err != nil {
		return eris.Wrap(err, "export: add clients sheet")
	}

	writeRow(sheet, "Name", "Email", "Platform", "Status", "MRR", "Start Date")
	for _, c := range clients {
		writeRow(sheet,
			c.Name, c.Email, string(c.Platform), string(c.Status),
			strconv.Itoa(c.MRR), formatDate(c.StartDate),
		)
	}
	return nil
}

func writeRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, v := range cells {
		row.AddCell().Value = v
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
