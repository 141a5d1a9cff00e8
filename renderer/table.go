package renderer

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// timelineHeader is the header of the plain text timeline.
var timelineHeader = []string{"#", "Timestamp", "Type", "Asset", "Amount", "Currency", "Price", "Venue", "Note"}

// TimelineTable writes t as a plain text table, for terminals where markdown
// is not rendered.
func TimelineTable(w io.Writer, t *Timeline) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(timelineHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})
	for _, r := range t.Rows {
		table.Append([]string{
			strconv.FormatInt(r.Seq, 10),
			r.Timestamp,
			r.Type,
			r.Asset,
			r.Amount,
			r.Currency,
			r.Price,
			r.Venue,
			r.Note,
		})
	}
	table.Render()
}

// BalancesTable writes b as a plain text table.
func BalancesTable(w io.Writer, b *Balances) {
	table := tablewriter.NewWriter(w)
	header := []string{"Asset", "Balance"}
	if b.ByVenue {
		header = append([]string{"Venue"}, header...)
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for _, l := range b.Lines {
		line := []string{l.Asset, l.Amount}
		if b.ByVenue {
			line = append([]string{l.Venue}, line...)
		}
		table.Append(line)
	}
	table.Render()
}
