// Package export serializes an estimate aggregate into a styled spreadsheet
// document. It formats figures already computed by the core engine and never
// recomputes them, so the export matches the on-screen tables exactly.
package export

import (
	"fmt"
	"strconv"
	"time"

	"stima/internal/core"
)

// Cell colors, shared between the document model and the workbook writer.
const (
	ColorPositive = "006100" // green for non-negative nets
	ColorNegative = "9C0006" // red for losses and flagged costs
)

type (
	// Cell is a single formatted value plus its styling hints.
	Cell struct {
		Value string
		Money bool // right-aligned monetary column
		Bold  bool
		Color string // font color hex, empty for default
	}

	// Row is one line of a section. Header rows get the header fill.
	Row struct {
		Header bool
		Cells  []Cell
	}

	// Section is a titled block of rows.
	Section struct {
		Title string
		Rows  []Row
	}

	// Document is the complete three-section export: summary, roster,
	// monthly breakdown, in that order.
	Document struct {
		Sections []Section
	}
)

// Filename returns the artifact name for an export taken at the given time.
// The name carries the date only, so exports on the same day collide and the
// consumer decides whether to overwrite.
func Filename(now time.Time) string {
	return fmt.Sprintf("project_estimate_%s.xlsx", now.Format("2006-01-02"))
}

// BuildDocument lays out the aggregate into the three export sections. The
// breakdown is derived from the same aggregate the display used, keeping the
// two surfaces bit-identical.
func BuildDocument(agg core.Aggregate, cfg core.ProjectConfig) *Document {
	return &Document{Sections: []Section{
		summarySection(agg, cfg),
		rosterSection(agg),
		breakdownSection(core.GenerateBreakdown(agg)),
	}}
}

func summarySection(agg core.Aggregate, cfg core.ProjectConfig) Section {
	netColor := ColorPositive
	if agg.NetValue < 0 {
		netColor = ColorNegative
	}

	return Section{
		Title: "Summary",
		Rows: []Row{
			labeled("Project", Cell{Value: cfg.ProjectName}),
			labeled("Duration (months)", Cell{Value: strconv.Itoa(agg.ProjectDuration)}),
			labeled("Pricing model", Cell{Value: string(cfg.PricingModel)}),
			labeled("Monthly revenue", money(agg.MonthlyRevenue)),
			labeled("Total revenue", money(agg.TotalRevenue)),
			labeled("Total cost", Cell{Value: core.FormatCurrency(agg.TotalCost), Money: true, Color: ColorNegative}),
			labeled("Net value", Cell{Value: core.FormatCurrency(agg.NetValue), Money: true, Bold: true, Color: netColor}),
		},
	}
}

func rosterSection(agg core.Aggregate) Section {
	section := Section{
		Title: "Team Roster",
		Rows: []Row{header(
			"Role", "Name", "Type", "Share type", "Share value",
			"Effective months", "Monthly payout", "Total payout",
		)},
	}

	for _, stats := range agg.Members {
		m := stats.Member
		section.Rows = append(section.Rows, Row{Cells: []Cell{
			{Value: m.Role},
			{Value: m.Name},
			{Value: string(m.EmploymentType)},
			{Value: string(m.ShareType)},
			{Value: shareValue(m)},
			{Value: strconv.Itoa(stats.EffectiveDuration)},
			money(stats.MonthlyPayout),
			money(stats.TotalPayout),
		}})
	}

	return section
}

func breakdownSection(rows []core.BreakdownRow) Section {
	section := Section{
		Title: "Monthly Breakdown",
		Rows: []Row{header(
			"Month", "Gross revenue", "Team cost", "Referral cost",
			"Total cost", "Net income", "Cumulative net",
		)},
	}

	for _, row := range rows {
		netColor := ColorPositive
		if row.NetIncome < 0 {
			netColor = ColorNegative
		}
		section.Rows = append(section.Rows, Row{Cells: []Cell{
			{Value: fmt.Sprintf("Month %d", row.Month)},
			money(row.GrossRevenue),
			money(row.TeamCost),
			money(row.ReferralCost),
			money(row.TeamCost + row.ReferralCost),
			{Value: core.FormatCurrency(row.NetIncome), Money: true, Bold: true, Color: netColor},
			money(row.CumulativeNet),
		}})
	}

	return section
}

func labeled(label string, value Cell) Row {
	return Row{Cells: []Cell{{Value: label, Bold: true}, value}}
}

func header(titles ...string) Row {
	row := Row{Header: true}
	for _, title := range titles {
		row.Cells = append(row.Cells, Cell{Value: title, Bold: true})
	}
	return row
}

func money(v float64) Cell {
	return Cell{Value: core.FormatCurrency(v), Money: true}
}

func shareValue(m core.Member) string {
	if m.ShareType == core.ShareTypePercentage {
		return strconv.FormatFloat(m.ShareValue, 'f', -1, 64) + "%"
	}
	return core.FormatCurrency(m.ShareValue)
}
