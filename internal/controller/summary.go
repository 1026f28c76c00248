// Package controller renders conversion results for the terminal.
package controller

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/vonacht/cd2ifier/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// SummaryUI prints a per-file conversion summary using the command's
// output stream, so tests can capture it.
type SummaryUI struct {
	cmd *cobra.Command
}

// NewSummaryUI creates a SummaryUI bound to a cobra command.
func NewSummaryUI(cmd *cobra.Command) *SummaryUI {
	return &SummaryUI{cmd: cmd}
}

// DisplayResults renders one row per converted file plus totals.
func (s *SummaryUI) DisplayResults(results ...m.ConversionResult) {
	s.cmd.Println(headerStyle.Render("Conversion complete"))
	s.cmd.Print(renderSummaryTable(results))
}

func renderSummaryTable(results []m.ConversionResult) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Source", "Target", "Fields", "Dropped", "Mutators", "Enemies"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var total m.Summary

	for _, result := range results {
		sum := result.Summary
		table.Append([]string{
			string(result.Source),
			string(result.Target),
			fmt.Sprintf("%d", sum.Relocated+sum.Passthrough),
			fmt.Sprintf("%d", sum.Deprecated+sum.Unknown),
			fmt.Sprintf("%d", sum.Mutators),
			fmt.Sprintf("%d", sum.Enemies),
		})

		total.Relocated += sum.Relocated
		total.Passthrough += sum.Passthrough
		total.Deprecated += sum.Deprecated
		total.Unknown += sum.Unknown
		total.Mutators += sum.Mutators
		total.Enemies += sum.Enemies
	}

	table.SetFooter([]string{
		fmt.Sprintf("Files %d", len(results)),
		"",
		fmt.Sprintf("%d", total.Relocated+total.Passthrough),
		fmt.Sprintf("%d", total.Deprecated+total.Unknown),
		fmt.Sprintf("%d", total.Mutators),
		fmt.Sprintf("%d", total.Enemies),
	})

	table.Render()

	return buf.String()
}
