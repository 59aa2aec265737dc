package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	grievanceresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/grievance"
)

var statusCmd = &cobra.Command{
	Use:   "status <ticket-id>",
	Short: "Show the status of a grievance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var grievancesCmd = &cobra.Command{
	Use:   "grievances",
	Short: "List every grievance, most recent first",
	RunE:  runGrievances,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the official dashboard aggregates",
	RunE:  runDashboard,
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <ticket-id> <status>",
	Short: "Change the status of a grievance (open, in-progress, resolved, closed)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := newClientFromFlags(cmd)
	defer client.Close()

	g, err := client.GetGrievance(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render(cmd, g, func(w io.Writer) { printGrievance(w, g) })
}

func runGrievances(cmd *cobra.Command, args []string) error {
	client := newClientFromFlags(cmd)
	defer client.Close()

	list, err := client.ListGrievances(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd, list, func(w io.Writer) { printGrievanceTable(w, list.Data) })
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client := newClientFromFlags(cmd)
	defer client.Close()

	dashboard, err := client.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd, dashboard, func(w io.Writer) {
		fmt.Fprintf(w, "Total: %d  Open: %d  In Progress: %d  Resolved: %d\n\n",
			dashboard.Total, dashboard.Open, dashboard.InProgress, dashboard.Resolved)
		fmt.Fprintln(w, "By category:")
		for _, c := range dashboard.ByCategory {
			fmt.Fprintf(w, "  %-22s %d\n", c.Label, c.Count)
		}
		fmt.Fprintln(w, "\nRecent:")
		printGrievanceTable(w, dashboard.Recent)
	})
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	client := newClientFromFlags(cmd)
	defer client.Close()

	g, err := client.UpdateStatus(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return render(cmd, g, func(w io.Writer) { printGrievance(w, g) })
}

func render(cmd *cobra.Command, v any, text func(io.Writer)) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	text(cmd.OutOrStdout())
	return nil
}

func printGrievance(w io.Writer, g *grievanceresponses.GrievanceResponse) {
	fmt.Fprintf(w, "%s  [%s]\n", g.ID, g.StatusLabel)
	fmt.Fprintf(w, "  Category:  %s\n", g.CategoryLabel)
	fmt.Fprintf(w, "  Location:  %s\n", g.Location)
	fmt.Fprintf(w, "  Summary:   %s\n", g.Summary)
	fmt.Fprintf(w, "  Submitted: %s\n", g.SubmittedAt.Format("2006-01-02 15:04"))
}

func printGrievanceTable(w io.Writer, records []grievanceresponses.GrievanceResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCATEGORY\tLOCATION\tSUBMITTED")
	for _, g := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.StatusLabel, g.CategoryLabel, g.Location, g.SubmittedAt.Format("2006-01-02"))
	}
	_ = tw.Flush()
}
