package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shoetracker/internal/analysis"
	"shoetracker/internal/service"
	"shoetracker/internal/store"
	"shoetracker/internal/units"
)

const dateFlagLayout = "2006-01-02"

var (
	shoeName      string
	shoeColor     string
	shoePurchased string
	shoeTarget    float64

	listArchived bool
	listSearch   string

	deleteForce bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a pair of shoes",
	Long:  "Add a pair of shoes to the rotation. The target distance is in your display unit (km or mi).",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <shoe>",
	Short: "Change a shoe's name, colour, purchase date or target",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List shoes with their mileage",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <shoe>",
	Short: "Show a shoe's metrics and runs",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var archiveCmd = &cobra.Command{
	Use:   "archive <shoe>",
	Short: "Retire a shoe, or restore a retired one",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <shoe>",
	Short: "Delete a shoe and all of its runs",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		cmd.Flags().StringVar(&shoeName, "name", "", "Shoe name")
		cmd.Flags().StringVar(&shoeColor, "color", "", "Colour")
		cmd.Flags().StringVar(&shoePurchased, "purchased", "", "Purchase date, YYYY-MM-DD (default today)")
		cmd.Flags().Float64Var(&shoeTarget, "target", 0, "Target distance in km or mi")
	}
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("target")

	listCmd.Flags().BoolVar(&listArchived, "archived", false, "List retired shoes")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only shoes whose name contains this text")

	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Delete without asking")
}

// parseDate reads a calendar date in the local time zone
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateFlagLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// targetKilometers converts a target entered in the display unit to whole km
func targetKilometers(conv units.Converter, target float64) int {
	return int(math.Round(conv.ToKilometers(target)))
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	purchased := time.Now()
	if shoePurchased != "" {
		if purchased, err = parseDate(shoePurchased); err != nil {
			return err
		}
	}

	shoe, err := a.shoes.Create(service.ShoeInput{
		Name:           shoeName,
		Color:          shoeColor,
		Purchased:      purchased,
		TargetDistance: targetKilometers(a.conv, shoeTarget),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s), target %s\n",
		shoe.Name, shortID(shoe.ID), a.conv.FormatDistance(float64(shoe.TargetDistance), 0))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}

	in := service.ShoeInput{
		Name:           shoe.Name,
		Color:          shoe.Color,
		Purchased:      shoe.Purchased,
		TargetDistance: shoe.TargetDistance,
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = shoeName
	}
	if flags.Changed("color") {
		in.Color = shoeColor
	}
	if flags.Changed("purchased") {
		if in.Purchased, err = parseDate(shoePurchased); err != nil {
			return err
		}
	}
	if flags.Changed("target") {
		in.TargetDistance = targetKilometers(a.conv, shoeTarget)
	}

	updated, err := a.shoes.Update(shoe.ID, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoes, err := a.shoes.List(listArchived, listSearch)
	if err != nil {
		return fmt.Errorf("list shoes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(shoes) == 0 {
		fmt.Fprintln(out, "No shoes found.")
		return nil
	}

	printShoeTable(out, shoes, a.conv, time.Now())
	return nil
}

func printShoeTable(out io.Writer, shoes []analysis.ShoeSummary, conv units.Converter, now time.Time) {
	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tNAME\tDISTANCE\tTARGET\tPROGRESS\tLEFT\tLAST RUN\tSTATUS")
	for _, s := range shoes {
		m := s.Metrics
		left := "-"
		if m.DaysRemaining != nil && !m.IsArchived {
			left = humanize.Comma(int64(*m.DaysRemaining)) + "d"
		}
		last := "never"
		if m.LastWorkoutDate != nil {
			last = humanize.RelTime(*m.LastWorkoutDate, now, "ago", "from now")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\t%s\t%s\n",
			shortID(s.Shoe.ID),
			s.Shoe.Name,
			conv.FormatDistance(m.TotalKilometers, 1),
			conv.FormatDistance(float64(s.Shoe.TargetDistance), 0),
			m.Progress,
			left,
			last,
			statusLabel(m),
		)
	}
	w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}
	detail, err := a.shoes.Detail(shoe.ID)
	if err != nil {
		return err
	}

	printShoeDetail(cmd.OutOrStdout(), detail, a.conv, time.Now())
	return nil
}

func printShoeDetail(out io.Writer, d *service.ShoeDetail, conv units.Converter, now time.Time) {
	s, m := d.Shoe, d.Metrics

	fmt.Fprintf(out, "%s  (%s)\n", s.Name, s.ID)
	if s.Color != "" {
		fmt.Fprintf(out, "Colour:        %s\n", s.Color)
	}
	fmt.Fprintf(out, "Purchased:     %s (%s)\n", s.Purchased.Format(dateFlagLayout), humanize.RelTime(s.Purchased, now, "ago", "from now"))
	if s.Archived != nil {
		fmt.Fprintf(out, "Retired:       %s\n", s.Archived.Format(dateFlagLayout))
	}
	fmt.Fprintf(out, "Distance:      %s of %s (%.0f%%)\n",
		conv.FormatDistance(m.TotalKilometers, 1), conv.FormatDistance(float64(s.TargetDistance), 0), m.Progress)
	fmt.Fprintf(out, "Remaining:     %s\n", conv.FormatDistance(m.Remainder, 1))
	fmt.Fprintf(out, "Runs:          %d\n", m.NumberOfRuns)
	if m.AverageKmPerRun != nil {
		fmt.Fprintf(out, "Avg per run:   %s\n", conv.FormatDistance(*m.AverageKmPerRun, 1))
	}
	if m.AverageKmPerWeek != nil {
		fmt.Fprintf(out, "Avg per week:  %s\n", conv.FormatDistance(*m.AverageKmPerWeek, 1))
	}
	if m.MaximumDistance != nil {
		fmt.Fprintf(out, "Longest run:   %s\n", conv.FormatDistance(*m.MaximumDistance, 1))
	}
	if m.TotalElevationGain != nil {
		fmt.Fprintf(out, "Elevation:     %s\n", conv.FormatElevation(*m.TotalElevationGain, 0))
	}
	if m.DaysRemaining != nil && !m.IsArchived {
		fmt.Fprintf(out, "Days left:     %s\n", humanize.Comma(int64(*m.DaysRemaining)))
	}
	if status := statusLabel(m); status != "" {
		fmt.Fprintf(out, "Status:        %s\n", status)
	}

	if len(d.Workouts) == 0 {
		return
	}

	fmt.Fprintln(out)
	w := newTabWriter(out)
	fmt.Fprintln(w, "WORKOUT\tDATE\tDISTANCE\tTIME\tSOURCE ID")
	for _, wo := range d.Workouts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			wo.ID,
			wo.Date.Format(dateFlagLayout),
			conv.FormatDistance(wo.DistanceKm, 2),
			(time.Duration(wo.DurationSeconds) * time.Second).String(),
			wo.ExternalID,
		)
	}
	w.Flush()
}

func runArchive(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}
	archived, err := a.shoes.ToggleArchive(shoe.ID)
	if err != nil {
		return err
	}

	if archived != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Retired %s\n", shoe.Name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to the rotation\n", shoe.Name)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}

	if !deleteForce {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %s and all of its runs? [y/N] ", shoe.Name)
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := a.shoes.Delete(shoe.ID); err != nil {
		if errors.Is(err, store.ErrShoeNotFound) {
			return fmt.Errorf("shoe %q was already deleted", shoe.Name)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shoe.Name)
	return nil
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// shortID is the leading part of a uuid, enough to address a shoe
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusLabel(m analysis.ShoeMetrics) string {
	switch {
	case m.IsArchived:
		return "retired"
	case m.HasExpired:
		return "worn out"
	case m.CloseToExpiration:
		return "nearly worn"
	}
	return ""
}
