package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shoetracker/internal/auth"
	"shoetracker/internal/config"
	"shoetracker/internal/importer"
	"shoetracker/internal/store"
)

var (
	assignAll   bool
	importRange string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect a Strava account",
	Long:  "Authorize read access to your Strava activities. Needs strava.client_id and strava.client_secret in the config file.",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the connected Strava account",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates <shoe>",
	Short: "List Strava runs that can be assigned to a shoe",
	Long:  "List runs from Strava that started after the shoe was purchased, fall inside the configured time range and are not assigned to any shoe yet.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidates,
}

var assignCmd = &cobra.Command{
	Use:   "assign <shoe> [source-id...]",
	Short: "Assign Strava runs to a shoe",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssign,
}

var unassignCmd = &cobra.Command{
	Use:   "unassign <workout-id>",
	Short: "Remove a run from its shoe",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnassign,
}

func init() {
	assignCmd.Flags().BoolVar(&assignAll, "all", false, "Assign every eligible run")

	for _, cmd := range []*cobra.Command{candidatesCmd, assignCmd} {
		cmd.Flags().StringVar(&importRange, "range", "", "How far back to look: 30d, 90d, 365d or all (default from config)")
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	oauthCfg, err := a.oauthConfig()
	if err != nil {
		path, _ := configFileHint()
		return fmt.Errorf("%w (edit %s)", err, path)
	}

	result, err := auth.Authenticate(cmd.Context(), oauthCfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("authentication: %w", err)
	}
	if err := a.db.SaveAuth(result.Stored()); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully authenticated as athlete %d!\n", result.AthleteID)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	account, err := a.db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Fprintln(cmd.OutOrStdout(), "No Strava account connected.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.db.DeleteAuth(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Disconnected Strava athlete %d (connected %s).\n",
		account.AthleteID, humanize.Time(account.ConnectedAt))
	return nil
}

func runCandidates(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}
	timeRange, err := a.timeRange()
	if err != nil {
		return err
	}
	session, err := a.importSession(timeRange)
	if err != nil {
		return err
	}

	candidates, err := session.Load(cmd.Context(), *shoe)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintf(out, "No unassigned runs for %s (%s).\n", shoe.Name, timeRange.Label())
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "SOURCE ID\tSTART\tNAME\tDISTANCE\tTIME")
	for _, c := range candidates {
		distance := "-"
		if km, ok := c.DistanceKm(); ok {
			distance = a.conv.FormatDistance(km, 2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ExternalID,
			c.Start.Local().Format("2006-01-02 15:04"),
			c.Name,
			distance,
			(time.Duration(c.DurationSeconds) * time.Second).String(),
		)
	}
	return w.Flush()
}

func runAssign(cmd *cobra.Command, args []string) error {
	ids := args[1:]
	if len(ids) == 0 && !assignAll {
		return fmt.Errorf("name the runs to assign or pass --all")
	}

	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	shoe, err := a.shoes.Resolve(args[0])
	if err != nil {
		return err
	}
	timeRange, err := a.timeRange()
	if err != nil {
		return err
	}
	session, err := a.importSession(timeRange)
	if err != nil {
		return err
	}

	candidates, err := session.Load(cmd.Context(), *shoe)
	if err != nil {
		return err
	}

	chosen, err := chooseCandidates(candidates, ids, assignAll)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var assigned int
	for _, c := range chosen {
		w, err := session.Assign(cmd.Context(), shoe.ID, c)
		if err != nil {
			return fmt.Errorf("assigned %d of %d runs: %w", assigned, len(chosen), err)
		}
		assigned++
		fmt.Fprintf(out, "Assigned %s (%s, %s)\n", c.ExternalID, w.Date.Local().Format(dateFlagLayout), a.conv.FormatDistance(w.DistanceKm, 2))
	}

	fmt.Fprintf(out, "%d runs assigned to %s\n", assigned, shoe.Name)
	return nil
}

// chooseCandidates picks the requested runs out of the eligible ones. With
// all set every candidate that has a distance is chosen.
func chooseCandidates(candidates []importer.Candidate, ids []string, all bool) ([]importer.Candidate, error) {
	if all {
		var chosen []importer.Candidate
		for _, c := range candidates {
			if _, ok := c.DistanceKm(); ok {
				chosen = append(chosen, c)
			}
		}
		return chosen, nil
	}

	byID := make(map[string]importer.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ExternalID] = c
	}

	chosen := make([]importer.Candidate, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%s is not an assignable run for this shoe", id)
		}
		chosen = append(chosen, c)
	}
	return chosen, nil
}

func runUnassign(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.shoes.RemoveWorkout(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Workout removed.")
	return nil
}

// timeRange is the --range flag when given, otherwise the configured range
func (a *app) timeRange() (config.TimeRangeOption, error) {
	if importRange == "" {
		return a.cfg.Preferences.TimeRange, nil
	}
	return config.ParseTimeRange(importRange)
}

// configFileHint names the config file the user should edit
func configFileHint() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
