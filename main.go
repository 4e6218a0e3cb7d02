package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"shoetracker/internal/auth"
	"shoetracker/internal/config"
	"shoetracker/internal/importer"
	"shoetracker/internal/logging"
	"shoetracker/internal/service"
	"shoetracker/internal/store"
	"shoetracker/internal/strava"
	"shoetracker/internal/tui"
	"shoetracker/internal/units"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:           "shoes",
	Short:         "Track running shoe mileage against a target distance",
	Long:          "Track how far each pair of running shoes has gone, import runs from Strava and see when a pair is due for retirement.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.shoes/config.json)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Database file (default ~/.shoes/shoes.db)")

	rootCmd.AddCommand(loginCmd, logoutCmd)
	rootCmd.AddCommand(addCmd, editCmd, listCmd, showCmd, archiveCmd, deleteCmd)
	rootCmd.AddCommand(candidatesCmd, assignCmd, unassignCmd)
	rootCmd.AddCommand(exportCmd, importCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command
type app struct {
	cfg    *config.Config
	db     *store.DB
	logger *zap.Logger
	shoes  *service.ShoeService
	conv   units.Converter

	closeLog func()
}

// openApp loads config, opens the log and the database. A missing default
// config file is created from the example and defaults are used.
func openApp(stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(stderr)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(logPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var db *store.DB
	if dbPath != "" {
		db, err = store.OpenPath(dbPath)
	} else {
		db, err = store.Open()
	}
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	logger.Debug("app opened", zap.String("version", Version))

	prefs := cfg.Preferences
	return &app{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		shoes:    service.NewShoeService(db, prefs, logger),
		conv:     units.New(prefs.Units, prefs.Locale),
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("closing database", zap.Error(err))
	}
	a.closeLog()
}

func loadConfig(stderr io.Writer) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}

	if errors.Is(err, config.ErrNoConfig) {
		if configPath == "" {
			if err := config.CreateExample(); err != nil {
				return nil, fmt.Errorf("creating example config: %w", err)
			}
			dir, _ := config.GetConfigDir()
			fmt.Fprintf(stderr, "Created an example config at %s/config.json\n", dir)
		}
		defaults := config.DefaultConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// oauthConfig builds the Strava OAuth client from the configured credentials
func (a *app) oauthConfig() (*oauth2.Config, error) {
	if err := a.cfg.ValidateStrava(); err != nil {
		return nil, err
	}
	return auth.NewOAuthConfig(auth.Config{
		ClientID:     a.cfg.Strava.ClientID,
		ClientSecret: a.cfg.Strava.ClientSecret,
		RedirectURL:  auth.RedirectURL,
	}), nil
}

// healthSource returns the Strava source for the stored account. Without a
// stored account the source reports every load as unauthorized.
func (a *app) healthSource() (*strava.Source, error) {
	stored, err := a.db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		return strava.NewSource(nil, a.logger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading strava auth: %w", err)
	}

	oauthCfg, err := a.oauthConfig()
	if err != nil {
		a.logger.Warn("strava account stored but credentials missing", zap.Error(err))
		return strava.NewSource(nil, a.logger), nil
	}
	tokens := auth.NewTokenSource(oauthCfg, auth.TokenFromStored(stored), a.db, a.logger)
	return strava.NewSource(tokens, a.logger), nil
}

// importSession wires the Strava source and the database into an import session
func (a *app) importSession(timeRange config.TimeRangeOption) (*importer.Session, error) {
	source, err := a.healthSource()
	if err != nil {
		return nil, err
	}
	return importer.NewSession(source, a.db, timeRange, a.logger), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.importSession(a.cfg.Preferences.TimeRange)
	if err != nil {
		return err
	}

	tui.SetTheme(a.cfg.Preferences.Theme)
	model := tui.NewApp(cmd.Context(), a.shoes, session, a.conv)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
