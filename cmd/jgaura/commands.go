package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/aura"
	"github.com/jgaura/aura/internal/config"
	"github.com/jgaura/aura/internal/logging"
	"github.com/jgaura/aura/internal/ui"
	"github.com/jgaura/aura/internal/version"
)

// Environment variables consulted when the matching flag is not given
const (
	EnvHost     = "JGAURA_HOST"
	EnvEmail    = "JGAURA_EMAIL"
	EnvPassword = "JGAURA_PASSWORD"
)

// Output formats accepted by --format
const (
	FormatTable    = "table"
	FormatDetailed = "detailed"
	FormatCompact  = "compact"
	FormatJSON     = "json"
)

// app holds the flags and collaborators shared by every command.
type app struct {
	// Persistent flags
	host       string
	email      string
	password   string
	format     string
	logLevel   string
	logFile    string
	configFile string
	timeout    time.Duration

	// Command flags
	noVerify bool
	interval time.Duration
	force    bool

	registry    *config.Registry
	registryErr error

	getenv         func(string) string
	promptPassword func(prompt string) (string, error)
	verifyOptions  *aura.VerificationOptions
}

func newApp() *app {
	return &app{
		getenv:         os.Getenv,
		promptPassword: ui.PromptPassword,
		verifyOptions:  aura.DefaultVerificationOptions(),
	}
}

// newRootCmd builds the command tree bound to a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jgaura",
		Short: "JG Aura Heating Gateway Client",
		Long: `A command-line client for JG Aura heating gateways.

Reads thermostat and hot-water state from the vendor's cloud API and
changes presets, target temperatures and the hot-water relay.

Run 'jgaura config init' once to store your account email.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Example: `  # Show every thermostat
  jgaura status

  # Switch the lounge thermostat to Low
  jgaura set-preset AB01 Low

  # Turn the hot water on
  jgaura hotwater on`,
	}

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.host, "host", "", "API base URL (default from config, then "+aura.DefaultHost+")")
	flags.StringVar(&a.email, "email", "", "Account email (default from config or "+EnvEmail+")")
	flags.StringVar(&a.password, "password", "", "Account password (default from "+EnvPassword+", then prompt)")
	flags.StringVar(&a.format, "format", FormatTable, "Output format (table, detailed, compact, json)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to a rotating file")
	flags.StringVar(&a.configFile, "config", "", "Config file (default is the platform config directory)")
	flags.DurationVar(&a.timeout, "timeout", 0, "HTTP request timeout (e.g. 10s)")

	rootCmd.AddCommand(
		a.statusCmd(),
		a.hotWaterCmd(),
		a.setPresetCmd(),
		a.setTempCmd(),
		a.loginCmd(),
		a.watchCmd(),
		a.configCmd(),
		a.versionCmd(),
	)

	return rootCmd
}

// setup loads the config file and initializes logging before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.registry, a.registryErr = a.loadRegistry()

	level, file := a.logLevel, a.logFile
	if a.registry != nil {
		if level == "" {
			level = a.registry.LogLevel
		}
		if file == "" {
			file = a.registry.LogFile
		}
	}
	if file != "" && level == "" {
		level = "info"
	}

	// Keep the terminal clean when logs go to a file
	if err := logging.InitializeWithOptions(logging.Options{Level: level, File: file, Quiet: file != ""}); err != nil {
		return err
	}

	switch a.format {
	case FormatTable, FormatDetailed, FormatCompact, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use table, detailed, compact or json)", a.format)
	}
}

func (a *app) loadRegistry() (*config.Registry, error) {
	if a.configFile != "" {
		return config.LoadFile(a.configFile)
	}
	return config.LoadRegistry()
}

// config returns the loaded registry, or the error that prevented loading it.
func (a *app) config() (*config.Registry, error) {
	if a.registryErr != nil {
		return nil, fmt.Errorf("failed to load config: %w", a.registryErr)
	}
	if a.registry == nil {
		return config.NewRegistry(), nil
	}
	return a.registry, nil
}

func (a *app) saveRegistry(reg *config.Registry) (string, error) {
	if err := reg.Validate(); err != nil {
		return "", err
	}
	if a.configFile != "" {
		return a.configFile, reg.SaveFile(a.configFile)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", err
	}
	return path, reg.Save()
}

// settings are the connection parameters after flags, environment and config
// file have been merged.
type settings struct {
	Host     string
	Email    string
	Password string
	Timeout  time.Duration
	HotWater bool
	Refresh  time.Duration
	Names    map[string]string
}

// settings resolves each value from its flag, then the environment, then the
// config file.
func (a *app) settings() (settings, error) {
	reg, err := a.config()
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Host:     firstNonEmpty(a.host, a.getenv(EnvHost), reg.Host),
		Email:    firstNonEmpty(a.email, a.getenv(EnvEmail), reg.Email),
		Password: firstNonEmpty(a.password, a.getenv(EnvPassword)),
		Timeout:  reg.TimeoutDuration(),
		HotWater: reg.HotWater,
		Refresh:  reg.RefreshInterval(),
		Names:    reg.Thermostats,
	}
	if a.timeout > 0 {
		s.Timeout = a.timeout
	}

	if err := aura.ValidateHost(s.Host); err != nil {
		return settings{}, err
	}
	if s.Email == "" {
		return settings{}, fmt.Errorf("no account email: use --email, set %s or run 'jgaura config init'", EnvEmail)
	}
	if err := aura.ValidateEmail(s.Email); err != nil {
		return settings{}, err
	}
	return s, nil
}

// client creates a gateway client, prompting for the password when none was given.
func (a *app) client() (*aura.Client, settings, error) {
	s, err := a.settings()
	if err != nil {
		return nil, s, err
	}

	if s.Password == "" {
		s.Password, err = a.promptPassword(fmt.Sprintf("Password for %s: ", s.Email))
		if errors.Is(err, ui.ErrNotTerminal) {
			return nil, s, fmt.Errorf("no password given: use --password or set %s", EnvPassword)
		}
		if err != nil {
			return nil, s, err
		}
	}

	c := aura.NewClient(s.Host, s.Email, s.Password)
	if s.Timeout > 0 {
		c.SetTimeout(s.Timeout)
	}

	logging.Debug("Client configured",
		zap.String("host", s.Host),
		zap.String("email", s.Email),
		zap.Duration("timeout", s.Timeout),
	)
	return c, s, nil
}

// statusCmd shows every thermostat and the hot-water relay
func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [device-id]",
		Short: "Show thermostat and hot water state",
		Long: `Read the current state of every thermostat on the gateway.

The hot-water relay is included unless hot_water is disabled in the config
file. Pass a device id to show a single thermostat.`,
		Example: `  # Table of every thermostat
  jgaura status

  # One thermostat, all fields
  jgaura status AB01 --format detailed

  # JSON output for scripting
  jgaura status --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, args []string) error {
	c, s, err := a.client()
	if err != nil {
		return err
	}

	snap, err := fetchSnapshot(cmd.Context(), c, s.HotWater && len(args) == 0)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		t, ok := snap.Gateway.Thermostat(args[0])
		if !ok {
			return fmt.Errorf("thermostat %s not reported by gateway", args[0])
		}
		snap.Gateway = &aura.Gateway{ID: snap.Gateway.ID, Name: snap.Gateway.Name, Thermostats: []aura.Thermostat{t}}
	}

	return writeStatus(cmd.OutOrStdout(), a.format, snap, s.Names)
}

// fetchSnapshot reads the thermostats and, if wanted, the hot-water relay.
// A telemetry page without a hot-water record is logged and left out.
func fetchSnapshot(ctx context.Context, c *aura.Client, hotWater bool) (ui.Snapshot, error) {
	gw, err := c.Thermostats(ctx)
	if err != nil {
		return ui.Snapshot{}, err
	}
	snap := ui.Snapshot{Gateway: gw}

	if hotWater {
		hw, err := c.HotWater(ctx)
		switch {
		case aura.IsParseError(err):
			logging.Warn("Hot water state unavailable", zap.Error(err))
		case err != nil:
			return ui.Snapshot{}, err
		default:
			snap.HotWater = hw
		}
	}
	return snap, nil
}

// statusJSON is the --format json shape of a snapshot.
type statusJSON struct {
	Gateway  *aura.Gateway  `json:"gateway"`
	HotWater *aura.HotWater `json:"hot_water,omitempty"`
}

func writeStatus(w io.Writer, format string, snap ui.Snapshot, names map[string]string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, statusJSON{Gateway: snap.Gateway, HotWater: snap.HotWater})
	case FormatCompact:
		_, _ = fmt.Fprint(w, snap.Gateway.FormatCompact(names))
		if snap.HotWater != nil {
			_, _ = fmt.Fprintf(w, "  %s\n", snap.HotWater)
		}
	case FormatDetailed:
		_, _ = fmt.Fprint(w, snap.Gateway.FormatDetailed(names))
		if snap.HotWater != nil {
			_, _ = fmt.Fprintf(w, "\n=== Hot Water ===\nID:    %s\nState: %s\n", snap.HotWater.ID, onOffLabel(snap.HotWater.On))
		}
	default:
		_, _ = fmt.Fprintln(w, ui.RenderStatus(ui.StatusView{
			Gateway:  snap.Gateway,
			HotWater: snap.HotWater,
			Names:    names,
			Width:    ui.GetTerminalWidth(),
		}))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// hotWaterCmd shows or switches the hot-water relay
func (a *app) hotWaterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotwater [on|off]",
		Short: "Show or switch the hot water relay",
		Long: `Without an argument, print the state of the hot-water relay.
With on or off, switch the relay and verify the gateway reports the new state.

Both forms are refused when hot_water is disabled in the config file.`,
		Example: `  # Show hot water state
  jgaura hotwater

  # Boost the hot water
  jgaura hotwater on

  # Switch off without waiting for confirmation
  jgaura hotwater off --no-verify`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      a.runHotWater,
	}
	cmd.Flags().BoolVar(&a.noVerify, "no-verify", false, "Skip verification after the update")
	return cmd
}

func (a *app) runHotWater(cmd *cobra.Command, args []string) error {
	s, err := a.settings()
	if err != nil {
		return err
	}
	if !s.HotWater {
		return aura.NewValidationError("hot water is disabled in config (hot_water: false)")
	}

	if len(args) == 0 {
		c, _, err := a.client()
		if err != nil {
			return err
		}
		hw, err := c.HotWater(cmd.Context())
		if err != nil {
			return err
		}
		if a.format == FormatJSON {
			return writeJSON(cmd.OutOrStdout(), hw)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), hw)
		return nil
	}

	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	return a.runWrite(cmd, args, writeSpec{
		Title:       "Set Hot Water",
		Params:      map[string]string{"State": onOffLabel(on)},
		PrepareName: "Locate hot water relay",
		Prepare: func(ctx context.Context, c *aura.Client) (aura.Command, error) {
			hw, err := c.HotWater(ctx)
			if err != nil {
				return aura.Command{}, err
			}
			return aura.EncodeHotWater(hw.ID, on)
		},
	})
}

// setPresetCmd switches a thermostat preset
func (a *app) setPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-preset <device-id> <preset>",
		Short: "Switch a thermostat to a preset",
		Long: `Switch a thermostat to one of the gateway presets:

  ` + strings.Join(aura.RunModes, ", ") + `

Party and Away are sent with the fixed duration the JG Aura app uses.
Preset names are case-insensitive.`,
		Example: `  # Eco mode for the lounge
  jgaura set-preset AB01 low

  # Holiday
  jgaura set-preset AB01 Away`,
		Args: cobra.ExactArgs(2),
		RunE: a.runSetPreset,
	}
	cmd.Flags().BoolVar(&a.noVerify, "no-verify", false, "Skip verification after the update")
	return cmd
}

func (a *app) runSetPreset(cmd *cobra.Command, args []string) error {
	deviceID := args[0]
	preset := normalizePreset(args[1])

	return a.runWrite(cmd, args, writeSpec{
		Title:       "Set Preset",
		Params:      map[string]string{"Thermostat": a.thermostatLabel(deviceID), "Preset": preset},
		PrepareName: "Encode command",
		Prepare: func(context.Context, *aura.Client) (aura.Command, error) {
			return aura.EncodePreset(deviceID, preset)
		},
	})
}

// setTempCmd sets a thermostat target temperature
func (a *app) setTempCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-temp <device-id> <celsius>",
		Short: "Set a thermostat target temperature",
		Long: fmt.Sprintf(`Set the target temperature of a thermostat.

The value is rounded to the nearest half degree and must be between
%.0f and %.0f °C.`, aura.MinTemperature, aura.MaxTemperature),
		Example: `  jgaura set-temp AB01 21.5`,
		Args:    cobra.ExactArgs(2),
		RunE:    a.runSetTemp,
	}
	cmd.Flags().BoolVar(&a.noVerify, "no-verify", false, "Skip verification after the update")
	return cmd
}

func (a *app) runSetTemp(cmd *cobra.Command, args []string) error {
	deviceID := args[0]
	temperature, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return aura.NewValidationError(fmt.Sprintf("invalid temperature %q", args[1]))
	}

	return a.runWrite(cmd, args, writeSpec{
		Title:       "Set Temperature",
		Params:      map[string]string{"Thermostat": a.thermostatLabel(deviceID), "Target": fmt.Sprintf("%.1f°C", temperature)},
		PrepareName: "Encode command",
		Prepare: func(context.Context, *aura.Client) (aura.Command, error) {
			return aura.EncodeTemperature(deviceID, temperature)
		},
	})
}

// writeSpec describes one write command for runWrite.
type writeSpec struct {
	Title       string
	Params      map[string]string
	PrepareName string
	Prepare     func(ctx context.Context, c *aura.Client) (aura.Command, error)
}

// runWrite sends a command through the step runner: prepare, log in, send, verify.
func (a *app) runWrite(cmd *cobra.Command, args []string, w writeSpec) error {
	c, _, err := a.client()
	if err != nil {
		return err
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:     w.Title,
		Command:   strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " ")),
		Params:    w.Params,
		StepNames: []string{w.PrepareName, "Log in", "Send command", "Verify"},
		Troubleshooting: func(err error) []string {
			return ui.TroubleshootingTips(aura.GetTroubleshootingHint(err))
		},
		Output: cmd.OutOrStdout(),
	})

	_, err = runner.Run(cmd.Context(), func(ctx context.Context, onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "", ui.StepRunning, "")
		command, err := w.Prepare(ctx, c)
		if err != nil {
			onStep(1, "", ui.StepFailed, aura.GetShortErrorMessage(err))
			return nil, err
		}
		onStep(1, "", ui.StepComplete, "")

		onStep(2, "", ui.StepRunning, "")
		deviceID, err := c.Login(ctx)
		if err != nil {
			onStep(2, "", ui.StepFailed, aura.GetShortErrorMessage(err))
			return nil, err
		}
		onStep(2, "", ui.StepComplete, "gateway "+deviceID)

		onStep(3, "", ui.StepRunning, "")
		if err := c.Apply(ctx, command); err != nil {
			onStep(3, "", ui.StepFailed, aura.GetShortErrorMessage(err))
			return nil, err
		}
		onStep(3, "", ui.StepComplete, command.Attribute)

		details := map[string]string{
			"Device":  command.DeviceID,
			"Command": command.Kind.String(),
		}

		if a.noVerify {
			onStep(4, "", ui.StepSkipped, "--no-verify")
			details["Verified"] = "skipped"
			return details, nil
		}

		onStep(4, "", ui.StepRunning, "")
		result := c.VerifyCommand(ctx, command, a.verifyOptions)
		attempts := fmt.Sprintf("%d attempt(s)", result.Attempts)
		if !result.Success {
			onStep(4, "", ui.StepFailed, attempts)
			if result.Error == nil {
				return details, errors.New("verification failed")
			}
			return details, result.Error
		}
		onStep(4, "", ui.StepComplete, attempts)
		details["Verified"] = attempts
		return details, nil
	})
	return err
}

// loginCmd checks the account credentials
func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the account credentials",
		Long: `Log in to the gateway service and resolve the gateway device.

Nothing is stored; use this to check the email, password and host.`,
		Args: cobra.NoArgs,
		RunE: a.runLogin,
	}
}

func (a *app) runLogin(cmd *cobra.Command, args []string) error {
	c, s, err := a.client()
	if err != nil {
		return err
	}

	deviceID, err := c.Login(cmd.Context())
	if err != nil {
		return err
	}

	if a.format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"email": s.Email, "host": s.Host, "gateway": deviceID})
	}
	result := ui.NewSuccessResult("Logged in", map[string]string{
		"Account": s.Email,
		"Host":    s.Host,
		"Gateway": deviceID,
	})
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Render())
	return nil
}

// watchCmd shows a live status view
func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live status view",
		Long: `Show the status table and refresh it on an interval.

The interval defaults to refresh_rate from the config file.
Press r to refresh now and q to quit.`,
		Args: cobra.NoArgs,
		RunE: a.runWatch,
	}
	cmd.Flags().DurationVar(&a.interval, "interval", 0, "Refresh interval (default from config)")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	c, s, err := a.client()
	if err != nil {
		return err
	}

	interval := s.Refresh
	if a.interval > 0 {
		interval = a.interval
	}
	if interval < config.MinRefreshRate*time.Second {
		return fmt.Errorf("interval must be at least %ds", config.MinRefreshRate)
	}

	fetch := func(ctx context.Context) (ui.Snapshot, error) {
		return fetchSnapshot(ctx, c, s.HotWater)
	}
	return ui.RunWatch(cmd.Context(), fetch, interval, s.Names)
}

// versionCmd prints version information
func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), version.Get())
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jgaura %s\n", version.Full())
			return nil
		},
	}
}

// thermostatLabel returns the device id with its nickname, if one is set.
func (a *app) thermostatLabel(deviceID string) string {
	if a.registry != nil {
		if nick, ok := a.registry.Nickname(deviceID); ok {
			return fmt.Sprintf("%s (%s)", deviceID, nick)
		}
	}
	return deviceID
}

// normalizePreset maps a case-insensitive preset name to its canonical spelling.
// Unknown names are returned unchanged and rejected by the encoder.
func normalizePreset(name string) string {
	for _, mode := range aura.RunModes {
		if strings.EqualFold(mode, name) {
			return mode
		}
	}
	return name
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, aura.NewValidationError(fmt.Sprintf("expected on or off, got %q", s))
}

func onOffLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
