package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/piqueme/gif-capture/lib"
	"github.com/piqueme/gif-capture/lib/device"
	"github.com/piqueme/gif-capture/lib/framerate"
	"github.com/piqueme/gif-capture/lib/geom"
	"github.com/piqueme/gif-capture/lib/output"
	"github.com/piqueme/gif-capture/lib/overlay"
	"github.com/piqueme/gif-capture/lib/sampler"
	"github.com/piqueme/gif-capture/lib/selector"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "gifcap",
	Short:         "Record an area of the screen as an animated GIF",
	Long:          "Drag a rectangle over the screen, record it for a few seconds and save the frames as one GIF with a shared palette.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecord,
}

// settings holds the effective configuration once PersistentPreRunE ran.
var settings lib.Settings

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gifcap: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	defaults := lib.DefaultSettings()

	flags := rootCmd.PersistentFlags()
	flags.String("config", lib.SettingsFilename(), "Settings file (YAML)")
	flags.Duration("duration", defaults.Duration, "How long to record")
	flags.Int("fps", int(defaults.FrameRate), "Frames per second")
	flags.StringP("output", "o", defaults.OutputFilename, "Output GIF file")
	flags.String("output-method", defaults.OutputMethod.String(), "When the output exists: overwrite or new-file")
	flags.Int("colors", defaults.MaxColors, "Palette size shared by all frames (2-256)")
	flags.String("quantizer", defaults.Quantizer, "Palette builder: mediancut or palgen")
	flags.Bool("dither", defaults.Dither, "Floyd-Steinberg dithering")
	flags.Float64("scale", defaults.Scale, "Scale factor applied to every frame")
	flags.Int("loop", defaults.LoopCount, "GIF loop count: 0 loops forever, -1 plays once")
	flags.Int("display", defaults.Display, "Display index to capture")
	flags.Int("workers", defaults.Workers, "Frames converted in parallel (0 = one per CPU)")
	flags.Bool("quiet", false, "Only print errors")

	rootCmd.Flags().Bool("pick-output", false, "Choose the output file with a save dialog")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		filename, _ := cmd.Flags().GetString("config")
		loaded, err := lib.LoadSettings(filename)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, &loaded); err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		settings = loaded
		return nil
	}
}

// applyFlags overrides file settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, s *lib.Settings) error {
	flags := cmd.Flags()
	if flags.Changed("duration") {
		s.Duration, _ = flags.GetDuration("duration")
	}
	if flags.Changed("fps") {
		fps, _ := flags.GetInt("fps")
		s.FrameRate = framerate.T(fps)
	}
	if flags.Changed("output") {
		s.OutputFilename, _ = flags.GetString("output")
	}
	if flags.Changed("output-method") {
		value, _ := flags.GetString("output-method")
		method, err := output.ParseMethod(value)
		if err != nil {
			return err
		}
		s.OutputMethod = method
	}
	if flags.Changed("colors") {
		s.MaxColors, _ = flags.GetInt("colors")
	}
	if flags.Changed("quantizer") {
		s.Quantizer, _ = flags.GetString("quantizer")
	}
	if flags.Changed("dither") {
		s.Dither, _ = flags.GetBool("dither")
	}
	if flags.Changed("scale") {
		s.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Changed("loop") {
		s.LoopCount, _ = flags.GetInt("loop")
	}
	if flags.Changed("display") {
		s.Display, _ = flags.GetInt("display")
	}
	if flags.Changed("workers") {
		s.Workers, _ = flags.GetInt("workers")
	}
	return nil
}

func newLogger(cmd *cobra.Command) *log.Logger {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

func runRecord(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	if pick, _ := cmd.Flags().GetBool("pick-output"); pick {
		filename, err := pickOutput(settings.OutputFilename)
		if err != nil {
			return err
		}
		settings.OutputFilename = filename
	}

	session, err := overlay.Open(logger)
	if err != nil {
		return &lib.PhaseError{
			Phase: lib.PhaseSelection,
			Err:   fmt.Errorf("%w: %w", selector.ErrSelectionAborted, err),
		}
	}

	recorder := &lib.Recorder{
		Settings: settings,
		Selector: session,
		OpenDevice: func(display int, area geom.Rect) (sampler.Device, error) {
			return device.Open(display, area)
		},
		Logger: logger,
	}

	filename, err := recorder.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filename)
	return nil
}
