package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/justify/internal/config"
	"github.com/papapumpkin/justify/internal/justify"
	"github.com/papapumpkin/justify/internal/logging"
	"github.com/papapumpkin/justify/internal/report"
	"github.com/papapumpkin/justify/internal/telemetry"
	"github.com/papapumpkin/justify/internal/textio"
	"github.com/papapumpkin/justify/internal/ui"
)

func runJustify(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	defer p.close()

	_, err = p.run(1)
	return err
}

// loadConfig loads configuration, applies flag and argument overrides, and
// validates the result.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, &cfg)
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if v, _ := flags.GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := flags.GetString("report"); v != "" {
		cfg.Report = v
	}
	if v, _ := flags.GetString("telemetry"); v != "" {
		cfg.Telemetry = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
}

// pipeline loads, justifies and writes one input per run.
type pipeline struct {
	cfg     config.Config
	printer *ui.Printer
	logger  *slog.Logger
	emitter *telemetry.Emitter
	preview bool
	now     func() time.Time
}

func newPipeline(cmd *cobra.Command, args []string) (*pipeline, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:     cfg,
		printer: ui.New(),
		logger:  logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON),
		now:     time.Now,
	}
	p.preview, _ = cmd.Flags().GetBool("preview")
	if cfg.Telemetry != "" {
		em, err := telemetry.NewEmitter(cfg.Telemetry)
		if err != nil {
			return nil, err
		}
		p.emitter = em
	}
	return p, nil
}

func (p *pipeline) close() {
	if err := p.emitter.Close(); err != nil {
		p.logger.Warn("closing telemetry", "error", err)
	}
}

// run performs one complete justification. Failures are recorded in
// telemetry before being returned.
func (p *pipeline) run(runNum int) (justify.Layout, error) {
	start := p.now()
	p.emit(telemetry.KindRunStart, runNum, telemetry.RunStart{Width: p.cfg.Width, Output: p.cfg.Output})

	layout, err := p.justify()
	if err != nil {
		p.emit(telemetry.KindRunFailed, runNum, telemetry.RunFailed{Error: err.Error()})
		return justify.Layout{}, err
	}

	p.emit(telemetry.KindRunDone, runNum, telemetry.RunDone{
		Words:        layout.Words,
		Lines:        len(layout.Lines),
		TotalBadness: layout.TotalBadness,
		DurationMS:   p.now().Sub(start).Milliseconds(),
	})

	p.printer.TotalBadness(p.cfg.Output, layout.TotalBadness)
	if p.cfg.Output != textio.Stdio {
		p.printer.Wrote(p.cfg.Output, len(layout.Lines), layout.Width)
	}
	if p.preview {
		p.printer.Preview(layout)
	}
	return layout, nil
}

func (p *pipeline) justify() (justify.Layout, error) {
	words, err := textio.LoadWords(p.cfg.Input)
	if err != nil {
		return justify.Layout{}, err
	}
	p.logger.Debug("words loaded", "input", p.cfg.Input, "count", len(words))

	layout := justify.Justify(words, p.cfg.Width)
	p.logger.Debug("layout computed", "width", layout.Width, "lines", len(layout.Lines), "total_badness", layout.TotalBadness)

	if err := textio.WriteFile(p.cfg.Output, layout.Text()); err != nil {
		return justify.Layout{}, err
	}
	p.logger.Debug("output written", "output", p.cfg.Output)

	if p.cfg.Report != "" {
		r := report.FromLayout(layout, p.cfg.Input, p.cfg.Output, p.now())
		if err := report.Write(p.cfg.Report, r); err != nil {
			return justify.Layout{}, err
		}
		p.logger.Debug("report written", "report", p.cfg.Report)
	}
	return layout, nil
}

func (p *pipeline) emit(kind string, runNum int, data any) {
	err := p.emitter.Emit(telemetry.Event{
		Kind:  kind,
		Run:   runNum,
		Input: p.cfg.Input,
		Data:  data,
	})
	if err != nil {
		p.logger.Warn("telemetry emit failed", "kind", kind, "error", err)
	}
}
