package cmd

import (
	"fmt"
	"io"

	"github.com/Iron-Ham/archiveflow/internal/config"
	apperrors "github.com/Iron-Ham/archiveflow/internal/errors"
	"github.com/Iron-Ham/archiveflow/internal/logging"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// environment is everything a run needs that comes from configuration.
type environment struct {
	cfg     *config.Config
	catalog *steps.Catalog
	logger  *logging.Logger
}

// loadEnvironment validates the configuration, applies catalog overrides
// and opens the debug log. Log records are also written to mirror when the
// config asks for it and mirror is non-nil. Callers must Close the logger.
func loadEnvironment(mirror io.Writer) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	catalog := steps.Default()
	if path := cfg.Catalog.ResolveCatalogPath(config.ConfigDir()); path != "" {
		catalog, err = steps.LoadFile(catalog, path)
		if err != nil {
			return nil, err
		}
	}

	if id := cfg.Animation.FailureStep; id != "" && catalog.IndexOf(id) == 0 {
		return nil, fmt.Errorf("animation.failure_step %q: %w", id, apperrors.ErrUnknownStep)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		if !cfg.Logging.Mirror {
			mirror = nil
		}
		logger, err = logging.NewLoggerWithMirror(cfg.Logging.ResolveDir(config.ConfigDir()), cfg.Logging.Level, mirror)
		if err != nil {
			return nil, fmt.Errorf("opening debug log: %w", err)
		}
	}

	return &environment{cfg: cfg, catalog: catalog, logger: logger}, nil
}

// timingsFromConfig converts the animation and info settings to sequencer
// timings. A positive speed overrides the configured one.
func timingsFromConfig(cfg *config.Config, speed float64) sequencer.Timings {
	a := cfg.Animation
	t := sequencer.Timings{
		InfoDelay:         a.InfoDelay(),
		StepDwell:         a.StepDwell(),
		Settle:            a.Settle(),
		DecisionPause:     a.DecisionPause(),
		StepGap:           a.StepGap(),
		FinaleDelay:       a.FinaleDelay(),
		PulseStagger:      a.PulseStagger(),
		CompleteInfoDelay: a.CompleteInfoDelay(),
		ErrorDelay:        a.ErrorDelay(),
		ErrorHold:         a.ErrorHold(),
		PipelineInfo:      cfg.Info.PipelineDisplay(),
		ManualInfo:        cfg.Info.ManualDisplay(),
	}
	if speed <= 0 {
		speed = a.Speed
	}
	return t.WithSpeed(speed)
}

// newSequencer builds a sequencer drawing on r, configured from env.
func (env *environment) newSequencer(r sequencer.Renderer, speed float64, opts ...sequencer.Option) *sequencer.Sequencer {
	base := []sequencer.Option{
		sequencer.WithCatalog(env.catalog),
		sequencer.WithLogger(env.logger),
		sequencer.WithTimings(timingsFromConfig(env.cfg, speed)),
	}
	if id := env.cfg.Animation.FailureStep; id != "" {
		base = append(base, sequencer.WithFailureStep(id))
	}
	return sequencer.New(r, append(base, opts...)...)
}
