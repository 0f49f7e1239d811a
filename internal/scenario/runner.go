package scenario

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/decimal-drift/decimal"
)

// Runner runs scenarios and measures their drift.
// A failing scenario never stops the others; its failure is logged and
// stored in its result.
type Runner struct {
	threshold decimal.Decimal
	rounding  decimal.RoundingMode
	logger    zerolog.Logger
}

// NewRunner returns a runner that flags errors greater than threshold.
func NewRunner(threshold decimal.Decimal, rounding decimal.RoundingMode, logger zerolog.Logger) *Runner {
	return &Runner{
		threshold: threshold,
		rounding:  rounding,
		logger:    logger,
	}
}

// RunNamed runs the named scenarios in order; no names means all of them.
func (r *Runner) RunNamed(names []string, precisions []int) ([]Report, error) {
	scenarios := All()
	if len(names) > 0 {
		scenarios = scenarios[:0]
		for _, name := range names {
			s, ok := Lookup(name)
			if !ok {
				return nil, Error.New("unknown scenario %q", name)
			}
			scenarios = append(scenarios, s)
		}
	}

	reports := make([]Report, 0, len(scenarios))
	for _, s := range scenarios {
		reports = append(reports, r.Run(s, precisions))
	}
	return reports, nil
}

// Run runs s once for every precision.
func (r *Runner) Run(s Scenario, precisions []int) Report {
	report := Report{
		Name:      s.Name,
		Label:     s.Label,
		Threshold: fmt.Sprintf("%e", r.threshold),
		Results:   make([]Result, 0, len(precisions)),
	}
	for _, prec := range precisions {
		report.Results = append(report.Results, r.runAt(s, prec))
	}
	return report
}

func (r *Runner) runAt(s Scenario, prec int) Result {
	res := Result{Precision: prec}
	logger := r.logger.With().Str("scenario", s.Name).Int("precision", prec).Logger()

	ctx, err := decimal.NewContextWithRounding(prec, r.rounding)
	if err != nil {
		res.Failure = err.Error()
		logger.Error().Err(err).Msg("invalid context")
		return res
	}

	logger.Debug().Msg("scenario started")

	var t Trace
	err = call(s, ctx, &t)
	res.Steps = t.steps
	if err != nil {
		res.Failure = err.Error()
		logger.Error().Err(err).Msg("scenario failed")
		return res
	}

	for _, c := range t.checks {
		m, err := r.measure(ctx, c)
		if err != nil {
			res.Failure = err.Error()
			logger.Error().Err(err).Str("measurement", c.label).Msg("measurement failed")
			return res
		}
		res.Measurements = append(res.Measurements, m)
	}

	logger.Debug().Int("measurements", len(res.Measurements)).Msg("scenario finished")
	return res
}

// call runs s and turns a panic into an error.
func call(s Scenario, ctx decimal.Context, t *Trace) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = Error.New("%s panicked: %v", s.Name, p)
		}
	}()
	if err := s.Run(ctx, t); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// measure computes |value - reference| under ctx.
func (r *Runner) measure(ctx decimal.Context, c check) (Measurement, error) {
	diff, err := ctx.Sub(c.value, c.reference)
	if err != nil {
		return Measurement{}, Error.Wrap(err)
	}
	diff = diff.Abs()
	return Measurement{
		Label:     c.label,
		Value:     c.value.String(),
		Reference: c.reference.String(),
		Error:     diff.String(),
		Exceeds:   diff.Cmp(r.threshold) > 0,
		Equal:     c.value.Equal(c.reference),
	}, nil
}
