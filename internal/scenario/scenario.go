// Package scenario runs the drift scenarios: chains of decimal operations
// evaluated one rounded step at a time and compared with the value they
// should have produced.
package scenario

import (
	"github.com/zeebo/errs"

	"github.com/decimal-drift/decimal"
)

// Error is the class of scenario failures.
var Error = errs.Class("scenario")

// Scenario is a named computation that can be run at any precision.
type Scenario struct {
	Name  string
	Label string
	Run   func(ctx decimal.Context, t *Trace) error
}

// Trace collects the narration of one run.
type Trace struct {
	steps  []Step
	checks []check
}

type check struct {
	label     string
	value     decimal.Decimal
	reference decimal.Decimal
}

// Step records an intermediate value.
func (t *Trace) Step(label string, d decimal.Decimal) {
	t.steps = append(t.steps, Step{Label: label, Value: d.String()})
}

// Note records a line of narration without a value.
func (t *Trace) Note(label, text string) {
	t.steps = append(t.steps, Step{Label: label, Value: text})
}

// Measure records a computed value together with the value it is expected
// to equal. The runner reports the distance between the two.
func (t *Trace) Measure(label string, value, reference decimal.Decimal) {
	t.checks = append(t.checks, check{label: label, value: value, reference: reference})
}

// Step is an intermediate value of a run.
type Step struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Measurement compares a computed value with its reference.
type Measurement struct {
	Label     string `yaml:"label"`
	Value     string `yaml:"value"`
	Reference string `yaml:"reference"`
	Error     string `yaml:"error"`
	Exceeds   bool   `yaml:"exceeds"`
	Equal     bool   `yaml:"equal"`
}

// Result is the outcome of a scenario at one precision.
type Result struct {
	Precision    int           `yaml:"precision"`
	Steps        []Step        `yaml:"steps,omitempty"`
	Measurements []Measurement `yaml:"measurements,omitempty"`
	Failure      string        `yaml:"failure,omitempty"`
}

// Failed returns true if the run stopped with an error.
func (r Result) Failed() bool {
	return r.Failure != ""
}

// Report is the outcome of a scenario at every requested precision.
type Report struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label"`
	Threshold string   `yaml:"threshold"`
	Results   []Result `yaml:"results"`
}
