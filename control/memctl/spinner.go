package memctl

import (
	"math"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
)

// Spinner is a numeric entry with optional bounds, step, and display
// precision, plus the slider/spinbox display toggles a numeric row carries.
type Spinner struct {
	control.Emitter
	value       float64
	Min         *float64
	Max         *float64
	Step        float64
	Decimals    int
	ShowSlider  bool
	ShowSpinbox bool
}

func NewSpinner() *Spinner {
	return &Spinner{Step: 1, Decimals: 2, ShowSpinbox: true}
}

// ApplyAttribute picks up bounds, step, precision, and display toggles.
// The slider defaults to visible exactly when both bounds are set.
func (s *Spinner) ApplyAttribute(a *attr.Attribute) {
	p := a.Params
	s.Min = p.Min
	s.Max = p.Max
	if p.Step != nil {
		s.Step = *p.Step
	}
	if p.Decimals != nil {
		s.Decimals = *p.Decimals
	}
	s.ShowSlider = p.Min != nil && p.Max != nil
	if p.ShowSlider != nil {
		s.ShowSlider = *p.ShowSlider
	}
	s.ShowSpinbox = true
	if p.ShowSpinbox != nil {
		s.ShowSpinbox = *p.ShowSpinbox
	}
}

func (s *Spinner) clamp(v float64) float64 {
	if s.Min != nil && v < *s.Min {
		v = *s.Min
	}
	if s.Max != nil && v > *s.Max {
		v = *s.Max
	}
	return v
}

func (s *Spinner) Value() any { return s.value }

func (s *Spinner) SetValue(v any) {
	if f, ok := toFloat(v); ok {
		s.value = s.clamp(f)
	}
}

// InputNumber simulates the user entering a number; it is clamped to the
// configured bounds before the notification fires.
func (s *Spinner) InputNumber(v float64) {
	s.value = s.clamp(v)
	s.Emit(s.value)
}

// IntSpinner is a Spinner constrained to whole values.
type IntSpinner struct {
	Spinner
}

func NewIntSpinner() *IntSpinner {
	is := &IntSpinner{Spinner: *NewSpinner()}
	is.Decimals = 0
	return is
}

func (s *IntSpinner) Value() any { return int(math.Round(s.value)) }

// InputNumber rounds the entered value before clamping and notifying.
func (s *IntSpinner) InputNumber(v float64) {
	s.value = s.clamp(math.Round(v))
	s.Emit(s.Value())
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
