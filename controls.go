package kirkkaus

import (
	"cmp"
	"fmt"
	"slices"
)

// Control represents an editable parameter of a filter.
// When Value is modified via OnChange, the filter updates its output immediately.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered maps to a slider bounded by Min and Max.
// OnChange may be nil for controls whose value is read by the owner on demand.
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	return co.Set(v)
}

// Set is the typed version of ChangeValue.
func (co *ControlOrdered[T]) Set(v T) error {
	if v < co.Min || v > co.Max {
		return fmt.Errorf("new value %v exceeds limits %v..%v", v, co.Min, co.Max)
	}
	if co.OnChange != nil {
		if err := co.OnChange(v); err != nil {
			return err
		}
	}
	co.Value = v
	return nil
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

type number interface {
	integer | ~float32 | ~float64
}

// Nudge adds delta to the control's value saturating at the control limits.
// It returns the value after the change.
func Nudge[T number](co *ControlOrdered[T], delta T) (T, error) {
	v := min(max(co.Value+delta, co.Min), co.Max)
	if v == co.Value {
		return v, nil
	}
	err := co.Set(v)
	return co.Value, err
}

// ScrollStep maps a continuous scroll delta to a single discrete step:
// -1 for any negative delta, 1 for any positive delta and 0 otherwise.
func ScrollStep(delta float32) int {
	switch {
	case delta > 0:
		return 1
	case delta < 0:
		return -1
	}
	return 0
}

// enum best generated with stringer commands.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}
func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("value %v of %T not valid", v, v)
	}
	if ce.OnChange != nil {
		if err := ce.OnChange(v); err != nil {
			return err
		}
	}
	ce.Value = v
	return nil
}

// Cycle advances the control to the next valid value, wrapping around.
func (ce *ControlEnum[T]) Cycle() error {
	if len(ce.ValidValues) == 0 {
		return fmt.Errorf("%s has no valid values", ce.Name)
	}
	i := slices.Index(ce.ValidValues, ce.Value)
	return ce.ChangeValue(ce.ValidValues[(i+1)%len(ce.ValidValues)])
}
