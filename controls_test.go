package kirkkaus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollStep(t *testing.T) {
	tests := []struct {
		delta float32
		want  int
	}{
		{3.7, 1},
		{-0.0001, -1},
		{0, 0},
		{120, 1},
		{-120, -1},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, ScrollStep(test.delta), "delta %v", test.delta)
	}
}

func TestControlOrdered(t *testing.T) {
	var seen []int
	co := &ControlOrdered[int]{
		Name: "Brightness", Min: -255, Max: 255, Step: 1,
		OnChange: func(v int) error {
			if v == 13 {
				return errors.New("unlucky")
			}
			seen = append(seen, v)
			return nil
		},
	}
	require.NoError(t, co.ChangeValue(100))
	assert.Equal(t, 100, co.ActualValue())
	assert.Error(t, co.ChangeValue(256))
	assert.Error(t, co.ChangeValue("100"))
	assert.Error(t, co.ChangeValue(13))
	assert.Equal(t, 100, co.Value, "rejected change keeps value")
	assert.Equal(t, []int{100}, seen)

	name, _ := co.Describe()
	assert.Equal(t, "Brightness", name)

	noHook := &ControlOrdered[int]{Min: 0, Max: 10}
	assert.NoError(t, noHook.Set(5))
	assert.Equal(t, 5, noHook.Value)
}

func TestNudge(t *testing.T) {
	co := &ControlOrdered[int]{Min: -100, Max: 100, Step: 1}
	v, err := Nudge(co, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Nudge(co, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = Nudge(co, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = Nudge(co, -1000)
	require.NoError(t, err)
	assert.Equal(t, -100, v)

	f := &ControlOrdered[float32]{Min: 0, Max: 1}
	fv, err := Nudge(f, 0.25)
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), fv)
}

type level int

func (l level) String() string { return [...]string{"low", "mid", "high"}[l] }

func TestControlEnum(t *testing.T) {
	ce := &ControlEnum[level]{Name: "Level", ValidValues: []level{0, 1, 2}}
	require.NoError(t, ce.ChangeValue(level(2)))
	assert.Equal(t, level(2), ce.ActualValue())
	assert.Error(t, ce.ChangeValue(level(3)))
	assert.Error(t, ce.ChangeValue(2))

	require.NoError(t, ce.Cycle())
	assert.Equal(t, level(0), ce.Value)
	require.NoError(t, ce.Cycle())
	assert.Equal(t, level(1), ce.Value)

	empty := &ControlEnum[level]{Name: "Empty"}
	assert.Error(t, empty.Cycle())
}
