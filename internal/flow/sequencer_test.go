package flow

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/order"
)

func TestSequencerStartsAtBean(t *testing.T) {
	var seq Sequencer
	assert.Equal(t, StepBean, seq.Current())
	assert.Equal(t, 0, seq.Index())
	assert.Equal(t, 0.0, seq.Progress())
}

func TestSequencerBounds(t *testing.T) {
	var seq Sequencer

	assert.False(t, seq.Retreat(), "Retreat() at first step should be a no-op")
	assert.Equal(t, StepBean, seq.Current())

	for _, want := range Steps[1:] {
		require.True(t, seq.Advance())
		assert.Equal(t, want, seq.Current())
	}

	assert.False(t, seq.Advance(), "Advance() at review should be a no-op")
	assert.Equal(t, StepReview, seq.Current())
	assert.Equal(t, 1.0, seq.Progress())
}

func TestSequencerRandomWalkStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var seq Sequencer
	for i := 0; i < 1000; i++ {
		before := seq.Index()
		var moved bool
		if rng.Intn(2) == 0 {
			moved = seq.Advance()
		} else {
			moved = seq.Retreat()
		}
		require.GreaterOrEqual(t, seq.Index(), 0)
		require.Less(t, seq.Index(), len(Steps))
		if moved {
			diff := seq.Index() - before
			require.True(t, diff == 1 || diff == -1)
		} else {
			require.Equal(t, before, seq.Index())
		}
		p := seq.Progress()
		require.True(t, p >= 0 && p <= 1, "Progress() = %v, want [0,1]", p)
	}
}

func TestSequencerGoTo(t *testing.T) {
	var seq Sequencer
	assert.True(t, seq.GoTo(StepToppings))
	assert.Equal(t, StepToppings, seq.Current())
	assert.False(t, seq.GoTo(StepToppings))
	assert.False(t, seq.GoTo(Step(9)))
	seq.Reset()
	assert.Equal(t, StepBean, seq.Current())
}

func TestStepContent(t *testing.T) {
	tests := []struct {
		step  Step
		title string
	}{
		{StepBean, "Choose Your Coffee Bean"},
		{StepGrind, "Select Grind Level"},
		{StepPreparation, "Choose Preparation Method"},
		{StepToppings, "Add Toppings"},
		{StepReview, "Review Your Order"},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			c := tt.step.Content()
			assert.Equal(t, tt.title, c.Title)
			assert.NotEmpty(t, c.Subtitle)
		})
	}
	assert.False(t, StepBean.HasBack())
	assert.True(t, StepReview.HasBack())
}

func TestCanAdvance(t *testing.T) {
	cat := catalog.MustDefault()
	bean, err := cat.Bean("arabica-1")
	require.NoError(t, err)
	grind, err := cat.Grind("medium")
	require.NoError(t, err)
	prep, err := cat.Preparation("pourover")
	require.NoError(t, err)

	empty := order.NewSelection("", "")
	full := empty.Apply(order.WithBean(bean), order.WithGrind(grind), order.WithPreparation(prep))

	tests := []struct {
		step Step
		sel  order.Selection
		want bool
	}{
		{StepBean, empty, false},
		{StepBean, empty.Apply(order.WithBean(bean)), true},
		{StepGrind, empty.Apply(order.WithBean(bean)), false},
		{StepGrind, empty.Apply(order.WithGrind(grind)), true},
		{StepPreparation, empty, false},
		{StepPreparation, empty.Apply(order.WithPreparation(prep)), true},
		{StepToppings, empty, true},
		{StepToppings, full, true},
		{StepReview, empty, false},
		{StepReview, full, false},
	}
	for _, tt := range tests {
		if got := CanAdvance(tt.step, tt.sel); got != tt.want {
			t.Errorf("CanAdvance(%s) = %v, want %v", tt.step, got, tt.want)
		}
	}
}
