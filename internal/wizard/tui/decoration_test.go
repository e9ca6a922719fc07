package tui

import (
	"testing"
	"time"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/order"
)

func TestDotStates(t *testing.T) {
	got := dotStates(2, 5)
	want := []dotState{dotActive, dotActive, dotCurrent, dotInactive, dotInactive}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dotStates(2, 5)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	first := dotStates(0, 5)
	if first[0] != dotCurrent || first[1] != dotInactive {
		t.Errorf("dotStates(0, 5) = %v", first)
	}
}

func TestIndicatorSpring(t *testing.T) {
	ind := newIndicator()
	ind.SetTarget(0.5)
	for i := 0; i < 120; i++ {
		ind.Animate()
	}
	if got := ind.Position(); got < 0.45 || got > 0.55 {
		t.Errorf("Position() = %v, want ~0.5", got)
	}

	ind.SetTarget(3)
	if ind.target != 1 {
		t.Errorf("SetTarget(3) target = %v, want 1", ind.target)
	}
}

func TestCupColors(t *testing.T) {
	cat := catalog.MustDefault()
	bean, _ := cat.Bean("robusta-1")
	oat, _ := cat.Topping("oat-milk")
	almond, _ := cat.Topping("almond-milk")
	shot, _ := cat.Topping("extra-shot")

	sel := order.NewSelection("", "")
	if got := coffeeColor(sel); got != DefaultCoffeeColor {
		t.Errorf("coffeeColor(empty) = %q, want %q", got, DefaultCoffeeColor)
	}
	if _, ok := creamColor(sel); ok {
		t.Error("creamColor(empty) should report no cream")
	}

	sel = sel.Apply(order.WithBean(bean)).ToggleTopping(almond).ToggleTopping(oat).ToggleTopping(shot)
	if got := coffeeColor(sel); got != bean.Color {
		t.Errorf("coffeeColor() = %q, want %q", got, bean.Color)
	}
	if got, _ := creamColor(sel); got != almond.Color {
		t.Errorf("creamColor() = %q, want first milk %q", got, almond.Color)
	}
	if got := sprinkleColors(sel); len(got) != 1 || got[0] != shot.Color {
		t.Errorf("sprinkleColors() = %v, want [%s]", got, shot.Color)
	}
}

func TestCupWobble(t *testing.T) {
	c := newCup()
	seen := map[int]bool{}
	for i := 0; i < 8*frameRate; i++ {
		c.Animate(time.Second/frameRate, order.NewSelection("", ""))
		w := c.wobble()
		if w < -1 || w > 1 {
			t.Fatalf("wobble() = %d, want within [-1, 1]", w)
		}
		seen[w] = true
	}
	if !seen[-1] || !seen[1] {
		t.Errorf("wobble over one period = %v, want both directions", seen)
	}
}

func TestCupLevel(t *testing.T) {
	cat := catalog.MustDefault()
	prep, _ := cat.Preparation("espresso")

	c := newCup()
	for i := 0; i < 60; i++ {
		c.Animate(time.Second/frameRate, order.NewSelection("", ""))
	}
	if c.filledRows() != 1 {
		t.Errorf("filledRows() at rest = %d, want 1", c.filledRows())
	}

	sel := order.NewSelection("", "").Apply(order.WithPreparation(prep))
	for i := 0; i < 120; i++ {
		c.Animate(time.Second/frameRate, sel)
	}
	if c.filledRows() != cupRows {
		t.Errorf("filledRows() after choosing a method = %d, want %d", c.filledRows(), cupRows)
	}
}
