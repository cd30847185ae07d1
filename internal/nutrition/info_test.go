package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

func TestInfo_AddIsComponentwise(t *testing.T) {
	a := nutrition.Info{Calories: 300, Protein: 20, Carbs: 30, Fat: 10, Fiber: 5, Sugar: 8, Sodium: 400}
	b := nutrition.Info{Calories: 200, Protein: 15, Carbs: 25, Fat: 5, Fiber: 3, Sugar: 2, Sodium: 100}

	sum := a.Add(b)

	assert.Equal(t, nutrition.Info{
		Calories: 500, Protein: 35, Carbs: 55, Fat: 15, Fiber: 8, Sugar: 10, Sodium: 500,
	}, sum)
}

func TestInfo_AddCommutativeAndAssociative(t *testing.T) {
	a := nutrition.Info{Calories: 100, Protein: 10}
	b := nutrition.Info{Calories: 250, Carbs: 40}
	c := nutrition.Info{Calories: 75, Fat: 9}

	assert.Equal(t, a.Add(b), b.Add(a))
	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestInfo_AddZeroIsIdentity(t *testing.T) {
	a := nutrition.Info{Calories: 123, Protein: 4, Sodium: 56}

	assert.Equal(t, a, a.Add(nutrition.Info{}))
	assert.True(t, nutrition.Info{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestRatiosAgainst_ZeroTargetYieldsZero(t *testing.T) {
	consumed := nutrition.Info{Calories: 1000, Protein: 50}
	goal := nutrition.Targets{Calories: 2000} // everything else untracked

	r := consumed.RatiosAgainst(goal)

	assert.Equal(t, 0.5, r.Calories)
	assert.Zero(t, r.Protein)
	assert.Zero(t, r.Carbs)
	assert.Zero(t, r.Fat)
	assert.Zero(t, r.Fiber)
}

func TestTargets_Valid(t *testing.T) {
	valid := nutrition.Targets{Calories: 2000, Protein: 120, Carbs: 250, Fat: 70, Fiber: 30}
	assert.True(t, valid.Valid())

	invalid := valid
	invalid.Fiber = 0
	assert.False(t, invalid.Valid())
}

func TestMacroPercentages(t *testing.T) {
	t.Run("all zero input", func(t *testing.T) {
		shares := nutrition.MacroPercentages(nutrition.Info{})
		assert.Zero(t, shares.ProteinPct)
		assert.Zero(t, shares.CarbsPct)
		assert.Zero(t, shares.FatPct)
	})

	t.Run("equal protein and carbs, no fat", func(t *testing.T) {
		shares := nutrition.MacroPercentages(nutrition.Info{Protein: 50, Carbs: 50})
		assert.InDelta(t, 50, shares.ProteinPct, 1e-9)
		assert.InDelta(t, 50, shares.CarbsPct, 1e-9)
		assert.Zero(t, shares.FatPct)
	})

	t.Run("fat weighted at nine kcal per gram", func(t *testing.T) {
		shares := nutrition.MacroPercentages(nutrition.Info{Protein: 9, Fat: 4})
		// 9g*4 = 36 kcal protein, 4g*9 = 36 kcal fat.
		assert.InDelta(t, 50, shares.ProteinPct, 1e-9)
		assert.InDelta(t, 50, shares.FatPct, 1e-9)
	})
}
