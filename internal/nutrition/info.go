// Package nutrition provides the NutritionInfo value type and the pure
// aggregation engine that turns raw analysis samples into daily, weekly,
// and monthly progress. Nothing in this package touches storage or the
// clock; the only time input is the date passed in by the caller.
package nutrition

// Info holds the tracked macro fields as a unit. Values are grams except
// Calories (kcal) and Sodium (mg).
type Info struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Add returns the pointwise sum of a and b. The operation is commutative
// and associative, so summation order never affects aggregates.
func (a Info) Add(b Info) Info {
	return Info{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
		Fiber:    a.Fiber + b.Fiber,
		Sugar:    a.Sugar + b.Sugar,
		Sodium:   a.Sodium + b.Sodium,
	}
}

// IsZero reports whether every field is zero.
func (a Info) IsZero() bool {
	return a == Info{}
}

// Targets holds per-macro goal targets. A target of zero or less means the
// macro is untracked and its ratio is reported as zero.
type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Valid reports whether every target is positive.
func (t Targets) Valid() bool {
	return t.Calories > 0 && t.Protein > 0 && t.Carbs > 0 && t.Fat > 0 && t.Fiber > 0
}

// Ratios holds consumed/target per macro for one window.
type Ratios struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// RatiosAgainst computes consumed/target per macro, reporting zero for any
// macro whose target is not positive. It never divides by zero.
func (a Info) RatiosAgainst(t Targets) Ratios {
	return Ratios{
		Calories: ratio(a.Calories, t.Calories),
		Protein:  ratio(a.Protein, t.Protein),
		Carbs:    ratio(a.Carbs, t.Carbs),
		Fat:      ratio(a.Fat, t.Fat),
		Fiber:    ratio(a.Fiber, t.Fiber),
	}
}

func ratio(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return consumed / target
}

// MacroShares is the percentage split of calorie contribution between the
// three energy macros.
type MacroShares struct {
	ProteinPct float64 `json:"proteinPct"`
	CarbsPct   float64 `json:"carbsPct"`
	FatPct     float64 `json:"fatPct"`
}

// Calorie-equivalent factors per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// MacroPercentages derives the protein/carbs/fat split from their
// calorie-equivalent contributions. An all-zero input yields all zeros.
func MacroPercentages(info Info) MacroShares {
	p := info.Protein * kcalPerGramProtein
	c := info.Carbs * kcalPerGramCarbs
	f := info.Fat * kcalPerGramFat

	sum := p + c + f
	if sum <= 0 {
		return MacroShares{}
	}
	return MacroShares{
		ProteinPct: p / sum * 100,
		CarbsPct:   c / sum * 100,
		FatPct:     f / sum * 100,
	}
}
