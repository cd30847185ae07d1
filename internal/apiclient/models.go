package apiclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/nutrition"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserPayload is the user profile as the auth service returns it.
type UserPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned by login, register, and refresh.
type SessionResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         UserPayload `json:"user"`
}

// refreshRequest is the refresh request body.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// analyzeRequest is the analysis request body.
type analyzeRequest struct {
	Image string `json:"image"`
}

// analysisWire is the raw analysis response. The macro fields arrive as
// free-form strings ("25g", "25.5 grams") and healthScore as a label.
type analysisWire struct {
	FoodName    string   `json:"foodName"`
	Calories    float64  `json:"calories"`
	Protein     string   `json:"protein"`
	Carbs       string   `json:"carbs"`
	Fat         string   `json:"fat"`
	Fiber       string   `json:"fiber"`
	Sugar       string   `json:"sugar"`
	Sodium      string   `json:"sodium"`
	Confidence  float64  `json:"confidence"`
	ServingSize string   `json:"servingSize"`
	Ingredients []string `json:"ingredients"`
	HealthScore string   `json:"healthScore"`
}

// AnalysisResult is the decoded, normalized analysis outcome.
type AnalysisResult struct {
	FoodName    string
	Nutrition   nutrition.Info
	Confidence  float64
	ServingSize string
	Ingredients []string
	// HealthScore is the 1-10 band derived from the service's label.
	HealthScore int
}

func (w analysisWire) toResult() AnalysisResult {
	return AnalysisResult{
		FoodName: w.FoodName,
		Nutrition: nutrition.Info{
			Calories: w.Calories,
			Protein:  ParseNutrient(w.Protein),
			Carbs:    ParseNutrient(w.Carbs),
			Fat:      ParseNutrient(w.Fat),
			Fiber:    ParseNutrient(w.Fiber),
			Sugar:    ParseNutrient(w.Sugar),
			Sodium:   ParseNutrient(w.Sodium),
		},
		Confidence:  w.Confidence,
		ServingSize: w.ServingSize,
		Ingredients: w.Ingredients,
		HealthScore: HealthScoreBand(w.HealthScore),
	}
}

// historyWire is the raw history response.
type historyWire struct {
	Items []historyItemWire `json:"items"`
}

type historyItemWire struct {
	analysisWire
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryItem is one remote history entry.
type HistoryItem struct {
	ID        string
	Analysis  AnalysisResult
	CreatedAt time.Time
}

// ParseNutrient extracts the leading numeric value from a free-form macro
// string, stripping unit suffixes and other non-numeric characters.
// Unparseable input yields 0.
func ParseNutrient(raw string) float64 {
	s := strings.TrimSpace(raw)

	start := -1
	end := len(s)
	seenDot := false
	for i, r := range s {
		isDigit := r >= '0' && r <= '9'
		isDot := r == '.' && !seenDot

		if start == -1 {
			if isDigit {
				start = i
			}
			continue
		}
		if isDot {
			seenDot = true
			continue
		}
		if !isDigit {
			end = i
			break
		}
	}
	if start == -1 {
		return 0
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	if err != nil {
		return 0
	}
	return value
}

// HealthScoreBand maps the service's free-form health label to the
// canonical 1-10 band. Unknown labels map to the middle band.
func HealthScoreBand(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "healthy", "excellent":
		return 9
	case "good":
		return 7
	case "fair", "moderate":
		return 5
	case "poor":
		return 3
	default:
		return 5
	}
}
