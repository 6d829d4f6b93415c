package scoring

// CategoryScore is the outcome of one scoring category. RawScore stays within
// [0, RawMax]; the rebalanced fields are filled in by the calculator after the
// content-type weight vector is applied.
type CategoryScore struct {
	RawScore   float64            `json:"score"`
	RawMax     float64            `json:"max"`
	Percentage float64            `json:"percentage"`
	SubScores  map[string]float64 `json:"sub_scores,omitempty"`

	RebalancedScore float64 `json:"rebalanced_score"`
	RebalancedMax   float64 `json:"rebalanced_max"`
	Weight          float64 `json:"weight"`

	Error string `json:"error,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Category names, also the keys of Result.Breakdown and profile weight maps.
const (
	CategoryAnswerability  = "answerability"
	CategoryStructuredData = "structured_data"
	CategoryAuthority      = "authority"
	CategoryContentQuality = "content_quality"
	CategoryCitationability = "citationability"
	CategoryTechnical      = "technical"
)

// categoryOrder fixes iteration order for deterministic output and logging.
var categoryOrder = []string{
	CategoryAnswerability,
	CategoryStructuredData,
	CategoryAuthority,
	CategoryContentQuality,
	CategoryCitationability,
	CategoryTechnical,
}

// categoryMax holds the fixed point budget of each category. The budgets sum
// to 98; together with the 0-5 AI citation add-on the theoretical ceiling
// lands at 100 after normalization.
var categoryMax = map[string]float64{
	CategoryAnswerability:   30,
	CategoryStructuredData:  15,
	CategoryAuthority:       18,
	CategoryContentQuality:  15,
	CategoryCitationability: 10,
	CategoryTechnical:       10,
}

const aiCitationMax = 5.0

// Result is the fully aggregated audit score for one page.
type Result struct {
	OverallScore float64                  `json:"overall_score"`
	Grade        string                   `json:"grade"`
	Profile      string                   `json:"profile"`
	Breakdown    map[string]CategoryScore `json:"breakdown"`
	AICitation   CategoryScore            `json:"ai_citation"`
}

func round1(v float64) float64 {
	if v < 0 {
		return 0
	}
	return float64(int(v*10+0.5)) / 10
}

func finishCategory(score CategoryScore) CategoryScore {
	if score.RawScore > score.RawMax {
		score.RawScore = score.RawMax
	}
	if score.RawScore < 0 {
		score.RawScore = 0
	}
	score.RawScore = round1(score.RawScore)
	if score.RawMax > 0 {
		score.Percentage = round1(score.RawScore / score.RawMax * 100)
	}
	return score
}
