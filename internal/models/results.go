package models

// Issue is a canned compliance finding shown on the results step.
type Issue struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Platform    string `json:"platform"`
	Teaser      string `json:"teaser"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Solution    string `json:"solution"`
	Code        string `json:"code"`
}

type TitleOptimization struct {
	Platform    string `json:"platform"`
	Current     string `json:"current"`
	Optimized   string `json:"optimized"`
	Status      string `json:"status"`
	Limit       string `json:"limit"`
	Improvement string `json:"improvement"`
}

type KeywordInsight struct {
	Keyword      string `json:"keyword"`
	Opportunity  string `json:"opportunity"`
	CurrentRank  string `json:"currentRank"`
	Potential    string `json:"potential"`
	SearchVolume string `json:"searchVolume"`
	Competition  string `json:"competition"`
}

type PlatformRecommendation struct {
	Platform        string   `json:"platform"`
	Icon            string   `json:"icon"`
	Recommendations []string `json:"recommendations"`
}

type OptimizationSummary struct {
	TitleOptimization       []TitleOptimization      `json:"titleOptimization"`
	KeywordAnalysis         []KeywordInsight         `json:"keywordAnalysis"`
	PlatformRecommendations []PlatformRecommendation `json:"platformRecommendations"`
}

// SummaryCard is one of the headline counters above the result panels.
type SummaryCard struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Caption string `json:"caption"`
	Icon    string `json:"icon"`
}

// DashboardRow is a row of the pitch-deck dashboard mock.
type DashboardRow struct {
	SKU     string `json:"sku"`
	Product string `json:"product"`
	Status  string `json:"status"`
}

// ResultsPanel bundles everything the results step renders.
type ResultsPanel struct {
	Summary        []SummaryCard       `json:"summary"`
	CriticalIssues []Issue             `json:"criticalIssues"`
	Optimizations  OptimizationSummary `json:"optimizations"`
	Dashboard      []DashboardRow      `json:"dashboard"`
}
