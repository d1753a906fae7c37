package model

// SectionDef describes one newsletter section: how to recognize candidate
// stories (keywords) and what to tell the writing stage (PromptFocus).
type SectionDef struct {
	Key         string
	Title       string
	Icon        string
	Description string
	SubThemes   []string
	Keywords    []string
	PromptFocus string
}

// Sections returns the built-in section definitions in render order.
func Sections() []SectionDef {
	return []SectionDef{
		{
			Key:         "market_signals",
			Title:       "Market Signals",
			Icon:        "📊",
			Description: "Strategic trends, market movements, and industry analysis",
			SubThemes:   []string{"Macro Economy", "Consumer Trends"},
			Keywords: []string{
				"market", "growth", "revenue", "strategy", "expansion", "launch",
				"partnership", "trend", "forecast", "analysis", "report", "data",
				"attendance", "exhibitors", "square feet", "square metres", "venue",
				"digital", "hybrid", "sustainability", "AI", "technology",
				"economy", "recession", "inflation", "GDP", "interest rates", "spending",
				"consumer", "audience", "visitors", "attendees", "behavior", "demand",
			},
			PromptFocus: "Focus on strategic market movements, industry trends, new ventures, partnerships, " +
				"venue developments, format innovations, and market analysis. IMPORTANT: Organize " +
				"stories under two sub-themes: (1) MACRO ECONOMY - economic conditions affecting the " +
				"industry like recession fears, interest rates, corporate spending trends, and " +
				"(2) CONSUMER TRENDS - attendee behavior, visitor patterns, audience preferences, " +
				"and demand shifts. Label each story with its sub-theme.",
		},
		{
			Key:         "deals",
			Title:       "Deals",
			Icon:        "🤝",
			Description: "Mergers, acquisitions, investments, and divestitures",
			Keywords: []string{
				"acquisition", "acquire", "merger", "merge", "investment", "invest",
				"private equity", "PE", "buy", "sell", "divest", "stake", "valuation",
				"deal", "transaction", "purchase", "funding", "capital", "IPO",
				"Informa", "RX", "Clarion", "Hyve", "Tarsus", "Emerald", "Endeavor",
			},
			PromptFocus: "Focus on M&A activity, private equity moves, strategic investments, and divestitures. " +
				"Include deal values where known, and analyze strategic rationale and market implications.",
		},
		{
			Key:         "hires_fires",
			Title:       "Hires & Fires",
			Icon:        "👔",
			Description: "Executive appointments, departures, and restructuring",
			Keywords: []string{
				"CEO", "CFO", "COO", "CMO", "appointed", "appointment", "hire", "hired",
				"join", "joined", "depart", "departure", "resign", "resignation",
				"retire", "retirement", "restructur", "layoff", "redundan", "chief",
				"president", "director", "managing director", "MD", "VP", "executive",
			},
			PromptFocus: "Focus on senior executive movements (C-suite, MD, VP level and above). " +
				"Analyze what appointments signal about company strategy. Note patterns in hiring " +
				"(e.g., digital expertise, international expansion).",
		},
	}
}

// SectionByKey looks up a built-in section definition.
func SectionByKey(key string) (SectionDef, bool) {
	for _, s := range Sections() {
		if s.Key == key {
			return s, true
		}
	}
	return SectionDef{}, false
}
