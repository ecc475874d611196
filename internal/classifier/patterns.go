package classifier

import "loan-advisory-assistant/internal/model"

func defaultWeights() SignalWeights {
	return SignalWeights{
		Keyword: DefaultKeywordWeight,
		Phrase:  DefaultPhraseWeight,
		Regex:   DefaultRegexWeight,
	}
}

// DefaultPatterns returns the built-in pattern table for the loan advisory
// domain. UNKNOWN carries no patterns; it is the degraded result, never a
// scored candidate.
func DefaultPatterns() []IntentPattern {
	return []IntentPattern{
		{
			Type:     model.IntentGreeting,
			Keywords: []string{"hello", "hi", "hey", "morning", "afternoon", "evening"},
			Phrases:  []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"},
			Regexes:  []string{`(?i)^\s*(hello|hi|hey)\b`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentFarewell,
			Keywords: []string{"bye", "goodbye", "farewell", "later"},
			Phrases:  []string{"goodbye", "bye", "see you", "talk to you later", "that is all"},
			Regexes:  []string{`(?i)\b(good)?bye\b`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentQuestion,
			Keywords: []string{"what", "how", "why", "when", "where", "which", "explain"},
			Phrases:  []string{"can you tell me", "i would like to know", "what is", "how does"},
			Regexes:  []string{`\?\s*$`, `(?i)^\s*(what|how|why|when|where|which|who)\b`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentHelp,
			Keywords: []string{"help", "assist", "support", "guide", "stuck"},
			Phrases:  []string{"help me", "i need help", "what can you do", "how do i use"},
			Regexes:  []string{`(?i)\b(help|assist)\b`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentLoanApplication,
			Keywords: []string{"loan", "apply", "borrow", "financing", "mortgage", "credit line"},
			Phrases:  []string{"apply for", "apply for a loan", "take out a loan", "need a loan", "get a loan", "request a loan"},
			Regexes:  []string{`(?i)apply.{0,40}(loan|financing|mortgage)`, `(?i)\b(borrow|lend me)\b`},
			Weights:  defaultWeights(),
			EntityPatterns: map[string]string{
				"loanType": `(?i)(business|personal|home|auto|student|mortgage)\s+loan`,
				"amount":   `\$\s?([0-9][0-9,]*(?:\.[0-9]+)?)`,
				"term":     `(?i)\b([0-9]+)\s*(?:year|month)s?\b`,
			},
		},
		{
			Type:     model.IntentLoanStatus,
			Keywords: []string{"status", "application", "pending", "approved", "track"},
			Phrases:  []string{"loan status", "application status", "my application", "track my loan"},
			Regexes:  []string{`(?i)(status of|track).{0,30}(loan|application)`},
			Weights:  defaultWeights(),
			EntityPatterns: map[string]string{
				"applicationId": `(?i)\b(?:application|ref(?:erence)?)\s*#?\s*([A-Z0-9-]{4,})`,
			},
		},
		{
			Type:     model.IntentCreditHistory,
			Keywords: []string{"credit", "score", "history", "report", "rating"},
			Phrases:  []string{"check my credit", "credit history", "credit score", "my credit report"},
			Regexes:  []string{`(?i)(check my credit|credit\s+(history|score|report|rating))`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentPropertyValuation,
			Keywords: []string{"property", "valuation", "appraisal", "house", "apartment", "worth"},
			Phrases:  []string{"property value", "how much is my", "home worth", "value my property"},
			Regexes:  []string{`(?i)(valuat|apprais|worth)`},
			Weights:  defaultWeights(),
			EntityPatterns: map[string]string{
				"propertyType": `(?i)\b(apartment|house|condo|land|commercial|office)\b`,
				"location":     `(?i)\bin\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?)`,
			},
		},
		{
			Type:     model.IntentRiskAssessment,
			Keywords: []string{"risk", "assessment", "eligibility", "qualify", "chances"},
			Phrases:  []string{"am i eligible", "do i qualify", "risk profile", "what are my chances"},
			Regexes:  []string{`(?i)(eligib|qualif|risk)`},
			Weights:  defaultWeights(),
		},
		{
			Type:     model.IntentComplaint,
			Keywords: []string{"complaint", "unhappy", "terrible", "wrong", "error", "frustrated"},
			Phrases:  []string{"i want to complain", "file a complaint", "this is wrong", "not working"},
			Regexes:  []string{`(?i)(complain|disappointed|unacceptable)`},
			Weights:  defaultWeights(),
		},
	}
}
