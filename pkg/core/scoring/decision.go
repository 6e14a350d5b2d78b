package scoring

// DecisionType is the go / caution / pass bucket of a quality score.
type DecisionType string

const (
	DecisionGo      DecisionType = "go"
	DecisionCaution DecisionType = "caution"
	DecisionPass    DecisionType = "pass"
)

// Context selects the label set used for a decision.
type Context string

const (
	ContextDeal      Context = "deal"
	ContextGrowth    Context = "growth"
	ContextValuation Context = "valuation"
	ContextPayback   Context = "payback"
)

// Decision
type Decision struct {
	Label       string       `json:"label"`
	Type        DecisionType `json:"type"`
	Description string       `json:"description"`
}

var labels = map[Context]map[DecisionType]string{
	ContextDeal:      {DecisionGo: "GO", DecisionCaution: "CAUTION", DecisionPass: "PASS"},
	ContextGrowth:    {DecisionGo: "OUTPERFORMER", DecisionCaution: "ON PACE", DecisionPass: "LAGGING"},
	ContextValuation: {DecisionGo: "PREMIUM", DecisionCaution: "FAIR VALUE", DecisionPass: "UNDERPERFORMER"},
	ContextPayback:   {DecisionGo: "QUICK WIN", DecisionCaution: "MODERATE", DecisionPass: "SLOW BURN"},
}

var descriptions = map[DecisionType]string{
	DecisionGo:      "Strong fundamentals",
	DecisionCaution: "Review carefully",
	DecisionPass:    "Below threshold",
}

// TypeFor buckets a quality score: >= 7 go, >= 4 caution, else pass.
func TypeFor(qualityScore int) DecisionType {
	switch {
	case qualityScore >= 7:
		return DecisionGo
	case qualityScore >= 4:
		return DecisionCaution
	default:
		return DecisionPass
	}
}

// GetExecutiveDecision labels qualityScore using the context's label set. Unknown
// contexts use the deal labels.
func GetExecutiveDecision(qualityScore int, context Context) Decision {
	t := TypeFor(qualityScore)
	set, ok := labels[context]
	if !ok {
		set = labels[ContextDeal]
	}
	return Decision{
		Label:       set[t],
		Type:        t,
		Description: descriptions[t],
	}
}
