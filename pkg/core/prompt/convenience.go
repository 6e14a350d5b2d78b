package prompt

// Convenience functions for common prompt operations

// Categories of the narrative prompts.
const (
	CategoryVerdict = "narrative"
	CategoryMemo    = "memo"
)

// NarrativeID is the prompt ID of a calculator's short in-app verdict, e.g.
// "narrative.deal_roi".
func NarrativeID(calculatorSlug string) string {
	return CategoryVerdict + "." + calculatorSlug
}

// MemoID is the prompt ID of a calculator's detailed memo analysis, e.g. "memo.deal_roi".
func MemoID(calculatorSlug string) string {
	return CategoryMemo + "." + calculatorSlug
}
