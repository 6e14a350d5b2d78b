package narrative

import (
	"strings"

	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/prompt"
)

// Output caps for the two narrative shapes.
const (
	VerdictMaxTokens = 120
	MemoMaxTokens    = 2000
)

type calculatorContext struct {
	verdict string
	memo    string
}

var contexts = map[calculator.Kind]calculatorContext{
	calculator.FutureValue: {
		verdict: `You are analyzing a FUTURE VALUE calculation. The user wants to know how much their investment/asset will be worth in the future at a given growth rate. Focus on: whether the growth rate is realistic for the industry, how the future value compares to inflation-adjusted returns, and whether this is a good long-term play. Tell them what to DO (hold, invest more, diversify). Reference the country and industry.`,
		memo:    `You are writing a detailed Future Value / Growth Analysis memo. Discuss compound growth dynamics, compare the assumed growth rate against historical industry averages in the specific country, mention inflation erosion, and provide 2-3 real comparable investments or assets in the same sector/country with their historical growth rates. Discuss whether the projected returns justify the time horizon and opportunity cost.`,
	},
	calculator.DealROI: {
		verdict: `You are analyzing a DEAL ROI / ACQUISITION calculation. The user is evaluating buying a business or asset. Focus on: whether the entry price is fair given the EBITDA, if the IRR and cash return justify the risk, and how the deal compares to typical deals in this industry/country. Tell them to proceed, negotiate down, or walk away. Reference specific numbers.`,
		memo:    `You are writing a detailed Deal ROI / LBO Analysis memo. Analyze entry multiple vs industry comps, IRR vs hurdle rates, MOIC attractiveness, cash-on-cash dynamics, and exit feasibility at the assumed multiple. Provide 2-3 real comparable transactions in the same industry and country/region with approximate deal sizes and outcomes. Discuss key risks: leverage, market cycles, operational execution.`,
	},
	calculator.Breakeven: {
		verdict: `You are analyzing a BREAKEVEN calculation. The user wants to know how many units they need to sell to cover their fixed costs. Focus on: whether the profit margin per unit is healthy, how quickly they can realistically reach breakeven volume, and what the unit economics tell us about business viability. Guide them on pricing strategy or cost reduction. Reference the contribution per unit and breakeven point.`,
		memo:    `You are writing a detailed Breakeven Analysis memo. Analyze unit economics depth: contribution margin, fixed cost coverage, and volume sensitivity. Compare margins against industry benchmarks in the specific country. Provide 2-3 comparable businesses or products in the same sector with their typical margins and breakeven dynamics. Discuss scaling economics: what happens at 2x and 5x the breakeven volume.`,
	},
	calculator.Valuation: {
		verdict: `You are analyzing a COMPANY VALUATION. The user wants to know what their business is worth based on revenue and EBITDA. Focus on: whether the EBITDA margin is strong for the industry, how the implied valuation multiple compares to recent transactions, and whether the business is undervalued or overvalued. Tell them if it's a good time to sell, raise capital, or keep growing.`,
		memo:    `You are writing a detailed Valuation Analysis memo. Analyze the business using multiple methodologies: EV/EBITDA, EV/Revenue, and margin-based approaches. Compare against 2-3 real comparable companies or recent M&A transactions in the same industry and country. Discuss what drives premium vs discount valuations in this sector. Address key value drivers and risks.`,
	},
	calculator.Payback: {
		verdict: `You are analyzing an INVESTMENT PAYBACK calculation. The user wants to know how long it takes to recover their investment through annual savings or earnings. Focus on: whether the payback period is acceptable for this type of investment, what the real (inflation-adjusted) return looks like, and the total value created over the projection period. Tell them if this investment is worth making.`,
		memo:    `You are writing a detailed Payback / Investment Recovery Analysis memo. Analyze payback period against industry norms, discuss inflation impact on real returns, and project total value creation over the investment horizon. Provide 2-3 comparable investments in the same industry and country with their typical payback periods. Discuss opportunity cost (what else could this capital achieve) and the risk-adjusted return profile.`,
	},
}

const verdictRules = `

HARD LIMITS (you MUST obey these):
- MAXIMUM 50 words. Do NOT exceed 50 words under any circumstances.
- MAXIMUM 320 characters total.
- 3-4 sentences ONLY.

Rules:
- Tell the user what to DO with this investment based on the calculator results.
- Mention the country and industry context briefly.
- Reference one or two key numbers from the results.
- Say whether it beats or trails the industry average.
- Use simple everyday language. No jargon.
- No emojis. No markdown (no **, no *, no #, no backticks).
- Plain text only. No bullet points. No bold.
- Every word must earn its place. Be ruthlessly concise.
- Each response must be UNIQUE to the specific numbers. Never use template phrases.`

const memoRules = `

Rules:
- Write 3-4 paragraphs of substantive analysis.
- Reference specific numbers from the data provided.
- Compare performance against industry benchmarks in the specific country/market.
- Include 2-3 real-world comparable transactions or companies from the same industry and country/region. Include approximate year, deal size, and outcome.
- Discuss risk factors and opportunities specific to this industry and market.
- Use professional Wall Street tone, formal but clear.
- No emojis. No bullet points. Flowing prose only. No markdown formatting (no **, no *, no #, no backticks).
- Write in plain text only. No bold markers. No special formatting characters.
- Currency and numbers should match the user's market context.
- After writing, mentally re-read and remove any speculative claims that cannot be supported by the input data.`

const userHeader = `Calculator: {{.Calculator}}
Market: {{.Market}}
Industry: {{.Industry}}

Inputs: {{json .Inputs}}
Results: {{json .Results}}

`

const verdictUserTmpl = userHeader + `Give a 3-4 sentence actionable verdict. Max 50 words, 320 characters. Be specific to THESE numbers.`

const memoUserTmpl = userHeader + `Write a detailed market analysis with real-world comparables for the investment memorandum PDF. Make sure every claim ties back to the actual numbers provided.`

var promptVariables = []prompt.PromptVariable{
	{Name: "Calculator", Type: "string", Description: "Calculator display name", Required: true},
	{Name: "Market", Type: "string", Description: "Market code, e.g. US", Required: true},
	{Name: "Industry", Type: "string", Description: "Industry code, e.g. real-estate", Required: true},
	{Name: "Inputs", Type: "object", Description: "Calculator inputs", Required: true},
	{Name: "Results", Type: "object", Description: "Calculator results", Required: true},
}

// Slug is the prompt-ID segment of a calculator: "deal_roi" for deal-roi.
func Slug(k calculator.Kind) string {
	return strings.ReplaceAll(string(k), "-", "_")
}

// RegisterDefaults registers the built-in verdict and memo prompts for every calculator,
// skipping IDs already present (e.g. loaded from disk with prompt.LoadFromDirectory).
func RegisterDefaults(r *prompt.Registry) error {
	for _, k := range calculator.Kinds() {
		c := contexts[k]
		verdict := &prompt.PromptTemplate{
			ID:             prompt.NarrativeID(Slug(k)),
			Name:           k.DisplayName() + " verdict",
			Category:       prompt.CategoryVerdict,
			Description:    "Short streamed verdict shown next to the result",
			SystemPrompt:   c.verdict + verdictRules,
			UserPromptTmpl: verdictUserTmpl,
			MaxTokens:      VerdictMaxTokens,
			Variables:      promptVariables,
			Version:        "1",
		}
		memo := &prompt.PromptTemplate{
			ID:             prompt.MemoID(Slug(k)),
			Name:           k.DisplayName() + " memo",
			Category:       prompt.CategoryMemo,
			Description:    "Detailed market analysis for the exported memo",
			SystemPrompt:   c.memo + memoRules,
			UserPromptTmpl: memoUserTmpl,
			MaxTokens:      MemoMaxTokens,
			Variables:      promptVariables,
			Version:        "1",
		}
		for _, pt := range []*prompt.PromptTemplate{verdict, memo} {
			if _, err := r.RegisterIfAbsent(pt); err != nil {
				return err
			}
		}
	}
	return nil
}
