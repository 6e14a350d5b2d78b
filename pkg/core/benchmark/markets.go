package benchmark

// Built-in benchmark table. Figures are percentages (growth, margin, inflation, IRR) or
// multiples (EBITDA multiples, MOIC).
var builtinMarkets = map[string]Market{
	"US": {
		Code:         "US",
		Name:         "United States",
		Currency:     "USD",
		AvgInflation: 2.8,
		PeIRR:        20,
		PeMOIC:       2.5,
		Industries: map[string]IndustryData{
			"real-estate":   {AvgGrowth: 4.2, GoodGrowth: 6.0, ExcellentGrowth: 8.0, AvgMultiple: 15, GoodMultiple: 18, AvgMargin: 25, Context: "Real estate in the US is steady but slow. Prices go up about 4% per year. Safe money, but don't expect to get rich quick."},
			"tech":          {AvgGrowth: 12.5, GoodGrowth: 18.0, ExcellentGrowth: 25.0, AvgMultiple: 20, GoodMultiple: 30, AvgMargin: 35, Context: "US tech grows fast - 12% or more per year. Competitive with lots of winners and failures. High risk, high reward."},
			"retail":        {AvgGrowth: 3.8, GoodGrowth: 6.5, ExcellentGrowth: 10.0, AvgMultiple: 8, GoodMultiple: 12, AvgMargin: 15, Context: "Retail in the US is tough. Only grows 3-4% per year. Amazon and online shopping are crushing traditional stores."},
			"manufacturing": {AvgGrowth: 5.2, GoodGrowth: 8.0, ExcellentGrowth: 12.0, AvgMultiple: 10, GoodMultiple: 14, AvgMargin: 20, Context: "US manufacturing is solid and predictable. About 5% growth per year. Not flashy, but reliable for long-term holds."},
			"healthcare":    {AvgGrowth: 6.8, GoodGrowth: 10.0, ExcellentGrowth: 15.0, AvgMultiple: 12, GoodMultiple: 16, AvgMargin: 22, Context: "Healthcare keeps growing as people age. 7-10% per year is normal. Expensive to start, but stable once running."},
			"finance":       {AvgGrowth: 7.5, GoodGrowth: 11.0, ExcellentGrowth: 16.0, AvgMultiple: 14, GoodMultiple: 18, AvgMargin: 30, Context: "Financial services grow steady at 7-8% per year. High margins if you can get customers. Heavily regulated though."},
		},
	},
	"PK": {
		Code:         "PK",
		Name:         "Pakistan",
		Currency:     "PKR",
		AvgInflation: 11.2,
		PeIRR:        25,
		PeMOIC:       3.0,
		Industries: map[string]IndustryData{
			"real-estate":   {AvgGrowth: 8.5, GoodGrowth: 12.0, ExcellentGrowth: 15.0, AvgMultiple: 10, GoodMultiple: 14, AvgMargin: 30, Context: "Real estate in Pakistan goes up and down a lot. Can grow 8-15% per year, but inflation eats into it."},
			"tech":          {AvgGrowth: 18.0, GoodGrowth: 25.0, ExcellentGrowth: 35.0, AvgMultiple: 12, GoodMultiple: 18, AvgMargin: 40, Context: "Tech in Pakistan is booming - young population, cheap labor. Can grow 20-35% per year. Power outages and politics add risk."},
			"retail":        {AvgGrowth: 7.2, GoodGrowth: 10.5, ExcellentGrowth: 15.0, AvgMultiple: 6, GoodMultiple: 9, AvgMargin: 18, Context: "Retail is growing as the middle class expands. 7-10% per year. Currency swings and imports can kill margins fast."},
			"manufacturing": {AvgGrowth: 9.5, GoodGrowth: 14.0, ExcellentGrowth: 20.0, AvgMultiple: 8, GoodMultiple: 12, AvgMargin: 22, Context: "Manufacturing is strong - textiles, cement, steel. Can grow 10-15% per year. Energy costs and rupee devaluation are big risks."},
			"healthcare":    {AvgGrowth: 11.0, GoodGrowth: 16.0, ExcellentGrowth: 22.0, AvgMultiple: 9, GoodMultiple: 13, AvgMargin: 25, Context: "Healthcare is growing fast as people get richer. 11-16% per year. Not much competition yet."},
			"finance":       {AvgGrowth: 10.5, GoodGrowth: 15.0, ExcellentGrowth: 20.0, AvgMultiple: 10, GoodMultiple: 14, AvgMargin: 28, Context: "Banks and finance are growing with the economy. 10-15% per year. Interest rate swings can hurt. Political stability matters."},
		},
	},
	"UK": {
		Code:         "UK",
		Name:         "United Kingdom",
		Currency:     "GBP",
		AvgInflation: 2.5,
		PeIRR:        18,
		PeMOIC:       2.3,
		Industries: map[string]IndustryData{
			"real-estate":   {AvgGrowth: 3.5, GoodGrowth: 5.5, ExcellentGrowth: 7.5, AvgMultiple: 16, GoodMultiple: 20, AvgMargin: 23, Context: "UK real estate grows slow - only 3-5% per year. London is expensive. Brexit made things uncertain."},
			"tech":          {AvgGrowth: 10.5, GoodGrowth: 16.0, ExcellentGrowth: 22.0, AvgMultiple: 18, GoodMultiple: 28, AvgMargin: 33, Context: "UK tech is decent - fintech and AI are strong. Grows 10-16% per year. Talent is expensive."},
			"retail":        {AvgGrowth: 2.8, GoodGrowth: 5.0, ExcellentGrowth: 8.0, AvgMultiple: 7, GoodMultiple: 11, AvgMargin: 14, Context: "Retail in the UK is dying. Only 3-5% growth. High street stores closing everywhere."},
			"manufacturing": {AvgGrowth: 4.2, GoodGrowth: 7.0, ExcellentGrowth: 10.0, AvgMultiple: 9, GoodMultiple: 13, AvgMargin: 19, Context: "UK manufacturing is stable but slow. 4-7% growth. Better for specialty products than mass production."},
			"healthcare":    {AvgGrowth: 5.5, GoodGrowth: 8.5, ExcellentGrowth: 12.0, AvgMultiple: 11, GoodMultiple: 15, AvgMargin: 21, Context: "Healthcare grows steady at 5-8% as population ages. NHS takes most of the market."},
			"finance":       {AvgGrowth: 6.8, GoodGrowth: 10.0, ExcellentGrowth: 14.0, AvgMultiple: 13, GoodMultiple: 17, AvgMargin: 29, Context: "Financial services in London are still strong. 7-10% growth. Post-Brexit some business moved to EU."},
		},
	},
	"AE": {
		Code:         "AE",
		Name:         "UAE",
		Currency:     "AED",
		AvgInflation: 1.8,
		PeIRR:        22,
		PeMOIC:       2.8,
		Industries: map[string]IndustryData{
			"real-estate":   {AvgGrowth: 6.5, GoodGrowth: 9.5, ExcellentGrowth: 13.0, AvgMultiple: 12, GoodMultiple: 16, AvgMargin: 28, Context: "UAE real estate is hot and cold - Dubai especially. Can grow 6-13% per year. Oversupply can crash prices."},
			"tech":          {AvgGrowth: 15.0, GoodGrowth: 22.0, ExcellentGrowth: 30.0, AvgMultiple: 16, GoodMultiple: 24, AvgMargin: 38, Context: "Tech in UAE is growing fast - government is pushing it hard. 15-30% growth. Tax-free income attracts talent."},
			"retail":        {AvgGrowth: 5.5, GoodGrowth: 8.5, ExcellentGrowth: 12.0, AvgMultiple: 7, GoodMultiple: 10, AvgMargin: 17, Context: "Retail grows with tourism and expats. 5-8% per year. Competition is fierce and rents are crazy high."},
			"manufacturing": {AvgGrowth: 7.2, GoodGrowth: 11.0, ExcellentGrowth: 15.0, AvgMultiple: 9, GoodMultiple: 13, AvgMargin: 21, Context: "Manufacturing is growing - free zones make it easy. 7-11% growth. Labor costs rising though."},
			"healthcare":    {AvgGrowth: 8.5, GoodGrowth: 13.0, ExcellentGrowth: 18.0, AvgMultiple: 10, GoodMultiple: 14, AvgMargin: 24, Context: "Healthcare is booming - medical tourism and wealthy expats. 8-13% growth."},
			"finance":       {AvgGrowth: 9.0, GoodGrowth: 13.5, ExcellentGrowth: 18.0, AvgMultiple: 12, GoodMultiple: 16, AvgMargin: 31, Context: "Financial services growing fast in Dubai - becoming a regional hub. 9-13% per year. Islamic finance is big."},
		},
	},
}

// Display order for markets and industries.
var (
	marketOrder = []string{"US", "PK", "UK", "AE"}

	industryLabels = []Option{
		{Code: "real-estate", Label: "Real Estate"},
		{Code: "tech", Label: "Technology"},
		{Code: "retail", Label: "Retail & Food"},
		{Code: "manufacturing", Label: "Manufacturing"},
		{Code: "healthcare", Label: "Healthcare"},
		{Code: "finance", Label: "Financial Services"},
	}
)
