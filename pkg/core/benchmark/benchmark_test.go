package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownKey(t *testing.T) {
	p := Lookup("PK", "tech")

	assert.Equal(t, "PK", p.Market)
	assert.Equal(t, "Pakistan", p.MarketName)
	assert.Equal(t, "PKR", p.Currency)
	assert.Equal(t, "tech", p.Industry)
	assert.Equal(t, "Technology", p.IndustryName)
	assert.Equal(t, 18.0, p.AvgGrowth)
	assert.Equal(t, 35.0, p.ExcellentGrowth)
	assert.Equal(t, 11.2, p.AvgInflation)
	assert.Equal(t, 25.0, p.PeIRR)
	assert.Equal(t, 3.0, p.PeMOIC)
}

func TestLookup_Fallbacks(t *testing.T) {
	tests := []struct {
		name         string
		market       string
		industry     string
		wantMarket   string
		wantIndustry string
	}{
		{"unknown market", "FR", "tech", "US", "tech"},
		{"unknown industry", "UK", "mining", "UK", "real-estate"},
		{"both unknown", "", "", "US", "real-estate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Lookup(tt.market, tt.industry)
			assert.Equal(t, tt.wantMarket, p.Market)
			assert.Equal(t, tt.wantIndustry, p.Industry)
		})
	}
}

func TestLookup_UnknownIndustryKeepsRequestedLabel(t *testing.T) {
	p := Lookup("US", "mining")
	assert.Equal(t, "mining", p.IndustryName)
	assert.Equal(t, 4.2, p.AvgGrowth)
}

func TestBuiltinTable_GrowthOrdering(t *testing.T) {
	for code, m := range builtinMarkets {
		for ind, d := range m.Industries {
			assert.GreaterOrEqual(t, d.AvgGrowth, 0.0, "%s/%s", code, ind)
			assert.GreaterOrEqual(t, d.GoodGrowth, d.AvgGrowth, "%s/%s", code, ind)
			assert.GreaterOrEqual(t, d.ExcellentGrowth, d.GoodGrowth, "%s/%s", code, ind)
		}
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	p := Lookup("US", "tech")
	p.AvgGrowth = 99

	assert.Equal(t, 12.5, Lookup("US", "tech").AvgGrowth)
}

func TestMarkets_DisplayOrder(t *testing.T) {
	codes := []string{}
	for _, o := range Default().Markets() {
		codes = append(codes, o.Code)
	}
	assert.Equal(t, []string{"US", "PK", "UK", "AE"}, codes)
	assert.Len(t, Industries(), 6)
}

func TestParseOverrides(t *testing.T) {
	doc := `
	{
	  # bump US inflation
	  US: {
	    avgInflation: 3.4
	    industries: {
	      tech: { avgGrowth: 13 }
	    }
	  }
	  DE: {
	    name: Germany
	    currency: EUR
	    avgInflation: 2.2
	    peIRR: 17
	    peMOIC: 2.2
	    industries: {
	      real-estate: { avgGrowth: 3, goodGrowth: 5, excellentGrowth: 7, avgMultiple: 14, goodMultiple: 17, avgMargin: 22, context: "Steady." }
	    }
	  }
	}`

	s, err := ParseOverrides([]byte(doc))
	require.NoError(t, err)

	us := s.Lookup("US", "tech")
	assert.Equal(t, 3.4, us.AvgInflation)
	assert.Equal(t, 13.0, us.AvgGrowth)
	assert.Equal(t, 18.0, us.GoodGrowth)

	de := s.Lookup("DE", "tech")
	assert.Equal(t, "Germany", de.MarketName)
	assert.Equal(t, "real-estate", de.Industry)
	assert.Equal(t, "EUR", s.Currency("DE"))

	// built-in table is untouched
	assert.Equal(t, 2.8, Lookup("US", "tech").AvgInflation)
}

func TestParseOverrides_RejectsBrokenOrdering(t *testing.T) {
	_, err := ParseOverrides([]byte(`{ US: { industries: { tech: { goodGrowth: 1 } } } }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goodGrowth")
}

func TestParseOverrides_NewMarketNeedsDefaultIndustry(t *testing.T) {
	_, err := ParseOverrides([]byte(`{ FR: { name: "France", industries: { tech: { avgGrowth: 1, goodGrowth: 2, excellentGrowth: 3 } } } }`))
	require.Error(t, err)
}

func TestParseOverrides_RejectsTotalInflation(t *testing.T) {
	_, err := ParseOverrides([]byte(`{ US: { avgInflation: -100 } }`))
	assert.Error(t, err)
}
