package docs

import (
	"time"

	"github.com/google/uuid"
)

type seedDoc struct {
	title    string
	content  string
	category string
}

// The reference library every deployment starts with.
var seedDocs = []seedDoc{
	{
		title:    "Market Volatility Analysis",
		content:  "Market volatility refers to the rate at which stock prices increase or decrease. High volatility indicates larger price swings and higher risk. The VIX index measures market volatility and is often called the 'fear index'. During periods of high volatility, investors should consider diversification and risk management strategies.",
		category: "market_analysis",
	},
	{
		title:    "Technical Indicators Guide",
		content:  "Moving averages smooth out price data to identify trends. The 50-day and 200-day moving averages are commonly used. When the 50-day crosses above the 200-day (golden cross), it's a bullish signal. Volume indicates trading activity and confirms price movements. High volume on price increases suggests strong buying pressure.",
		category: "technical_analysis",
	},
	{
		title:    "Risk Management Principles",
		content:  "Effective risk management involves portfolio diversification, position sizing, and stop-loss orders. Never risk more than 2% of your portfolio on a single trade. Diversification across sectors and asset classes reduces overall risk. Regular portfolio rebalancing maintains target allocations.",
		category: "risk_management",
	},
	{
		title:    "Real-Time Trading Strategies",
		content:  "Real-time data enables algorithmic trading and immediate response to market events. High-frequency trading relies on sub-second execution. Event-driven strategies react to news and earnings announcements. Momentum strategies capitalize on trending stocks with strong volume.",
		category: "trading_strategies",
	},
	{
		title:    "Anomaly Detection in Markets",
		content:  "Unusual price movements can signal opportunities or risks. Spike in volume without price change may indicate accumulation. Sudden gaps often occur after earnings or major news. Price divergence from moving averages suggests potential reversals. Machine learning models can identify complex patterns in real-time data streams.",
		category: "anomaly_detection",
	},
}

// SeedDefaults installs the built-in reference documents, skipping titles the
// store already holds (a persistent store reloads them on start). Seeds stay
// in memory only; they are not written to the persistence file.
func (s *Store) SeedDefaults() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	have := make(map[string]struct{}, len(s.docs))
	for _, doc := range s.docs {
		have[doc.Title] = struct{}{}
	}
	added := 0
	for _, seed := range seedDocs {
		if _, ok := have[seed.title]; ok {
			continue
		}
		s.docs = append(s.docs, Document{
			ID:        uuid.NewString(),
			Title:     seed.title,
			Content:   seed.content,
			Category:  seed.category,
			Timestamp: time.Now().UTC(),
		})
		added++
	}
	return added
}
