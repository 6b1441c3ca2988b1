// Package insight answers financial questions over the knowledge base plus
// the live market state, optionally backed by an LLM.
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"finstream-go/internal/docs"
	"finstream-go/internal/market"
)

const systemPrompt = "You are a financial analyst assistant with access to real-time market data and financial knowledge. Provide accurate, helpful analysis based on the provided context and data."

const fallbackAnswer = "LLM integration not available. Based on the available documents, check the market analysis and technical indicators sections."

// How much live state is folded into the prompt context.
const (
	contextAggregates = 5
	contextAlerts     = 5
	contextSources    = 3
)

// MarketReader is the slice of the stream engine the advisor consumes.
type MarketReader interface {
	Aggregates() map[string]market.Aggregate
	Alerts(limit int) []market.Alert
}

// DocumentReader exposes the knowledge base.
type DocumentReader interface {
	All() []docs.Document
}

// Answer is the advisor's reply to one question.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Advisor builds a context string from documents and live market data and
// hands it to the configured LLM backend. Without an API key it degrades to a
// canned answer so the endpoint stays serviceable.
type Advisor struct {
	docs   DocumentReader
	market MarketReader
	client *llmClient
	log    zerolog.Logger
}

// Config carries the LLM backend parameters. An empty APIKey disables the
// backend entirely.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// NewAdvisor wires the advisor to its document and market sources.
func NewAdvisor(d DocumentReader, m MarketReader, cfg Config, log zerolog.Logger) *Advisor {
	a := &Advisor{docs: d, market: m, log: log}
	if cfg.APIKey != "" && cfg.BaseURL != "" {
		a.client = newLLMClient(cfg.BaseURL, cfg.Model, cfg.APIKey, cfg.Timeout)
	}
	return a
}

// Available reports whether an LLM backend is configured.
func (a *Advisor) Available() bool { return a.client != nil }

// Ask answers one question. The fallback path never fails; only a configured
// backend can return an error.
func (a *Advisor) Ask(ctx context.Context, question string) (Answer, error) {
	library := a.docs.All()

	if !a.Available() {
		return Answer{Answer: fallbackAnswer, Sources: titles(library, 2)}, nil
	}

	prompt := fmt.Sprintf("Context:\n%s\n%s\n\nQuestion: %s\n\nProvide a concise, helpful answer based on the context and real-time data.",
		documentContext(library), a.liveContext(), question)

	reply, err := a.client.complete(ctx, systemPrompt, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("answer question: %w", err)
	}
	return Answer{Answer: reply, Sources: titles(library, contextSources)}, nil
}

func documentContext(library []docs.Document) string {
	parts := make([]string, 0, len(library))
	for _, doc := range library {
		parts = append(parts, fmt.Sprintf("Document: %s\n%s", doc.Title, doc.Content))
	}
	return strings.Join(parts, "\n\n")
}

// liveContext renders the top aggregates and recent alerts the way a human
// analyst would skim them.
func (a *Advisor) liveContext() string {
	var b strings.Builder
	b.WriteString("\n\nCurrent Market Data:\n")

	aggs := a.market.Aggregates()
	symbols := make([]string, 0, len(aggs))
	for sym := range aggs {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	if len(symbols) > contextAggregates {
		symbols = symbols[:contextAggregates]
	}
	for _, sym := range symbols {
		agg := aggs[sym]
		fmt.Fprintf(&b, "%s: $%.2f (Avg: $%.2f)\n", sym, agg.Current, agg.Avg)
	}

	if alerts := a.market.Alerts(contextAlerts); len(alerts) > 0 {
		b.WriteString("\nRecent Alerts:\n")
		for _, alert := range alerts {
			fmt.Fprintf(&b, "- %s\n", alert.Message)
		}
	}
	return b.String()
}

func titles(library []docs.Document, n int) []string {
	if n > len(library) {
		n = len(library)
	}
	out := make([]string, 0, n)
	for _, doc := range library[:n] {
		out = append(out, doc.Title)
	}
	return out
}
