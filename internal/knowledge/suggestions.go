package knowledge

// Suggestion is a one-tap query offered to new conversations.
type Suggestion struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

var suggestions = []Suggestion{
	{Text: "What is Quantum Coin?", Icon: "info"},
	{Text: "How is Quantum Coin different from other cryptocurrencies?", Icon: "bot"},
	{Text: "What are the node requirements for Quantum Coin?", Icon: "brain"},
	{Text: "Show me the Quantum Coin price chart", Icon: "chart"},
	{Text: "What is the token distribution of Quantum Coin?", Icon: "chart"},
	{Text: "What strategic partnerships does Quantum Coin have?", Icon: "info"},
}

// SuggestedQueries returns a copy of the canned suggestions.
func SuggestedQueries() []Suggestion {
	return append([]Suggestion(nil), suggestions...)
}
