package responder

import "strings"

// template is a canned analysis answer with attached charts.
type template struct {
	name     string
	triggers []string
	text     string
	charts   func() []ChartData
}

func (t template) matches(lower string) bool {
	for _, trig := range t.triggers {
		if strings.Contains(lower, trig) {
			return true
		}
	}
	return false
}

// analysisTemplates are checked in order. charts builds fresh values on every
// call so replies never share maps.
func analysisTemplates() []template {
	return []template{
		{
			name:     "price",
			triggers: []string{"price chart", "price history", "price trend", "price prediction", "price analysis"},
			text: "Here is the simulated QNTM price trend for the first half of 2025. " +
				"The demo market shows steady accumulation with rising volume; figures are illustrative only.",
			charts: func() []ChartData {
				return []ChartData{{
					Type:     ChartLine,
					Title:    "QNTM price (USD)",
					XAxisKey: "month",
					YAxisKey: "price",
					Color:    "#8b5cf6",
					Data: []Point{
						{"month": "Jan", "price": 0.82},
						{"month": "Feb", "price": 0.91},
						{"month": "Mar", "price": 1.05},
						{"month": "Apr", "price": 0.98},
						{"month": "May", "price": 1.12},
						{"month": "Jun", "price": 1.24},
					},
				}}
			},
		},
		{
			name:     "tokenomics",
			triggers: []string{"token distribution", "tokenomics", "token allocation", "token supply"},
			text: "Quantum Coin's token allocation reserves the largest share for the ecosystem and validator rewards, " +
				"with presale, team and treasury tranches released on vesting schedules.",
			charts: func() []ChartData {
				return []ChartData{{
					Type:     ChartBar,
					Title:    "Token allocation (%)",
					XAxisKey: "bucket",
					YAxisKey: "share",
					Color:    "#6366f1",
					Data: []Point{
						{"bucket": "Ecosystem", "share": 30},
						{"bucket": "Validator rewards", "share": 25},
						{"bucket": "Presale", "share": 20},
						{"bucket": "Team", "share": 15},
						{"bucket": "Treasury", "share": 10},
					},
				}}
			},
		},
		{
			name:     "energy",
			triggers: []string{"energy comparison", "energy consumption", "compare energy", "energy usage"},
			text: "Quantum Coin uses about 0.01 kWh per transaction thanks to its hybrid DPoS/BFT consensus " +
				"and 101 rotating validators, orders of magnitude below proof-of-work networks.",
			charts: func() []ChartData {
				return []ChartData{{
					Type:     ChartArea,
					Title:    "Energy per transaction (kWh)",
					XAxisKey: "network",
					YAxisKey: "kwh",
					Color:    "#22c55e",
					Data: []Point{
						{"network": "Bitcoin", "kwh": 1173.0},
						{"network": "Ethereum", "kwh": 0.03},
						{"network": "Quantum Coin", "kwh": 0.01},
					},
				}}
			},
		},
	}
}
