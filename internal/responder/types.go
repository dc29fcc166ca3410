package responder

import (
	"context"
	"errors"
)

var (
	// ErrEmptyInput is returned for blank input. Callers are expected to
	// filter blank input before calling Respond.
	ErrEmptyInput = errors.New("responder: empty input")
	// ErrServiceUnavailable means the generation collaborator could not be
	// reached or answered with a non-success status. It is transient and the
	// caller may retry.
	ErrServiceUnavailable = errors.New("responder: generation service unavailable")
)

// Source tells where a reply came from.
type Source string

const (
	SourceAnalysis  Source = "analysis"
	SourceKnowledge Source = "knowledge"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartArea ChartType = "area"
)

// Point is one row of chart data keyed by axis name.
type Point map[string]any

// ChartData describes a chart attached to an assistant reply.
type ChartData struct {
	Type     ChartType `json:"type"`
	Title    string    `json:"title"`
	Data     []Point   `json:"data"`
	XAxisKey string    `json:"xAxisKey"`
	YAxisKey string    `json:"yAxisKey"`
	Color    string    `json:"color,omitempty"`
}

// Reply is a successful response.
type Reply struct {
	Text   string      `json:"text"`
	Charts []ChartData `json:"charts,omitempty"`
	Source Source      `json:"source"`
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// NeuralOutput carries the collaborator's self-reported confidence in [0,1].
type NeuralOutput struct {
	Confidence float64 `json:"confidence"`
}

// Query is the request sent to a Generator.
type Query struct {
	Query  string `json:"query"`
	Neural bool   `json:"neural,omitempty"`
}

// Generation is the collaborator's answer.
type Generation struct {
	Status       Status        `json:"status"`
	Text         string        `json:"text,omitempty"`
	Message      string        `json:"message,omitempty"`
	NeuralOutput *NeuralOutput `json:"neuralOutput,omitempty"`
}

// Generator is the external text generation boundary.
type Generator interface {
	Generate(ctx context.Context, q Query) (Generation, error)
}
