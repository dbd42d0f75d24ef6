// Package report produces operational situation reports for a crossing
// point using the Gemini generative language API. Failures degrade to
// fixed placeholder text so the dashboard never surfaces transport errors.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hako/durafmt"
)

const (
	endpointBase = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.5-flash"

	// MissingKeyText is returned when no API key is configured
	MissingKeyText = "API Key is missing. Please check your configuration to enable AI reports."
	// ServiceErrorText is returned when the upstream call fails
	ServiceErrorText = "Failed to generate AI report due to a service error."
	// NoAnalysisText is returned when the upstream reply carries no text
	NoAnalysisText = "No analysis available."
)

// SituationVehicle is one high-risk vehicle line of the report input
type SituationVehicle struct {
	Plate   string
	Class   string
	Subtype string
	Score   float64
}

// SituationAlert is one recent alert line of the report input
type SituationAlert struct {
	Severity string
	Title    string
	Message  string
}

// Situation is the crossing point state a report is written about
type Situation struct {
	CrossingPointName string
	At                time.Time

	Waiting   int
	InControl int
	Cleared   int
	AvgWait   time.Duration
	HighRisk  []SituationVehicle
	Alerts    []SituationAlert
}

// Generator writes situation reports by calling the Gemini API
type Generator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	log      *log.Logger
}

// NewGenerator returns a Generator using the given API key. An empty key is
// allowed; reports then degrade to the missing-key placeholder.
func NewGenerator(apiKey string, logger *log.Logger) *Generator {
	return &Generator{
		apiKey:   apiKey,
		model:    defaultModel,
		endpoint: endpointBase,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      logger,
	}
}

// WithModel overrides the model used for generation
func (g *Generator) WithModel(model string) *Generator {
	g.model = model
	return g
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Report produces a SITREP for the given situation. It never returns an
// error; any failure yields one of the placeholder texts.
func (g *Generator) Report(ctx context.Context, s Situation) string {
	if g.apiKey == "" {
		return MissingKeyText
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(s)}}}},
	})
	if err != nil {
		g.log.Println("report: encoding request:", err)
		return ServiceErrorText
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		g.endpoint, g.model, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		g.log.Println("report: building request:", err)
		return ServiceErrorText
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := g.client.Do(req)
	if err != nil {
		g.log.Println("report: calling API:", err)
		return ServiceErrorText
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		g.log.Println("report: API returned status", response.Status)
		return ServiceErrorText
	}

	var decoded generateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		g.log.Println("report: decoding response:", err)
		return ServiceErrorText
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return NoAnalysisText
	}
	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return NoAnalysisText
	}
	return text
}

func buildPrompt(s Situation) string {
	var b strings.Builder
	b.WriteString("You are a Border Security Operations Analyst. Generate a concise tactical situation report (SITREP) for the commander of the following border crossing point.\n\n")
	fmt.Fprintf(&b, "Location: %s\n", s.CrossingPointName)
	fmt.Fprintf(&b, "Time: %s\n\n", s.At.Format(time.RFC1123))

	b.WriteString("Current Statistics:\n")
	fmt.Fprintf(&b, "- Vehicles waiting: %d\n", s.Waiting)
	fmt.Fprintf(&b, "- Vehicles in control: %d\n", s.InControl)
	fmt.Fprintf(&b, "- Vehicles cleared: %d\n", s.Cleared)
	fmt.Fprintf(&b, "- Average wait time: %s\n\n", durafmt.Parse(s.AvgWait.Round(time.Second)).LimitFirstN(2))

	b.WriteString("High-Risk Vehicles Present:\n")
	if len(s.HighRisk) == 0 {
		b.WriteString("- None\n")
	}
	for _, v := range s.HighRisk {
		fmt.Fprintf(&b, "- %s (%s, %s), risk score %.0f\n", v.Plate, v.Class, v.Subtype, v.Score)
	}

	b.WriteString("\nRecent Security Alerts:\n")
	if len(s.Alerts) == 0 {
		b.WriteString("- None\n")
	}
	for _, a := range s.Alerts {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", a.Severity, a.Title, a.Message)
	}

	b.WriteString("\nStructure the report with these sections: 1. Overall Threat Assessment (one sentence), 2. Key Concerns, 3. Recommended Actions. Keep it under 150 words. Use a professional military/law-enforcement tone.")
	return b.String()
}
