package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

const (
	schemaName       = "grievance_decision"
	maxErrorBodySize = 512
)

// wireGrievance and wireDecision are the JSON shape the model is asked to return.
type wireGrievance struct {
	Category string `json:"category" jsonschema:"enum=no-water-supply,enum=pipeline-leakage,enum=water-quality,enum=billing-issue,enum=infrastructure-damage,enum=other" jsonschema_description:"The category of the grievance."`
	Location string `json:"location" jsonschema_description:"The city, village, or specific address mentioned by the user."`
	Summary  string `json:"summary" jsonschema_description:"A concise summary of the user's complaint."`
}

type wireDecision struct {
	Intent    string         `json:"intent" jsonschema:"enum=grievance-filing,enum=status-check,enum=general-query" jsonschema_description:"Classify the user's intent."`
	Grievance *wireGrievance `json:"grievance,omitempty" jsonschema_description:"Include this object ONLY if the intent is grievance-filing."`
	TicketID  string         `json:"ticketId,omitempty" jsonschema_description:"The grievance ID. Include this ONLY if the intent is status-check."`
	Response  string         `json:"response" jsonschema_description:"A polite, conversational response for the user. If filing a grievance, include the placeholder {{TICKET_ID}} for the ticket number."`
}

// decisionSchema reflects the wire struct into the schema sent as response_format.
func decisionSchema() (json.RawMessage, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	schema := reflector.Reflect(&wireDecision{})
	schema.Version = ""
	return json.Marshal(schema)
}

// RemoteOptions configures the OpenAI-compatible classifier.
type RemoteOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	Format  grievance.TicketFormat
}

// RemoteClassifier asks an OpenAI-compatible chat completion endpoint for a
// schema-constrained decision and treats the answer as untrusted input.
type RemoteClassifier struct {
	client       *resty.Client
	opts         RemoteOptions
	baseURL      string
	schema       json.RawMessage
	instructions string
	log          zerolog.Logger
}

// NewRemoteClassifier builds a classifier on top of client.
func NewRemoteClassifier(client *resty.Client, opts RemoteOptions, log zerolog.Logger) (*RemoteClassifier, error) {
	schema, err := decisionSchema()
	if err != nil {
		return nil, fmt.Errorf("build decision schema: %w", err)
	}
	return &RemoteClassifier{
		client:       client,
		opts:         opts,
		baseURL:      strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		schema:       schema,
		instructions: systemInstruction(opts.Format),
		log:          log.With().Str("component", "remote-classifier").Logger(),
	}, nil
}

// Classify implements classification.Classifier.
func (c *RemoteClassifier) Classify(ctx context.Context, message string, history []classification.HistoryEntry) (classification.Decision, error) {
	request := openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.instructions},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(message, history)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: c.schema,
			},
		},
	}

	var body openai.ChatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.opts.APIKey).
		SetBody(request).
		SetResult(&body).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return classification.Decision{}, classification.Failure(fmt.Errorf("classifier request: %w", err))
	}
	if resp.IsError() {
		return classification.Decision{}, classification.Failure(
			fmt.Errorf("classifier returned status %d: %s", resp.StatusCode(), truncate(resp.String(), maxErrorBodySize)))
	}
	if len(body.Choices) == 0 {
		return classification.Decision{}, classification.Failure(errors.New("classifier returned no choices"))
	}

	c.log.Debug().
		Str("model", body.Model).
		Int("prompt_tokens", body.Usage.PromptTokens).
		Int("completion_tokens", body.Usage.CompletionTokens).
		Msg("classification completed")

	return decodeDecision(body.Choices[0].Message.Content, c.opts.Format)
}

// decodeDecision parses model output strictly and checks it against the intent rules.
func decodeDecision(content string, format grievance.TicketFormat) (classification.Decision, error) {
	content = stripCodeFence(content)
	if content == "" {
		return classification.Decision{}, classification.Malformed("empty content")
	}

	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.DisallowUnknownFields()

	var wire wireDecision
	if err := decoder.Decode(&wire); err != nil {
		return classification.Decision{}, classification.Malformed("decode: %v", err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return classification.Decision{}, classification.Malformed("trailing data after decision")
	}

	// Enumerations are taken verbatim; Validate rejects anything outside them.
	decision := classification.Decision{
		Intent:    classification.Intent(wire.Intent),
		TicketID:  strings.ToUpper(strings.TrimSpace(wire.TicketID)),
		ReplyText: strings.TrimSpace(wire.Response),
	}
	if g := wire.Grievance; g != nil && (g.Category != "" || g.Location != "" || g.Summary != "") {
		decision.Grievance = &grievance.Draft{
			Category: grievance.Category(g.Category),
			Location: strings.TrimSpace(g.Location),
			Summary:  strings.TrimSpace(g.Summary),
		}
	}

	if err := decision.Validate(format); err != nil {
		return classification.Decision{}, err
	}
	return decision, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
