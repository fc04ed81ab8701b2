package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-studio/models"
	"event-studio/utils"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// stockCoverURL is the default cover for auto-generated drafts when
// the model supplies no usable image references.
const stockCoverURL = "https://cdn.local/stock/event-cover.jpg"

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator produces event copy through the OpenAI chat API. The
// model is asked for plain JSON which is then picked apart with gjson,
// and every call goes through a circuit breaker so a degraded upstream
// fails fast instead of piling up requests.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	breaker *utils.CircuitBreaker
}

func NewOpenAIGenerator(cfg *Config) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: utils.NewCircuitBreaker("openai"),
	}
}

func (g *OpenAIGenerator) GenerateDescription(ctx context.Context, req *models.DescriptionRequest) (*models.GeneratedContent, error) {
	prompt := fmt.Sprintf(
		"Write marketing copy for an event.\nTitle: %s\nCategory: %s\nType: %s\nCapacity: %d\nLocation: %s\nKeywords: %s\n\n"+
			`Respond with JSON only: {"description": string (20-2000 characters), "seo_tags": [string], "hashtags": [string]}`,
		req.Title, req.Category, req.Type, req.Capacity, req.Address, strings.Join(req.Keywords, ", "),
	)

	text, err := g.complete(ctx, "You write engaging, accurate event descriptions.", prompt)
	if err != nil {
		return nil, err
	}

	body, err := jsonBody(text)
	if err != nil {
		return nil, err
	}

	content := &models.GeneratedContent{
		Description: gjson.Get(body, "description").String(),
		SEOTags:     stringList(gjson.Get(body, "seo_tags")),
		Hashtags:    stringList(gjson.Get(body, "hashtags")),
	}
	if content.Description == "" {
		return nil, errors.New("assist: model returned an empty description")
	}

	return content, nil
}

func (g *OpenAIGenerator) GetOptimizations(ctx context.Context, draft *models.EventDraft) (*models.OptimizationSuggestions, error) {
	prompt := fmt.Sprintf(
		"Suggest improvements for this event listing. Only include a field when you have a concretely better value.\n"+
			"Title: %s\nDescription: %s\nDate: %s\nCapacity: %d\n\n"+
			`Respond with JSON only, omitting fields you have no suggestion for: {"title": string, "description": string, "start_at": RFC3339 string, "capacity": int}`,
		draft.Title, draft.Description, draft.StartAt.Format(time.RFC3339), draft.Capacity.MaxAttendees,
	)

	text, err := g.complete(ctx, "You optimize event listings for attendance.", prompt)
	if err != nil {
		return nil, err
	}

	body, err := jsonBody(text)
	if err != nil {
		return nil, err
	}

	return parseOptimizations(body), nil
}

// parseOptimizations maps the model reply onto the suggestion struct.
// A field left out stays nil, and so does an explicit JSON null: models
// asked to omit fields frequently emit nulls instead, and a null must
// never turn into an empty-string or zero suggestion that would wipe
// the draft value on apply.
func parseOptimizations(body string) *models.OptimizationSuggestions {
	sugg := &models.OptimizationSuggestions{}
	if r, ok := suppliedField(body, "title"); ok {
		v := r.String()
		sugg.Title = &v
	}
	if r, ok := suppliedField(body, "description"); ok {
		v := r.String()
		sugg.Description = &v
	}
	if r, ok := suppliedField(body, "start_at"); ok {
		if t, err := time.Parse(time.RFC3339, r.String()); err == nil {
			sugg.StartAt = &t
		}
	}
	if r, ok := suppliedField(body, "capacity"); ok {
		v := int(r.Int())
		sugg.Capacity = &v
	}

	return sugg
}

func suppliedField(body, path string) (gjson.Result, bool) {
	r := gjson.Get(body, path)
	return r, r.Exists() && r.Type != gjson.Null
}

func (g *OpenAIGenerator) AutoGenerateEvent(ctx context.Context, seed *models.EventSeed) (*models.EventDraft, error) {
	prompt := fmt.Sprintf(
		"Draft a complete %s event named %q for roughly %d attendees.\n\n"+
			`Respond with JSON only: {"title": string, "description": string, "category": string, "subcategory": string, `+
			`"start_at": RFC3339 string at least 48 hours from now, "address": string, "latitude": number, "longitude": number, `+
			`"price_amount": number, "currency": string, "capacity": int, "public": bool, "seo_tags": [string], "hashtags": [string], `+
			`"images": [string] (1-3 royalty-free stock photo URLs matching the event theme), `+
			`"ticket_types": [{"name": string, "price": number, "quantity": int}], "products": [{"name": string, "price": number, "stock": int}]}`,
		seed.Type, seed.Title, seed.ExpectedAttendance,
	)

	text, err := g.complete(ctx, "You plan realistic, well-structured events.", prompt)
	if err != nil {
		return nil, err
	}

	body, err := jsonBody(text)
	if err != nil {
		return nil, err
	}

	return parseGeneratedDraft(body, seed), nil
}

// parseGeneratedDraft assembles a full draft from the model reply,
// falling back to seed values where the reply is unusable.
func parseGeneratedDraft(body string, seed *models.EventSeed) *models.EventDraft {
	draft := models.NewEventDraft("")
	draft.Type = seed.Type
	draft.Title = gjson.Get(body, "title").String()
	if draft.Title == "" {
		draft.Title = seed.Title
	}
	draft.Description = gjson.Get(body, "description").String()
	draft.Category = gjson.Get(body, "category").String()
	draft.Subcategory = gjson.Get(body, "subcategory").String()
	draft.Location = models.Location{
		Address:   gjson.Get(body, "address").String(),
		Latitude:  gjson.Get(body, "latitude").Float(),
		Longitude: gjson.Get(body, "longitude").Float(),
	}
	draft.Price = models.Price{
		Amount:   decimal.NewFromFloat(gjson.Get(body, "price_amount").Float()),
		Currency: gjson.Get(body, "currency").String(),
	}
	draft.Capacity.MaxAttendees = int(gjson.Get(body, "capacity").Int())
	if draft.Capacity.MaxAttendees == 0 {
		draft.Capacity.MaxAttendees = seed.ExpectedAttendance
	}
	draft.Public = gjson.Get(body, "public").Bool()
	draft.SEOTags = stringList(gjson.Get(body, "seo_tags"))
	draft.Hashtags = stringList(gjson.Get(body, "hashtags"))

	// A bootstrapped draft has to be complete enough to publish, which
	// needs at least one cover image. Fall back to the stock cover when
	// the model supplies none.
	draft.Images = stringList(gjson.Get(body, "images"))
	if len(draft.Images) == 0 {
		draft.Images = []string{stockCoverURL}
	}

	if t, err := time.Parse(time.RFC3339, gjson.Get(body, "start_at").String()); err == nil {
		draft.StartAt = t
	} else {
		draft.StartAt = time.Now().AddDate(0, 0, 7)
	}

	for _, t := range gjson.Get(body, "ticket_types").Array() {
		draft.TicketTypes = append(draft.TicketTypes, models.TicketType{
			ID:       uuid.NewString(),
			Name:     t.Get("name").String(),
			Price:    decimal.NewFromFloat(t.Get("price").Float()),
			Quantity: int(t.Get("quantity").Int()),
		})
	}
	for _, p := range gjson.Get(body, "products").Array() {
		draft.Products = append(draft.Products, models.Product{
			ID:    uuid.NewString(),
			Name:  p.Get("name").String(),
			Price: decimal.NewFromFloat(p.Get("price").Float()),
			Stock: int(p.Get("stock").Int()),
		})
	}

	return draft
}

func (g *OpenAIGenerator) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.breaker.Execute(ctx, func() (any, error) {
		return g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(g.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("assist: completion failed: %w", err)
	}

	resp := result.(*openai.ChatCompletion)
	if len(resp.Choices) == 0 {
		return "", errors.New("assist: model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// jsonBody strips markdown code fences the model sometimes wraps its
// JSON in and validates the remainder.
func jsonBody(text string) (string, error) {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		body = strings.TrimSpace(body)
	}

	if !gjson.Valid(body) {
		return "", errors.New("assist: model response is not valid JSON")
	}

	return body, nil
}

func stringList(result gjson.Result) []string {
	items := result.Array()
	if len(items) == 0 {
		return nil
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if s := item.String(); s != "" {
			list = append(list, s)
		}
	}
	return list
}
