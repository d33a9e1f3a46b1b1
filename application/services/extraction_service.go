package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nasab-backend/domain/family"
	pkgerrors "nasab-backend/pkg/errors"
)

// extractionPromptTemplate asks Claude to turn a free-form family
// description into Person records whose relationship arrays are mutually
// consistent. User text is wrapped in an XML tag to contain injection.
const extractionPromptTemplate = `Analyze the following description of a family and extract a list of people with their relationships and personal details.

Rules:
1. Generate unique ids (e.g. "p1", "p2").
2. Infer gender where possible; default to "male".
3. Link "parentIds", "childrenIds" and "partnerIds" consistently with each other based on the text.
4. Extract nationalId, nationality, phoneNumber, location and jobHistory when mentioned.
5. Use YYYY-MM-DD dates; leave dates blank when unknown.
6. Set "isDeceased" to true when the text says the person died or gives a death date.

Return a JSON array of objects with fields: id, name, gender, birthDate, deathDate, isDeceased, nationalId, nationality, phoneNumber, location, jobHistory, parentIds, childrenIds, partnerIds. Return [] if no people are found.

<description>%s</description>

Extract the people as a JSON array:`

// extractedPerson is the raw JSON shape returned by Claude.
type extractedPerson struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	BirthDate   string   `json:"birthDate"`
	DeathDate   string   `json:"deathDate"`
	IsDeceased  bool     `json:"isDeceased"`
	NationalID  string   `json:"nationalId"`
	Nationality string   `json:"nationality"`
	PhoneNumber string   `json:"phoneNumber"`
	Location    string   `json:"location"`
	JobHistory  string   `json:"jobHistory"`
	ParentIDs   []string `json:"parentIds"`
	ChildrenIDs []string `json:"childrenIds"`
	PartnerIDs  []string `json:"partnerIds"`
}

// ExtractionService converts natural-language family descriptions into
// Person records via the Claude API. The records it produces are meant for
// the batch ingest path; it applies the same structural rules as any other
// input and no semantic plausibility checks.
type ExtractionService struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewExtractionService creates an extraction service backed by the Claude API.
func NewExtractionService(apiKey, model string, logger *zap.Logger) *ExtractionService {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &ExtractionService{
		client: &c,
		model:  model,
		logger: logger,
	}
}

// Extract parses the description into Person records.
func (s *ExtractionService) Extract(ctx context.Context, text string) ([]*family.Person, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.NewValidationError("description text cannot be empty")
	}

	prompt := fmt.Sprintf(extractionPromptTemplate, escapeXML(text))

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
		System: []anthropic.TextBlockParam{
			{Text: "You are a precise genealogy extraction system. Output only valid JSON."},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("claude", err)
	}

	var responseText string
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			responseText = resp.Content[i].Text
			break
		}
	}
	if responseText == "" {
		return nil, pkgerrors.NewExternalError("claude", fmt.Errorf("empty response"))
	}

	people, err := parseExtractedPeople(responseText)
	if err != nil {
		return nil, err
	}

	s.logger.Info("extracted people from description", zap.Int("count", len(people)))
	return people, nil
}

// parseExtractedPeople decodes the model output into domain records,
// repairing the omissions a generative extractor tends to make.
func parseExtractedPeople(responseText string) ([]*family.Person, error) {
	raw := strings.TrimSpace(responseText)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var extracted []extractedPerson
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, pkgerrors.NewValidationError("extraction response is not a valid person array").WithCause(err)
	}

	people := make([]*family.Person, 0, len(extracted))
	for i := range extracted {
		e := &extracted[i]
		if e.Name == "" {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		gender := family.Gender(e.Gender)
		if !gender.IsValid() {
			gender = family.GenderMale
		}
		people = append(people, &family.Person{
			ID:          e.ID,
			Name:        e.Name,
			Gender:      gender,
			BirthDate:   e.BirthDate,
			DeathDate:   e.DeathDate,
			IsDeceased:  e.IsDeceased || e.DeathDate != "",
			NationalID:  e.NationalID,
			Nationality: e.Nationality,
			PhoneNumber: e.PhoneNumber,
			Location:    e.Location,
			JobHistory:  e.JobHistory,
			ParentIDs:   e.ParentIDs,
			ChildrenIDs: e.ChildrenIDs,
			PartnerIDs:  e.PartnerIDs,
		})
	}
	return people, nil
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
