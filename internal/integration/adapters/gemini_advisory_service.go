// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
)

// GeminiAdvisoryService implements the adapter.AdvisoryService using Google
// Gemini. It reviews stored snapshots only; calculation results are final
// before this service ever sees them.
type GeminiAdvisoryService struct {
	apiKey    string
	modelName string
}

// NewGeminiAdvisoryService creates a new Gemini advisory service instance.
func NewGeminiAdvisoryService(apiKey string) *GeminiAdvisoryService {
	return &GeminiAdvisoryService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiAdvisoryService) IsAvailable() bool {
	return s.apiKey != ""
}

// Review analyzes a stored snapshot and returns advisory commentary.
func (s *GeminiAdvisoryService) Review(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) (*adapter.AdvisoryResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(snapshot)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	result, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiAdvisoryService) buildPrompt(snapshot *entity.TaxAnalysisSnapshot) string {
	var sb strings.Builder

	sb.WriteString(`You are a tax compliance analyst. Review the following tax analysis summary and produce a short risk commentary for the account owner.

RULES:
- Do not recompute or contradict any of the numbers; they are final.
- Comment on risk signals only: unusual deduction-to-income ratio, reliance on a fallback rate, zero taxable income with non-zero revenue, and similar patterns.
- Keep the commentary under 120 words, plain prose, no lists.
- Risk flags must be short machine-readable kebab-case strings, e.g. "high-deduction-ratio", "fallback-rate-used". Return an empty array when nothing stands out.

TAX ANALYSIS SUMMARY:
`)

	fmt.Fprintf(&sb, "- Jurisdiction: %s\n", snapshot.Jurisdiction)
	fmt.Fprintf(&sb, "- Tax year: %d\n", snapshot.TaxYear)
	fmt.Fprintf(&sb, "- Total income: %s\n", snapshot.TotalIncome.StringFixed(2))
	fmt.Fprintf(&sb, "- Total approved deductions: %s\n", snapshot.TotalDeductions.StringFixed(2))
	fmt.Fprintf(&sb, "- Taxable income: %s\n", snapshot.TaxableIncome.StringFixed(2))
	fmt.Fprintf(&sb, "- Estimated tax: %s\n", snapshot.EstimatedTax.StringFixed(2))
	fmt.Fprintf(&sb, "- Flat fallback rate used: %t\n", snapshot.UsedFallbackRate)

	sb.WriteString(`
Respond with a single JSON object:
{
  "commentary": "string",
  "risk_flags": ["kebab-case-flag", ...]
}

RESPONSE FORMAT: Return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiAdvisory represents the raw response from Gemini.
type geminiAdvisory struct {
	Commentary string   `json:"commentary"`
	RiskFlags  []string `json:"risk_flags"`
}

// parseResponse parses the Gemini response into an AdvisoryResult.
func (s *GeminiAdvisoryService) parseResponse(resp *genai.GenerateContentResponse) (*adapter.AdvisoryResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var advisory geminiAdvisory
	if err := json.Unmarshal([]byte(textContent), &advisory); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	if advisory.Commentary == "" {
		return nil, fmt.Errorf("advisory response has no commentary")
	}

	return &adapter.AdvisoryResult{
		Commentary: advisory.Commentary,
		RiskFlags:  advisory.RiskFlags,
		Model:      s.modelName,
	}, nil
}

// Ensure implementation satisfies the interface.
var _ adapter.AdvisoryService = (*GeminiAdvisoryService)(nil)
