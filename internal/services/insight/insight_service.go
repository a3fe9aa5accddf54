package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Generator is the upstream text-generation call; satisfied by *genai.Client.
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

const summaryPrompt = `Actúa como un analista experto. Resume y da una recomendación estratégica breve (max 50 palabras) basada en: "%s"`

const assessmentPrompt = `Actúa como un analista de riesgos. Evalúa el siguiente contexto y responde SOLO con un objeto JSON con las claves "riesgo" (Bajo/Medio/Alto), "conclusion" (string), "pros" (array de strings) y "contras" (array de strings). Contexto: "%s"`

const fallbackSummaryText = "No se pudo generar el análisis."

// InsightService forwards report context to the model and always returns a
// tagged result: OriginModel for a real response, OriginFallback for the
// canned one. It never fails the request over an upstream problem.
type InsightService struct {
	client  Generator
	model   string
	timeout time.Duration
}

func NewInsightService(client Generator, model string, timeout time.Duration) *InsightService {
	return &InsightService{client: client, model: model, timeout: timeout}
}

// Summarize returns a short free-text recommendation for the given context.
func (s *InsightService) Summarize(ctx context.Context, keyData string) *Summary {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.client.GenerateContent(ctx, s.model, fmt.Sprintf(summaryPrompt, keyData))
	if err != nil {
		s.logUpstreamFailure(ctx, "summary", err)
		return &Summary{Origin: OriginFallback, Summary: fallbackSummaryText}
	}

	return &Summary{Origin: OriginModel, Summary: strings.TrimSpace(text)}
}

// Assess returns the structured risk variant. Any call or parse failure
// degrades to the canned assessment.
func (s *InsightService) Assess(ctx context.Context, keyData string) *RiskAssessment {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.client.GenerateContent(ctx, s.model, fmt.Sprintf(assessmentPrompt, keyData))
	if err != nil {
		s.logUpstreamFailure(ctx, "assessment", err)
		return fallbackAssessment()
	}

	var assessment RiskAssessment
	if err := sonic.Unmarshal([]byte(stripCodeFence(text)), &assessment); err != nil {
		slog.WarnContext(ctx, "Model returned unparseable assessment, using fallback", slog.Any("error", err))
		return fallbackAssessment()
	}
	if assessment.Risk == "" || assessment.Conclusion == "" {
		slog.WarnContext(ctx, "Model returned incomplete assessment, using fallback")
		return fallbackAssessment()
	}

	assessment.Origin = OriginModel
	return &assessment
}

func (s *InsightService) logUpstreamFailure(ctx context.Context, kind string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		slog.WarnContext(ctx, "AI upstream timed out, using fallback", slog.String("kind", kind), slog.Any("error", err))
		return
	}
	slog.WarnContext(ctx, "AI upstream failed, using fallback", slog.String("kind", kind), slog.Any("error", err))
}

func fallbackAssessment() *RiskAssessment {
	return &RiskAssessment{
		Origin:     OriginFallback,
		Risk:       "Medio",
		Conclusion: "No fue posible completar el análisis automático. Revise el contexto del reporte manualmente.",
		Pros:       []string{"Información base disponible", "Historial del cliente registrado"},
		Cons:       []string{"Análisis automático no disponible", "Se requiere revisión manual"},
	}
}

// stripCodeFence removes a ```json ... ``` wrapper some models add around
// JSON-only answers.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
