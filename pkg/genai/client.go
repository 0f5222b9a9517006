// Package genai wraps the Gemini API for the two AI collaborators of the
// freight flow: route-order optimization and the logistics assistant chat.
//
// Calls are stateless; conversation context is re-supplied on every
// request. Failures never propagate past the caller boundary as anything
// other than an error the caller degrades on.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Client wraps the Gemini API client
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// OptimizeJob is the minimal job view sent to the optimizer.
type OptimizeJob struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Weight  string `json:"weight"`
}

// OptimizeOrder asks the model for a suggested visiting order and returns
// the job IDs it proposes. The caller is responsible for reconciling the
// returned IDs against the authoritative job set and for falling back to
// the original order on error.
func (c *Client) OptimizeOrder(ctx context.Context, jobs []OptimizeJob) ([]string, error) {
	payload, err := json.Marshal(jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jobs: %w", err)
	}

	prompt := fmt.Sprintf(`You are a logistics coordinator. Optimize the delivery route for these jobs.
Consider heavy items might need to be unloaded first if they block others, or last if they are deep in the truck.
Assume simple TSP (Travelling Salesman Problem) for distance.

Jobs: %s

Return ONLY a JSON array containing the job IDs in the optimized order.`, payload)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("route optimization request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty optimization response")
	}

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse optimization response: %w", err)
	}
	return ids, nil
}

// AskContext carries the current session state the assistant answers from.
type AskContext struct {
	RouteActive    bool
	NextStop       string
	PendingCargo   []string
	DeliveredCargo []string
}

// Ask sends a user message to the logistics assistant and returns its
// reply. The full context is rebuilt per call; nothing is persisted.
func (c *Client) Ask(ctx context.Context, message string, state AskContext) (string, error) {
	status := "Aguardando novas ordens"
	if state.RouteActive {
		status = "Em trânsito para entrega"
	}

	systemInstruction := fmt.Sprintf(`Você é a "MudançaIA", uma assistente especializada em logística, carretos e mudanças residenciais.

Contexto Atual do Caminhão:
- Status: %s
- Próximo Destino: %s
- Cargas Pendentes: %s
- Cargas Entregues: %s

Seu objetivo é ajudar clientes e motoristas.
Para clientes: Dê dicas de embalagem, segurança da carga e estimativas de tempo.
Para motoristas: Dê dicas de rota, acomodação de carga no baú e segurança.
Seja prático e direto.`,
		status,
		state.NextStop,
		orNone(state.PendingCargo),
		orNone(state.DeliveredCargo),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		MaxOutputTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty assistant response")
	}
	return text, nil
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "Nenhuma"
	}
	return strings.Join(items, ", ")
}
