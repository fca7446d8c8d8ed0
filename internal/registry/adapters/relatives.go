package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	"github.com/ENEASJO/sistema-de-filtro/pkg/platform/sentinel"
)

// noRelationLabel marks a registry entry with no declared family link.
const noRelationLabel = "NINGUNO"

// relativesResponse mirrors the family-relationship registry payload.
type relativesResponse struct {
	Encontrado     bool   `json:"encontrado"`
	NombreCompleto string `json:"nombre_completo"`
	Parentesco     string `json:"parentesco"`
	Familiar       struct {
		DNI    string `json:"dni"`
		Nombre string `json:"nombre"`
	} `json:"familiar"`
}

// Relatives queries the family-relationship registry one person at a time.
type Relatives struct {
	baseURL string
	client  *http.Client
}

func NewRelatives(baseURL string, client *http.Client) *Relatives {
	if client == nil {
		client = http.DefaultClient
	}
	return &Relatives{baseURL: baseURL, client: client}
}

func (r *Relatives) Check(ctx context.Context, dni domain.DNI) (*relationship.Result, error) {
	url := fmt.Sprintf("%s/familiares/%s", r.baseURL, dni)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build relatives request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relatives request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Being absent from the registry is a normal outcome, not a fault.
		result := relationship.NotFoundResult(dni, false)
		return &result, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("relatives returned %s: %w", resp.Status, sentinel.ErrUnavailable)
	}

	var body relativesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode relatives response: %w", err)
	}

	if !body.Encontrado {
		result := relationship.NotFoundResult(dni, false)
		return &result, nil
	}

	label := strings.TrimSpace(body.Parentesco)
	// Any label other than the single NINGUNO sentinel counts as a family
	// link. Locale variants or additional negative labels appearing upstream
	// would slip through this comparison.
	related := label != "" && !strings.EqualFold(label, noRelationLabel)

	return &relationship.Result{
		DNI:          dni,
		Found:        true,
		Related:      related,
		FullName:     body.NombreCompleto,
		RelationType: label,
		RelativeDNI:  domain.DNI(body.Familiar.DNI),
		RelativeName: body.Familiar.Nombre,
	}, nil
}
