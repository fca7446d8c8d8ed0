package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ENEASJO/sistema-de-filtro/internal/screening/ports"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	"github.com/ENEASJO/sistema-de-filtro/pkg/platform/sentinel"
)

// sunatResponse mirrors the tax registry payload.
type sunatResponse struct {
	RazonSocial    string `json:"razon_social"`
	Representantes []struct {
		DNI    string `json:"dni"`
		Nombre string `json:"nombre"`
	} `json:"representantes"`
}

// SUNAT queries the national tax registry for an organization's legal
// representatives.
type SUNAT struct {
	baseURL string
	client  *http.Client
}

func NewSUNAT(baseURL string, client *http.Client) *SUNAT {
	if client == nil {
		client = http.DefaultClient
	}
	return &SUNAT{baseURL: baseURL, client: client}
}

func (s *SUNAT) Name() string { return "sunat" }

func (s *SUNAT) FetchByRUC(ctx context.Context, ruc domain.RUC) (*ports.SourceResult, error) {
	url := fmt.Sprintf("%s/ruc/%s", s.baseURL, ruc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build sunat request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sunat request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("sunat has no record for %s: %w", ruc, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("sunat returned %s: %w", resp.Status, sentinel.ErrUnavailable)
	}

	var body sunatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode sunat response: %w", err)
	}

	result := &ports.SourceResult{CompanyName: body.RazonSocial}
	for _, rep := range body.Representantes {
		result.People = append(result.People, ports.PersonTuple{DNI: rep.DNI, Name: rep.Nombre})
	}
	return result, nil
}
