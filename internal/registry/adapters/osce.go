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

// osceResponse mirrors the state-supplier registry payload.
type osceResponse struct {
	NombreComercial string `json:"nombre_comercial"`
	Integrantes     []struct {
		Documento      string `json:"documento"`
		NombreCompleto string `json:"nombre_completo"`
	} `json:"integrantes"`
}

// OSCE queries the state-supplier registry for an organization's registered
// members.
type OSCE struct {
	baseURL string
	client  *http.Client
}

func NewOSCE(baseURL string, client *http.Client) *OSCE {
	if client == nil {
		client = http.DefaultClient
	}
	return &OSCE{baseURL: baseURL, client: client}
}

func (o *OSCE) Name() string { return "osce" }

func (o *OSCE) FetchByRUC(ctx context.Context, ruc domain.RUC) (*ports.SourceResult, error) {
	url := fmt.Sprintf("%s/proveedor/%s", o.baseURL, ruc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build osce request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osce request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("osce has no record for %s: %w", ruc, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("osce returned %s: %w", resp.Status, sentinel.ErrUnavailable)
	}

	var body osceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode osce response: %w", err)
	}

	result := &ports.SourceResult{CompanyName: body.NombreComercial}
	for _, member := range body.Integrantes {
		result.People = append(result.People, ports.PersonTuple{DNI: member.Documento, Name: member.NombreCompleto})
	}
	return result, nil
}
