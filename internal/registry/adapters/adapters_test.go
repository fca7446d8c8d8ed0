package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/sistema-de-filtro/internal/screening/ports"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	"github.com/ENEASJO/sistema-de-filtro/pkg/platform/sentinel"
)

const testRUC = domain.RUC("20605385770")

func jsonServer(t *testing.T, wantPath string, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSUNAT_FetchByRUC(t *testing.T) {
	srv := jsonServer(t, "/ruc/20605385770", http.StatusOK, `{
		"razon_social": "CONSTRUCTORA ANDINA S.A.C.",
		"representantes": [
			{"dni": "45678901", "nombre": "PEREZ GARCIA, JUAN"},
			{"dni": "12345678", "nombre": "LOPEZ DIAZ, ANA"}
		]
	}`)
	defer srv.Close()

	adapter := NewSUNAT(srv.URL, nil)
	assert.Equal(t, "sunat", adapter.Name())

	result, err := adapter.FetchByRUC(context.Background(), testRUC)
	require.NoError(t, err)
	assert.Equal(t, "CONSTRUCTORA ANDINA S.A.C.", result.CompanyName)
	assert.Equal(t, []ports.PersonTuple{
		{DNI: "45678901", Name: "PEREZ GARCIA, JUAN"},
		{DNI: "12345678", Name: "LOPEZ DIAZ, ANA"},
	}, result.People)
}

func TestSUNAT_NotFound(t *testing.T) {
	srv := jsonServer(t, "/ruc/20605385770", http.StatusNotFound, `{}`)
	defer srv.Close()

	adapter := NewSUNAT(srv.URL, nil)
	_, err := adapter.FetchByRUC(context.Background(), testRUC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestSUNAT_Unavailable(t *testing.T) {
	srv := jsonServer(t, "/ruc/20605385770", http.StatusBadGateway, "upstream down")
	defer srv.Close()

	adapter := NewSUNAT(srv.URL, nil)
	_, err := adapter.FetchByRUC(context.Background(), testRUC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}

func TestOSCE_FetchByRUC(t *testing.T) {
	srv := jsonServer(t, "/proveedor/20605385770", http.StatusOK, `{
		"nombre_comercial": "ANDINA CONTRATISTAS",
		"integrantes": [
			{"documento": "45678901", "nombre_completo": "PEREZ GARCIA JUAN CARLOS"}
		]
	}`)
	defer srv.Close()

	adapter := NewOSCE(srv.URL, nil)
	assert.Equal(t, "osce", adapter.Name())

	result, err := adapter.FetchByRUC(context.Background(), testRUC)
	require.NoError(t, err)
	assert.Equal(t, "ANDINA CONTRATISTAS", result.CompanyName)
	require.Len(t, result.People, 1)
	assert.Equal(t, "45678901", result.People[0].DNI)
}

func TestOSCE_Unavailable(t *testing.T) {
	srv := jsonServer(t, "/proveedor/20605385770", http.StatusServiceUnavailable, "")
	defer srv.Close()

	adapter := NewOSCE(srv.URL, nil)
	_, err := adapter.FetchByRUC(context.Background(), testRUC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}

func TestRelatives_RelatedEntry(t *testing.T) {
	srv := jsonServer(t, "/familiares/45678901", http.StatusOK, `{
		"encontrado": true,
		"nombre_completo": "PEREZ GARCIA, JUAN",
		"parentesco": "HERMANO",
		"familiar": {"dni": "12345678", "nombre": "PEREZ GARCIA, ROSA"}
	}`)
	defer srv.Close()

	adapter := NewRelatives(srv.URL, nil)
	result, err := adapter.Check(context.Background(), "45678901")
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.True(t, result.Related)
	assert.False(t, result.Errored)
	assert.Equal(t, "HERMANO", result.RelationType)
	assert.Equal(t, domain.DNI("12345678"), result.RelativeDNI)
	assert.Equal(t, "PEREZ GARCIA, ROSA", result.RelativeName)
}

func TestRelatives_NoRelationSentinel(t *testing.T) {
	// The sentinel compares case-insensitively.
	for _, label := range []string{"NINGUNO", "ninguno", "Ninguno", " NINGUNO "} {
		t.Run(label, func(t *testing.T) {
			srv := jsonServer(t, "/familiares/45678901", http.StatusOK, `{
				"encontrado": true,
				"nombre_completo": "PEREZ GARCIA, JUAN",
				"parentesco": "`+label+`"
			}`)
			defer srv.Close()

			adapter := NewRelatives(srv.URL, nil)
			result, err := adapter.Check(context.Background(), "45678901")
			require.NoError(t, err)
			assert.True(t, result.Found)
			assert.False(t, result.Related)
		})
	}
}

func TestRelatives_EmptyLabelNotRelated(t *testing.T) {
	srv := jsonServer(t, "/familiares/45678901", http.StatusOK, `{
		"encontrado": true,
		"nombre_completo": "PEREZ GARCIA, JUAN",
		"parentesco": ""
	}`)
	defer srv.Close()

	adapter := NewRelatives(srv.URL, nil)
	result, err := adapter.Check(context.Background(), "45678901")
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.False(t, result.Related)
}

func TestRelatives_AbsentFromRegistry(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 404", http.StatusNotFound, `{}`},
		{"encontrado false", http.StatusOK, `{"encontrado": false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, "/familiares/45678901", tt.status, tt.body)
			defer srv.Close()

			adapter := NewRelatives(srv.URL, nil)
			result, err := adapter.Check(context.Background(), "45678901")
			require.NoError(t, err, "an absent person is a normal outcome, not a fault")
			assert.False(t, result.Found)
			assert.False(t, result.Errored)
			assert.Equal(t, domain.DNI("45678901"), result.DNI)
		})
	}
}

func TestAdapters_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"razon_social": `))
	}))
	defer srv.Close()

	_, err := NewSUNAT(srv.URL, nil).FetchByRUC(context.Background(), testRUC)
	assert.Error(t, err)

	_, err = NewOSCE(srv.URL, nil).FetchByRUC(context.Background(), testRUC)
	assert.Error(t, err)

	_, err = NewRelatives(srv.URL, nil).Check(context.Background(), "45678901")
	assert.Error(t, err)
}

func TestRelatives_Unavailable(t *testing.T) {
	srv := jsonServer(t, "/familiares/45678901", http.StatusInternalServerError, "")
	defer srv.Close()

	adapter := NewRelatives(srv.URL, nil)
	_, err := adapter.Check(context.Background(), "45678901")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}
