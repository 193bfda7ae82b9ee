package metaclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

func newTestClient(serverURL string) Client {
	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.PageLimit = 100
	cfg.Meta.MaxPagesPerChunk = 5
	cfg.Meta.PageDelayMs = 1
	return NewClient(cfg)
}

func testParams(t *testing.T) InsightsParams {
	t.Helper()

	period, err := domain.NewDateRange(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return InsightsParams{
		AccountID: "act_123",
		Token:     "token",
		Range:     period,
		Level:     "ad",
		Fields:    []string{"spend", "impressions"},
	}
}

func pageBody(adName, next string) string {
	if next == "" {
		return fmt.Sprintf(`{"data":[{"ad_name":%q,"spend":"10.00"}],"paging":{}}`, adName)
	}
	return fmt.Sprintf(`{"data":[{"ad_name":%q,"spend":"10.00"}],"paging":{"next":%q}}`, adName, next)
}

func TestFetchInsightsChunk(t *testing.T) {
	t.Run("segue o cursor até a última página", func(t *testing.T) {
		requests := 0
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			switch requests {
			case 1:
				assert.Equal(t, "/act_123/insights", r.URL.Path)
				assert.Equal(t, "token", r.URL.Query().Get("access_token"))
				assert.Equal(t, "ad", r.URL.Query().Get("level"))
				assert.Equal(t, "100", r.URL.Query().Get("limit"))
				assert.Equal(t, "spend,impressions", r.URL.Query().Get("fields"))
				assert.JSONEq(t, `{"since":"2025-01-01","until":"2025-01-07"}`, r.URL.Query().Get("time_range"))
				fmt.Fprint(w, pageBody("Anúncio 1", server.URL+"/act_123/insights?after=abc"))
			case 2:
				// O cursor devolvido pela API é seguido exatamente como veio
				assert.Equal(t, "abc", r.URL.Query().Get("after"))
				fmt.Fprint(w, pageBody("Anúncio 2", ""))
			default:
				t.Errorf("requisição inesperada: %s", r.URL)
			}
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.NoError(t, err)

		assert.Equal(t, StopCompleted, result.Stop)
		assert.Equal(t, 2, result.Pages)
		require.Len(t, result.Rows, 2)
		assert.Equal(t, "Anúncio 1", result.Rows[0].AdName)
		assert.Equal(t, "Anúncio 2", result.Rows[1].AdName)
	})

	t.Run("breakdowns entram na query quando presentes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "age,gender", r.URL.Query().Get("breakdowns"))
			fmt.Fprint(w, pageBody("Anúncio 1", ""))
		}))
		defer server.Close()

		params := testParams(t)
		params.Breakdowns = []string{"age", "gender"}

		result, err := newTestClient(server.URL).FetchInsightsChunk(params)
		require.NoError(t, err)
		assert.Equal(t, StopCompleted, result.Stop)
	})

	t.Run("página vazia encerra o chunk", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":[],"paging":{}}`)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.NoError(t, err)

		assert.Equal(t, StopEmptyPage, result.Stop)
		assert.Zero(t, result.Pages)
		assert.Empty(t, result.Rows)
	})

	t.Run("cursor inválido mantém os dados parciais sem erro", func(t *testing.T) {
		requests := 0
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests == 1 {
				fmt.Fprint(w, pageBody("Anúncio 1", server.URL+"/act_123/insights?after=expirado"))
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"Invalid cursor value","type":"OAuthException","code":100}}`)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.NoError(t, err)

		assert.Equal(t, StopInvalidCursor, result.Stop)
		assert.Equal(t, 1, result.Pages)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "Anúncio 1", result.Rows[0].AdName)
	})

	t.Run("teto de páginas por chunk interrompe a paginação", func(t *testing.T) {
		requests := 0
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			name := fmt.Sprintf("Anúncio %d", requests)
			fmt.Fprint(w, pageBody(name, server.URL+"/act_123/insights?after=abc"))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.NoError(t, err)

		assert.Equal(t, StopMaxPages, result.Stop)
		assert.Equal(t, 5, result.Pages)
		assert.Len(t, result.Rows, 5)
		assert.Equal(t, 5, requests)
	})

	t.Run("erro da API sobe com status e mensagem", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"message":"Service temporarily unavailable","type":"ApiException","code":2}}`)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "Meta API error: 500")
		assert.Contains(t, err.Error(), "Service temporarily unavailable")
	})

	t.Run("corpo que não é JSON de erro vira a mensagem bruta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "Bad Gateway")
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchInsightsChunk(testParams(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Meta API error: 502 - Bad Gateway")
	})
}
