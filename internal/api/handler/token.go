package handler

import (
	"encoding/json"
	"net/http"

	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/pkg/apiErrors"
	"github.com/vfg2006/capi-impact-api/pkg/log"
)

// TokenExchanger troca e valida tokens de acesso do Meta
type TokenExchanger interface {
	ExchangeToken(shortLivedToken string) (*metadomain.TokenResponse, error)
	ValidateToken(token string) (bool, error)
}

type ExchangeTokenRequest struct {
	AccessToken string `json:"access_token"`
}

// ExchangeToken troca o token de curta duração do frontend por um de longa
// duração, que é o que fica guardado para as consultas de insights
func ExchangeToken(service TokenExchanger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ExchangeTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.AccessToken == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "access_token é obrigatório", nil)
			return
		}

		tokenResp, err := service.ExchangeToken(req.AccessToken)
		if err != nil {
			logger.WithField("error", err.Error()).Error("token: falha ao trocar token de acesso")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResp); err != nil {
			logger.WithField("error", err.Error()).Error("token: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ValidateToken informa se o token do chamador ainda é aceito pela API do Meta
func ValidateToken(service TokenExchanger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		token := metaToken(r)
		if token == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "access_token é obrigatório", nil)
			return
		}

		valid, err := service.ValidateToken(token)
		if err != nil {
			logger.WithField("error", err.Error()).Error("token: falha ao validar token de acesso")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]bool{"valid": valid}); err != nil {
			logger.WithField("error", err.Error()).Error("token: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
