package handler

import (
	"encoding/json"
	"net/http"

	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/pkg/apiErrors"
	"github.com/vfg2006/capi-impact-api/pkg/log"
)

// AdAccountLister lista as contas de anúncios acessíveis por um token
type AdAccountLister interface {
	ListAdAccounts(token string) ([]metadomain.AdAccount, error)
}

// ListAdAccounts lista as contas de anúncios às quais o token informado tem acesso
func ListAdAccounts(service AdAccountLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		token := metaToken(r)
		if token == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "access_token é obrigatório", nil)
			return
		}

		accounts, err := service.ListAdAccounts(token)
		if err != nil {
			logger.WithField("error", err.Error()).Error("adAccounts: falha ao listar contas de anúncios")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			logger.WithField("error", err.Error()).Error("adAccounts: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
