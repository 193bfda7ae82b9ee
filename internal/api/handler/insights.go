package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/capi-impact-api/internal/domain"
	"github.com/vfg2006/capi-impact-api/internal/usecases/reporting"
	"github.com/vfg2006/capi-impact-api/pkg/apiErrors"
	"github.com/vfg2006/capi-impact-api/pkg/log"
)

// GetPeriodSummary busca e agrega um único período de insights
func GetPeriodSummary(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query := r.URL.Query()
		accountID := query.Get("account_id")
		eventName := query.Get("event_name")
		token := metaToken(r)

		if accountID == "" || eventName == "" || token == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id, event_name e access_token são obrigatórios", nil)
			return
		}

		period, err := domain.ParseDateRange(query.Get("start_date"), query.Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("insights: período inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.GetPeriodSummary(reporting.SummaryRequest{
			Token:     token,
			AccountID: accountID,
			EventName: eventName,
			Range:     period,
		})
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": accountID,
				"event_name": eventName,
				"error":      err.Error(),
			}).Error("insights: falha ao gerar resumo do período")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithField("error", err.Error()).Error("insights: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// metaToken extrai o token de acesso à API do Meta da requisição. Aceita o
// header X-Meta-Token ou o parâmetro de query access_token.
func metaToken(r *http.Request) string {
	if token := r.Header.Get("X-Meta-Token"); token != "" {
		return token
	}
	return r.URL.Query().Get("access_token")
}
