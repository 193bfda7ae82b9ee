package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/capi-impact-api/internal/domain"
	"github.com/vfg2006/capi-impact-api/internal/usecases/reporting"
	"github.com/vfg2006/capi-impact-api/pkg/apiErrors"
	"github.com/vfg2006/capi-impact-api/pkg/log"
	"github.com/vfg2006/capi-impact-api/pkg/middleware"
)

// ComparisonReportRequest é o corpo da requisição de geração de relatório.
// O token de acesso à API do Meta é fornecido pelo chamador a cada requisição.
type ComparisonReportRequest struct {
	AccountID   string `json:"account_id"`
	EventName   string `json:"event_name"`
	AccessToken string `json:"access_token"`
	PreStart    string `json:"pre_start"`
	PreEnd      string `json:"pre_end"`
	PostStart   string `json:"post_start"`
	PostEnd     string `json:"post_end"`
}

// GenerateComparisonReport gera um relatório comparando os períodos pré e pós
func GenerateComparisonReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ComparisonReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.AccountID == "" || req.EventName == "" || req.AccessToken == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id, event_name e access_token são obrigatórios", nil)
			return
		}

		preRange, err := domain.ParseDateRange(req.PreStart, req.PreEnd)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": req.AccountID,
				"error":      err.Error(),
			}).Warn("reports: período pré inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		postRange, err := domain.ParseDateRange(req.PostStart, req.PostEnd)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": req.AccountID,
				"error":      err.Error(),
			}).Warn("reports: período pós inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var userID int
		if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			userID = claims.UserID
		}

		snapshot, err := service.GenerateComparisonReport(reporting.ComparisonRequest{
			Token:     req.AccessToken,
			AccountID: req.AccountID,
			EventName: req.EventName,
			PreRange:  preRange,
			PostRange: postRange,
			UserID:    userID,
		})
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": req.AccountID,
				"event_name": req.EventName,
				"error":      err.Error(),
			}).Error("reports: falha ao gerar relatório de comparação")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  req.AccountID,
			"snapshot_id": snapshot.ID,
		}).Info("reports: relatório de comparação gerado")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ListReports lista os cabeçalhos dos relatórios já gerados
func ListReports(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		headers, err := service.ListReports(limit)
		if err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao listar relatórios")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar relatórios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(headers); err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetReport retorna um relatório completo do histórico pelo ID
func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não fornecido", nil)
			return
		}

		snapshot, err := service.GetReportByID(id)
		if err != nil {
			logger.WithFields(log.Fields{
				"report_id": id,
				"error":     err.Error(),
			}).Error("reports: falha ao buscar relatório")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar relatório", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Relatório não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
