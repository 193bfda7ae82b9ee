package meta

import (
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

// InsightFields é a lista mínima de campos pedidos à API de insights. Os
// arrays "actions" e "action_values" carregam, respectivamente, as contagens
// e os valores de conversão; os campos de nome servem para os agrupamentos.
var InsightFields = []string{
	"spend",
	"impressions",
	"clicks",
	"actions",
	"action_values",
	"campaign_name",
	"adset_name",
	"ad_name",
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchInsights busca os registros brutos de insights de um período completo
// para uma combinação (conta, nível, breakdowns). O período é dividido em
// chunks de até ChunkDays dias para limitar o tamanho de cada resposta; os
// chunks são buscados em sequência, com pausa entre eles, e os resultados são
// concatenados na ordem dos chunks. Falhas passageiras de um chunk são
// repetidas com backoff exponencial até MaxRetries vezes; as demais sobem
// imediatamente.
func (s *MetaIntegrator) FetchInsights(
	accountID string,
	token string,
	period domain.DateRange,
	level string,
	breakdowns []string,
) ([]metadomain.InsightRow, error) {
	chunks := period.Chunk(s.cfg.Meta.ChunkDays)

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      level,
		"breakdowns": breakdowns,
		"chunks":     len(chunks),
		"period":     period.String(),
	}).Debug("meta: buscando insights por chunks")

	var allRows []metadomain.InsightRow

	for i, chunk := range chunks {
		if i > 0 {
			time.Sleep(s.cfg.Meta.ChunkDelay())
		}

		params := metaclient.InsightsParams{
			AccountID:  accountID,
			Token:      token,
			Range:      chunk,
			Level:      level,
			Breakdowns: breakdowns,
			Fields:     InsightFields,
		}

		result, err := s.fetchChunkWithRetry(params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"level":      level,
				"chunk":      chunk.String(),
				"error":      err.Error(),
			}).Error("meta: falha definitiva ao buscar chunk de insights")
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
			"chunk":      chunk.String(),
			"rows":       len(result.Rows),
			"pages":      result.Pages,
			"stop":       result.Stop.String(),
		}).Debug("meta: chunk de insights concluído")

		allRows = append(allRows, result.Rows...)
	}

	return allRows, nil
}

// fetchChunkWithRetry repete a busca de um chunk em caso de falha passageira
// (indisponibilidade temporária, timeout, rate limit), dobrando o atraso a
// cada tentativa a partir de RetryBaseDelay
func (s *MetaIntegrator) fetchChunkWithRetry(params metaclient.InsightsParams) (*metaclient.ChunkResult, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.Meta.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.cfg.Meta.RetryBaseDelay() * (1 << (attempt - 1))

			logrus.WithFields(logrus.Fields{
				"account_id": params.AccountID,
				"level":      params.Level,
				"attempt":    attempt,
				"delay":      delay.String(),
			}).Warn("meta: repetindo busca de chunk após falha passageira")

			time.Sleep(delay)
		}

		result, err := s.Client.FetchInsightsChunk(params)
		if err == nil {
			return result, nil
		}

		if !metadomain.IsTransientError(err.Error()) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

// ExchangeToken troca um token de curta duração por um de longa duração
func (s *MetaIntegrator) ExchangeToken(shortLivedToken string) (*metadomain.TokenResponse, error) {
	tokenResp, err := s.Client.ExchangeToken(shortLivedToken)
	if err != nil {
		logrus.WithError(err).Error("meta: falha ao trocar token de acesso")
		return nil, err
	}
	return tokenResp, nil
}

// ValidateToken verifica se um token de acesso ainda é aceito pela API
func (s *MetaIntegrator) ValidateToken(token string) (bool, error) {
	return s.Client.ValidateToken(token)
}

// ListAdAccounts lista as contas de anúncios acessíveis pelo token informado
func (s *MetaIntegrator) ListAdAccounts(token string) ([]metadomain.AdAccount, error) {
	accounts, err := s.Client.ListAdAccounts(token)
	if err != nil {
		logrus.WithError(err).Error("meta: falha ao listar contas de anúncios")
		return nil, err
	}

	logrus.WithField("total_accounts", len(accounts)).Debug("meta: contas de anúncios listadas")
	return accounts, nil
}
