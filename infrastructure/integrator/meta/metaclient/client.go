package metaclient

import (
	"net/http"

	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

// InsightsParams identifica uma busca de insights para um único chunk de
// datas: conta, token do chamador, intervalo, nível de métrica, breakdowns e
// lista de campos
type InsightsParams struct {
	AccountID  string
	Token      string
	Range      domain.DateRange
	Level      string
	Breakdowns []string
	Fields     []string
}

type Client interface {
	FetchInsightsChunk(params InsightsParams) (*ChunkResult, error)
	ListAdAccounts(token string) ([]metadomain.AdAccount, error)
	ExchangeToken(shortLivedToken string) (*metadomain.TokenResponse, error)
	ValidateToken(token string) (bool, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg:        cfg,
		httpClient: &http.Client{},
	}
}
