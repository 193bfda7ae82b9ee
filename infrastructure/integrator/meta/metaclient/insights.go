package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
)

// StopReason indica como a paginação de um chunk terminou, para o chamador
// distinguir "terminou" de "desistiu".
type StopReason int

const (
	// StopCompleted: a API não devolveu cursor de próxima página
	StopCompleted StopReason = iota
	// StopEmptyPage: a API devolveu uma página sem registros
	StopEmptyPage
	// StopInvalidCursor: cursor inválido/expirado; os dados parciais já
	// coletados são mantidos
	StopInvalidCursor
	// StopMaxPages: o teto de páginas por chunk foi atingido
	StopMaxPages
)

func (s StopReason) String() string {
	switch s {
	case StopCompleted:
		return "completed"
	case StopEmptyPage:
		return "empty_page"
	case StopInvalidCursor:
		return "invalid_cursor"
	case StopMaxPages:
		return "max_pages"
	}
	return "unknown"
}

// ChunkResult é o resultado da paginação de um chunk: as linhas coletadas na
// ordem das páginas, quantas páginas foram consumidas e por que paramos
type ChunkResult struct {
	Rows  []metadomain.InsightRow
	Pages int
	Stop  StopReason
}

// FetchInsightsChunk busca todas as páginas de insights de um único chunk de
// datas, seguindo o cursor opaco devolvido pela API (nunca reconstruímos o
// cursor). A iteração é limitada por MaxPagesPerChunk, com pausa configurável
// entre páginas para respeitar o rate limit. Um erro de cursor inválido
// interrompe a paginação mantendo os dados parciais; os demais erros sobem
// para o chamador decidir se repete.
func (c *MetaClient) FetchInsightsChunk(params InsightsParams) (*ChunkResult, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, params.AccountID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		params.Range.Start.Format(time.DateOnly),
		params.Range.End.Format(time.DateOnly),
	)

	values := url.Values{}
	values.Add("access_token", params.Token)
	values.Add("level", params.Level)
	values.Add("time_range", timeRange)
	values.Add("fields", strings.Join(params.Fields, ","))
	values.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	if len(params.Breakdowns) > 0 {
		values.Add("breakdowns", strings.Join(params.Breakdowns, ","))
	}

	result := &ChunkResult{}
	requestURL := baseURL + "?" + values.Encode()

	for page := 0; page < c.Cfg.Meta.MaxPagesPerChunk; page++ {
		if page > 0 {
			time.Sleep(c.Cfg.Meta.PageDelay())
		}

		body, err := c.get(requestURL)
		if err != nil {
			if metadomain.IsInvalidCursorError(err.Error()) {
				logrus.WithFields(logrus.Fields{
					"account_id": params.AccountID,
					"level":      params.Level,
					"pages":      result.Pages,
				}).Warn("meta: cursor inválido, interrompendo paginação do chunk")

				result.Stop = StopInvalidCursor
				return result, nil
			}
			return nil, err
		}

		var pageResp metadomain.InsightsPage
		if err := json.Unmarshal(body, &pageResp); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar página de insights")
		}

		if len(pageResp.Data) == 0 {
			result.Stop = StopEmptyPage
			return result, nil
		}

		result.Rows = append(result.Rows, pageResp.Data...)
		result.Pages++

		if pageResp.Paging.Next == "" {
			result.Stop = StopCompleted
			return result, nil
		}

		// Cursor opaco: seguimos a URL exatamente como veio
		requestURL = pageResp.Paging.Next
	}

	result.Stop = StopMaxPages
	return result, nil
}

func (c *MetaClient) get(requestURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo da resposta")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := metadomain.ParseErrorMessage(body)
		return nil, errors.Errorf("Meta API error: %d - %s", resp.StatusCode, message)
	}

	return body, nil
}
