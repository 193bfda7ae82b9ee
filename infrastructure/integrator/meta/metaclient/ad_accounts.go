package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/pkg/utils"
)

// ListAdAccounts lista as contas de anúncios acessíveis pelo token informado
func (c *MetaClient) ListAdAccounts(token string) ([]metadomain.AdAccount, error) {
	requestURL := fmt.Sprintf("%s/me/adaccounts?limit=100&access_token=%s", c.Cfg.Meta.URL, url.QueryEscape(token))

	data, err := utils.MakeRequest(requestURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar contas de anúncios")
	}

	var response struct {
		Data []metadomain.AdAccount `json:"data"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar contas de anúncios")
	}

	accounts := make([]metadomain.AdAccount, 0, len(response.Data))
	for _, account := range response.Data {
		if account.Name == "" {
			account.Name = account.ID
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}
