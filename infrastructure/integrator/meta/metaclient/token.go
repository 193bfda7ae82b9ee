package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
)

// ExchangeToken troca um token de curta duração por um de longa duração. O
// token de longa duração é o que o frontend guarda para as consultas de
// insights.
func (c *MetaClient) ExchangeToken(shortLivedToken string) (*metadomain.TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, errors.New("token de acesso não pode ser vazio")
	}

	values := url.Values{}
	values.Add("grant_type", "fb_exchange_token")
	values.Add("client_id", c.Cfg.Meta.AppID)
	values.Add("client_secret", c.Cfg.Meta.AppSecret)
	values.Add("fb_exchange_token", shortLivedToken)

	requestURL := fmt.Sprintf("%s/oauth/access_token?%s", c.Cfg.Meta.URL, values.Encode())

	body, err := c.get(requestURL)
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de troca de token")
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("token retornado pela API é vazio")
	}

	logrus.WithField("expires_in", formatTokenDuration(tokenResp.ExpiresIn)).
		Info("meta: token de longa duração obtido")

	return &tokenResp, nil
}

// ValidateToken verifica se o token ainda é aceito pela API consultando o
// endpoint /me. Resposta de erro significa token inválido ou expirado, não
// falha da verificação.
func (c *MetaClient) ValidateToken(token string) (bool, error) {
	if token == "" {
		return false, errors.New("token não pode ser vazio")
	}

	requestURL := fmt.Sprintf("%s/me?fields=id,name&access_token=%s", c.Cfg.Meta.URL, url.QueryEscape(token))

	if _, err := c.get(requestURL); err != nil {
		if strings.Contains(err.Error(), "Meta API error") {
			logrus.WithError(err).Warn("meta: token inválido ou expirado")
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func formatTokenDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
