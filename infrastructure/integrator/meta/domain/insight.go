package metadomain

// Action é uma entrada dos arrays "actions" e "action_values" da API de
// insights. Os valores numéricos chegam como string e devem ser convertidos
// defensivamente pelo consumidor.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha bruta retornada pela API de insights. Os campos de
// dimensão só vêm preenchidos quando o breakdown correspondente foi pedido.
type InsightRow struct {
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`

	CampaignName      string `json:"campaign_name,omitempty"`
	AdsetName         string `json:"adset_name,omitempty"`
	AdName            string `json:"ad_name,omitempty"`
	PublisherPlatform string `json:"publisher_platform,omitempty"`
	Age               string `json:"age,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Country           string `json:"country,omitempty"`
	Region            string `json:"region,omitempty"`
	DevicePlatform    string `json:"device_platform,omitempty"`
}

// Paging é o bloco de paginação das respostas da API. Next é uma URL de cursor
// opaca: seguimos a URL como veio, sem reinterpretar o cursor.
type Paging struct {
	Next string `json:"next"`
}

// InsightsPage é uma página da resposta paginada de insights
type InsightsPage struct {
	Data   []InsightRow `json:"data"`
	Paging Paging       `json:"paging"`
}
