package domain

// GroupStat acumula as métricas de um grupo dentro de uma dimensão (campanha,
// conjunto de anúncios, anúncio, posicionamento, segmento demográfico, país ou
// plataforma de dispositivo). Nem toda dimensão acumula todos os campos: o
// agregador decide quais campos somar conforme o esquema da dimensão.
type GroupStat struct {
	Key         string  `json:"key"`
	Age         string  `json:"age,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Region      string  `json:"region,omitempty"`
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Value       float64 `json:"value"`
}

// PeriodStats é o resultado da agregação de um período: os totais escalares
// mais um mapa acumulador por dimensão. As chaves nunca são removidas, apenas
// criadas na primeira ocorrência ou atualizadas.
type PeriodStats struct {
	Spend           float64 `json:"spend"`
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	Conversions     int     `json:"conversions"`
	ConversionValue float64 `json:"conversionValue"`

	Campaigns  map[string]*GroupStat `json:"campaigns"`
	AdSets     map[string]*GroupStat `json:"adSets"`
	Ads        map[string]*GroupStat `json:"ads"`
	Placements map[string]*GroupStat `json:"placements"`
	AgeGender  map[string]*GroupStat `json:"ageGender"`
	Countries  map[string]*GroupStat `json:"countries"`
	Devices    map[string]*GroupStat `json:"devices"`
}

// NewPeriodStats cria um PeriodStats com todos os mapas inicializados
func NewPeriodStats() *PeriodStats {
	return &PeriodStats{
		Campaigns:  make(map[string]*GroupStat),
		AdSets:     make(map[string]*GroupStat),
		Ads:        make(map[string]*GroupStat),
		Placements: make(map[string]*GroupStat),
		AgeGender:  make(map[string]*GroupStat),
		Countries:  make(map[string]*GroupStat),
		Devices:    make(map[string]*GroupStat),
	}
}

// DerivedMetrics são as métricas de razão calculadas a partir dos totais de um
// período. Denominador zero resulta em 0, nunca em erro ou valor não finito.
type DerivedMetrics struct {
	CTR               float64 `json:"ctr"`
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	ROAS              float64 `json:"roas"`
	CostPerConversion float64 `json:"costPerConversion"`
	ConversionRate    float64 `json:"conversionRate"`
}

// PeriodSummary é a resposta do endpoint de resumo de um único período
type PeriodSummary struct {
	Range   DateRange      `json:"range"`
	Stats   *PeriodStats   `json:"stats"`
	Metrics DerivedMetrics `json:"metrics"`
}
