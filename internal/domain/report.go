package domain

// Os nomes dos campos JSON deste arquivo são contrato com o frontend, que
// indexa as colunas pelo nome. Não renomear sem combinar com o consumidor.

// SummaryTotals são os totais pareados dos dois períodos, mais o ACR
// (conversões atribuídas / cliques do período pós, em percentual).
type SummaryTotals struct {
	PreSpend            float64 `json:"preSpend"`
	PostSpend           float64 `json:"postSpend"`
	PreConversions      int     `json:"preConversions"`
	PostConversions     int     `json:"postConversions"`
	PreConversionValue  float64 `json:"preConversionValue"`
	PostConversionValue float64 `json:"postConversionValue"`
	PreImpressions      int     `json:"preImpressions"`
	PostImpressions     int     `json:"postImpressions"`
	PreClicks           int     `json:"preClicks"`
	PostClicks          int     `json:"postClicks"`
	MetaACR             float64 `json:"metaACR"`
}

// Overview traz os totais e as métricas derivadas dos dois períodos lado a lado
type Overview struct {
	PreSpend              float64 `json:"preSpend"`
	PostSpend             float64 `json:"postSpend"`
	PreImpressions        int     `json:"preImpressions"`
	PostImpressions       int     `json:"postImpressions"`
	PreClicks             int     `json:"preClicks"`
	PostClicks            int     `json:"postClicks"`
	PreConversions        int     `json:"preConversions"`
	PostConversions       int     `json:"postConversions"`
	PreCtr                float64 `json:"preCtr"`
	PostCtr               float64 `json:"postCtr"`
	PreCpc                float64 `json:"preCpc"`
	PostCpc               float64 `json:"postCpc"`
	PreCpm                float64 `json:"preCpm"`
	PostCpm               float64 `json:"postCpm"`
	PreRoas               float64 `json:"preRoas"`
	PostRoas              float64 `json:"postRoas"`
	PreCostPerConversion  float64 `json:"preCostPerConversion"`
	PostCostPerConversion float64 `json:"postCostPerConversion"`
	PreConversionRate     float64 `json:"preConversionRate"`
	PostConversionRate    float64 `json:"postConversionRate"`
}

// NamedComparison é a comparação pré/pós de um grupo identificado por nome
// (campanha, conjunto de anúncios ou anúncio)
type NamedComparison struct {
	Name            string  `json:"name"`
	PreSpend        float64 `json:"preSpend"`
	PostSpend       float64 `json:"postSpend"`
	PreConversions  int     `json:"preConversions"`
	PostConversions int     `json:"postConversions"`
	PreRoas         float64 `json:"preRoas"`
	PostRoas        float64 `json:"postRoas"`
}

type PlacementComparison struct {
	Name            string  `json:"name"`
	PreSpend        float64 `json:"preSpend"`
	PostSpend       float64 `json:"postSpend"`
	PreImpressions  int     `json:"preImpressions"`
	PostImpressions int     `json:"postImpressions"`
	PreConversions  int     `json:"preConversions"`
	PostConversions int     `json:"postConversions"`
}

type AgeGenderComparison struct {
	Age             string  `json:"age"`
	Gender          string  `json:"gender"`
	PreSpend        float64 `json:"preSpend"`
	PostSpend       float64 `json:"postSpend"`
	PreConversions  int     `json:"preConversions"`
	PostConversions int     `json:"postConversions"`
}

type CountryComparison struct {
	Country         string  `json:"country"`
	Region          string  `json:"region,omitempty"`
	PreSpend        float64 `json:"preSpend"`
	PostSpend       float64 `json:"postSpend"`
	PreConversions  int     `json:"preConversions"`
	PostConversions int     `json:"postConversions"`
}

type DeviceComparison struct {
	Platform        string  `json:"platform"`
	PreSpend        float64 `json:"preSpend"`
	PostSpend       float64 `json:"postSpend"`
	PreConversions  int     `json:"preConversions"`
	PostConversions int     `json:"postConversions"`
}

type Performance struct {
	Campaigns []NamedComparison `json:"campaigns"`
	AdSets    []NamedComparison `json:"adSets"`
	TopAds    []NamedComparison `json:"topAds"`
}

type Audience struct {
	AgeGender []AgeGenderComparison `json:"ageGender"`
	Interests []NamedComparison     `json:"interests"`
}

type TimeAnalysis struct {
	Hourly []NamedComparison `json:"hourly"`
	Daily  []NamedComparison `json:"daily"`
}

// ComparisonReport é o relatório final de comparação pré/pós. Dimensões cuja
// busca opcional falhou ficam vazias e aparecem em DegradedDimensions, para o
// consumidor distinguir "sem registros" de "busca indisponível".
type ComparisonReport struct {
	SummaryTotals      SummaryTotals         `json:"summaryTotals"`
	Overview           Overview              `json:"overview"`
	Performance        Performance           `json:"performance"`
	Audience           Audience              `json:"audience"`
	Placements         []PlacementComparison `json:"placements"`
	Geographic         []CountryComparison   `json:"geographic"`
	Devices            []DeviceComparison    `json:"devices"`
	TimeAnalysis       TimeAnalysis          `json:"timeAnalysis"`
	DegradedDimensions []string              `json:"degradedDimensions,omitempty"`
}
