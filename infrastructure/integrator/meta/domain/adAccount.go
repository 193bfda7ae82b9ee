package metadomain

// AdAccount é uma conta de anúncios retornada por me/adaccounts
type AdAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
