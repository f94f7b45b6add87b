package dto

type CompanyResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	AnnualTurnover string  `json:"annual_turnover"`
	CompanySize    string  `json:"company_size"`
	Address        string  `json:"address"`
	Zip            string  `json:"zip"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	PinColor       string  `json:"pin_color"`
}

type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
	LoadError string            `json:"load_error,omitempty"`
}
