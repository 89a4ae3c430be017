package data

type LoadDataResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"` // Записано матчей
}

type Dataset struct {
	League  string `json:"league"`
	Season  string `json:"season"`
	Matches int    `json:"matches"`
}
