package domain

type Game struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	CategoryID  int32  `json:"categoryId"`
	StockTotal  int32  `json:"stockTotal"`
	PricePerDay int32  `json:"pricePerDay"`
}

type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
