package domain

type Customer struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
