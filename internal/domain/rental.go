package domain

type Rental struct {
	ID            int32   `json:"id"`
	CustomerID    int32   `json:"customerId"`
	GameID        int32   `json:"gameId"`
	RentDate      string  `json:"rentDate"`
	DaysRented    int32   `json:"daysRented"`
	ReturnDate    *string `json:"returnDate"`
	OriginalPrice int32   `json:"originalPrice"`
	DelayFee      *int32  `json:"delayFee"`
	// Populated by list queries only.
	Customer *RentalCustomer `json:"customer,omitempty"`
	Game     *RentalGame     `json:"game,omitempty"`
}

// IsReturned reports whether the rental has been closed out.
func (r *Rental) IsReturned() bool {
	return r.ReturnDate != nil
}

// RentalCustomer is the customer summary embedded in rental listings.
type RentalCustomer struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// RentalGame is the game summary embedded in rental listings.
type RentalGame struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// RentalFilter narrows a rental listing. A zero field means "no filter";
// CustomerID wins when both are set.
type RentalFilter struct {
	CustomerID int32
	GameID     int32
}

// OverdueRental is an outstanding rental past its due date, with the fee
// accrued so far.
type OverdueRental struct {
	Rental
	DueDate    string `json:"dueDate"`
	DaysLate   int32  `json:"daysLate"`
	AccruedFee int32  `json:"accruedFee"`
}
