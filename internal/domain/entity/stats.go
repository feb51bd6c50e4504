package entity

// CategoryStat aggregates copy and title counts for one category.
type CategoryStat struct {
	Name           string `json:"name"`
	TotalBooks     int    `json:"totalBooks"`
	AvailableBooks int    `json:"availableBooks"`
	BookCount      int    `json:"bookCount"`
}

// LibraryStats is the /api/stats payload.
type LibraryStats struct {
	Books struct {
		Total        int `json:"total"`
		Available    int `json:"available"`
		Borrowed     int `json:"borrowed"`
		UniqueTitles int `json:"uniqueTitles"`
	} `json:"books"`
	Students struct {
		Total int `json:"total"`
	} `json:"students"`
	Borrowing struct {
		Active   int `json:"active"`
		Returned int `json:"returned"`
		Overdue  int `json:"overdue"`
	} `json:"borrowing"`
	Categories []CategoryStat `json:"categories"`
	Fines      struct {
		TotalOverdueBooks int     `json:"totalOverdueBooks"`
		TotalFineAmount   float64 `json:"totalFineAmount"`
	} `json:"fines"`
}
