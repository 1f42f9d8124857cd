package dto

type ServiceShare struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AnalyticsDTO struct {
	TotalCustomers    int            `json:"totalCustomers"`
	Revenue           int            `json:"revenue"`
	AvgWaitTime       int            `json:"avgWaitTime"`
	OfferClicks       int            `json:"offerClicks"`
	CustomerFlow      []int          `json:"customerFlow"`
	ServicePopularity []ServiceShare `json:"servicePopularity"`
	PeakHours         []int          `json:"peakHours"`
}
