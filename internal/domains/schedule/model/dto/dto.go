package dto

type WindowResponse struct {
	Date        string `json:"date"`
	Open        string `json:"open"`
	Close       string `json:"close"`
	LastArrival string `json:"last_arrival"`
	Special     bool   `json:"special"`
	Label       string `json:"label,omitempty"`
}

type SlotsResponse struct {
	WindowResponse

	Slots []string `json:"slots"`
}
