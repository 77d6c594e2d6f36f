package models

// PackageOption is a purchasable bundle of a product.
type PackageOption struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Product is a drone product sheet.
type Product struct {
	ID              int64
	Title           string
	Subtitle        string
	Images          []string // data URLs, absolute URLs or server paths
	Description     string
	Type            string
	Wingspan        string
	FlightEndurance string
	FlightRange     string
	FlightHeight    string
	OtherDetails    string
	Include         []string
	PackageOptions  []PackageOption
	Financing       []string
	BasePrice       float64
}

func (p Product) RecordID() int64 { return p.ID }

// DefaultFinancing is offered on every new product.
var DefaultFinancing = []string{"Cash", "Installment"}
