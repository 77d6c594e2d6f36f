package models

// Project is a showcase project linked to one product/service and one industry.
type Project struct {
	ID               int64
	Title            string
	Description      string
	Location         string
	Goal             string
	ProductServiceID int64
	IndustryID       int64
	ProductService   string // display name, may be "" if the server omits it
	Industry         string
	Image            string
}

func (p Project) RecordID() int64 { return p.ID }
