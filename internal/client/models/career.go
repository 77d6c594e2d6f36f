package models

// WorkType is the working arrangement of a career opening.
type WorkType string

const (
	WorkFromHome   WorkType = "WFH"
	WorkFromOffice WorkType = "WFO"
	WorkHybrid     WorkType = "Hybrid"
)

// WorkTypes lists the accepted values in display order.
var WorkTypes = []WorkType{WorkFromOffice, WorkFromHome, WorkHybrid}

// Valid reports whether w is one of WorkTypes.
func (w WorkType) Valid() bool {
	for _, v := range WorkTypes {
		if v == w {
			return true
		}
	}
	return false
}

// Career is a job opening. Benefits and Responsibilities are optional and are
// "" when the server has none.
type Career struct {
	ID               int64
	Title            string
	Qualifications   string
	Benefits         string
	Responsibilities string
	Location         string
	WorkType         WorkType
	Deadline         string // YYYY-MM-DD
}

func (c Career) RecordID() int64 { return c.ID }
