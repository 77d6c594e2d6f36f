package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

// CareerDraft is the editable form of a career opening. Benefits and
// Responsibilities are optional; clearing them on edit sends null.
type CareerDraft struct {
	Title            string
	Qualifications   string
	Benefits         string
	Responsibilities string
	Location         string
	WorkType         models.WorkType
	Deadline         string
}

type careerWire struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Qualifications   string  `json:"qualifications"`
	Benefits         *string `json:"benefits"`
	Responsibilities *string `json:"responsibilities"`
	Location         string  `json:"location"`
	WorkType         string  `json:"work_type"`
	Deadline         string  `json:"deadline"`
}

func (w careerWire) toModel() models.Career {
	return models.Career{
		ID:               w.ID,
		Title:            w.Title,
		Qualifications:   w.Qualifications,
		Benefits:         deref(w.Benefits),
		Responsibilities: deref(w.Responsibilities),
		Location:         w.Location,
		WorkType:         models.WorkType(w.WorkType),
		Deadline:         NormalizeDate(w.Deadline),
	}
}

// NormalizeDate cuts a backend timestamp ("2025-11-14 00:00:00" or ISO) down
// to YYYY-MM-DD. Values it cannot read are returned unchanged.
func NormalizeDate(s string) string {
	if len(s) < len(time.DateOnly) {
		return s
	}
	head := s[:len(time.DateOnly)]
	if _, err := time.Parse(time.DateOnly, head); err != nil {
		return s
	}
	return head
}

type careerPayload struct {
	Title            string  `json:"title"`
	Qualifications   string  `json:"qualifications"`
	Benefits         *string `json:"benefits"`
	Responsibilities *string `json:"responsibilities"`
	Location         string  `json:"location"`
	WorkType         string  `json:"work_type"`
	Deadline         string  `json:"deadline"`
}

var _ crud.Resource[models.Career, CareerDraft] = Careers{}

// Careers is the /careers collection.
type Careers struct{}

func (Careers) Name() string                        { return "careers" }
func (Careers) Singular() string                    { return "career" }
func (Careers) Path() string                        { return "/careers" }
func (Careers) Envelope() []string                  { return []string{"career", "data"} }
func (Careers) Sources(client.Client) []crud.Source { return nil }

func (Careers) DecodeList(items json.RawMessage) ([]models.Career, error) {
	return decodeEach(items, careerWire.toModel)
}

func (Careers) Decode(raw json.RawMessage) (models.Career, error) {
	return decodeOne(raw, careerWire.toModel)
}

func (Careers) Empty() CareerDraft {
	return CareerDraft{WorkType: models.WorkFromOffice}
}

func (Careers) Seed(c models.Career) CareerDraft {
	return CareerDraft{
		Title:            c.Title,
		Qualifications:   c.Qualifications,
		Benefits:         c.Benefits,
		Responsibilities: c.Responsibilities,
		Location:         c.Location,
		WorkType:         c.WorkType,
		Deadline:         c.Deadline,
	}
}

func (Careers) Validate(d CareerDraft) error {
	allowed := make([]string, 0, len(models.WorkTypes))
	for _, w := range models.WorkTypes {
		allowed = append(allowed, string(w))
	}
	v := &crud.Validator{}
	return v.Required("title", d.Title).
		Required("qualifications", d.Qualifications).
		Required("location", d.Location).
		OneOf("work_type", string(d.WorkType), allowed...).
		Required("deadline", d.Deadline).
		Date("deadline", d.Deadline, time.DateOnly).
		Err()
}

func (Careers) EncodeCreate(d CareerDraft) (*client.Body, error) {
	return client.JSONBody(careerPayload{
		Title:            d.Title,
		Qualifications:   d.Qualifications,
		Benefits:         nullable(d.Benefits),
		Responsibilities: nullable(d.Responsibilities),
		Location:         d.Location,
		WorkType:         string(d.WorkType),
		Deadline:         d.Deadline,
	}), nil
}

// careerRequired are sent on every update whether changed or not.
var careerRequired = []string{"title", "qualifications", "location", "work_type", "deadline"}

// EncodeUpdate sends the fields that differ from orig. A cleared optional
// field is sent as null; the required fields are always included.
func (c Careers) EncodeUpdate(orig models.Career, d CareerDraft) (string, *client.Body, error) {
	before := c.Seed(orig)
	payload := map[string]any{}

	diff := func(key, old, cur string, optional bool) {
		if old == cur {
			return
		}
		if cur == "" {
			if optional {
				payload[key] = nil
			}
			return
		}
		payload[key] = cur
	}
	diff("title", before.Title, d.Title, false)
	diff("qualifications", before.Qualifications, d.Qualifications, false)
	diff("benefits", before.Benefits, d.Benefits, true)
	diff("responsibilities", before.Responsibilities, d.Responsibilities, true)
	diff("location", before.Location, d.Location, false)
	diff("work_type", string(before.WorkType), string(d.WorkType), false)
	diff("deadline", before.Deadline, d.Deadline, false)

	current := map[string]string{
		"title":          d.Title,
		"qualifications": d.Qualifications,
		"location":       d.Location,
		"work_type":      string(d.WorkType),
		"deadline":       d.Deadline,
	}
	for _, k := range careerRequired {
		if _, ok := payload[k]; !ok {
			payload[k] = current[k]
		}
	}
	return http.MethodPut, client.JSONBody(payload), nil
}

func (Careers) Merge(_, updated models.Career) models.Career {
	return updated
}
