// Package models defines the canonical in-memory shapes of the records the
// admin client manages. Wire formats live in the resources package and are
// normalized into these types at the boundary.
package models

// Record is any server-held entity shown in a list view. ID is assigned by
// the server and is zero for an unsaved draft.
type Record interface {
	RecordID() int64
}

// Relation is an {id, name} reference to another entity (category, industry,
// product/service).
type Relation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the operator record returned by the login endpoint.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RelationIDs returns the ids of rs in order.
func RelationIDs(rs []Relation) []int64 {
	ids := make([]int64, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
