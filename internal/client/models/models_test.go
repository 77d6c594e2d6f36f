package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkType_Valid(t *testing.T) {
	for _, w := range WorkTypes {
		assert.True(t, w.Valid(), w)
	}
	assert.False(t, WorkType("Remote").Valid())
	assert.False(t, WorkType("").Valid())
}

func TestRelationIDs(t *testing.T) {
	ids := RelationIDs([]Relation{{ID: 3, Name: "News"}, {ID: 1, Name: "Tech"}})
	require.Equal(t, []int64{3, 1}, ids)
	require.Empty(t, RelationIDs(nil))
}

func TestRecordIDs(t *testing.T) {
	recs := []Record{Article{ID: 1}, Career{ID: 2}, Project{ID: 3}, Product{ID: 4}}
	for i, r := range recs {
		assert.Equal(t, int64(i+1), r.RecordID())
	}
}

func TestResolveImageURL(t *testing.T) {
	const origin = "http://127.0.0.1:8000/"
	tests := []struct {
		ref, want string
	}{
		{"", ""},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"https://cdn.example/x.png", "https://cdn.example/x.png"},
		{"/storage/products/a.png", "http://127.0.0.1:8000/storage/products/a.png"},
		{"products/a.png", "products/a.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveImageURL(origin, tt.ref), tt.ref)
	}
}
