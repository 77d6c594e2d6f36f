package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	e := newAPIError(422, []byte(`{"message":"Invalid","errors":{"b":["b1"],"a":["a1","a2"]}}`))
	assert.Equal(t, "Invalid: a1, a2, b1", e.Error())
	assert.Equal(t, []string{"a1", "a2", "b1"}, e.Details())

	e = newAPIError(404, []byte(`not json`))
	assert.Equal(t, "404 Not Found", e.Error())
	assert.Empty(t, e.Details())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{fmt.Errorf("wrap: %w", ErrUnavailable), KindTransport},
		{context.DeadlineExceeded, KindTransport},
		{&APIError{Status: 401}, KindAuth},
		{&APIError{Status: 422}, KindValidation},
		{&APIError{Status: 404}, KindValidation},
		{&APIError{Status: 503}, KindServer},
		{errors.New("odd"), KindServer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
	assert.Equal(t, "validation", KindValidation.String())
}
