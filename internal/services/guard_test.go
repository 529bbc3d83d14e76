package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		actor   uuid.UUID
		isAdmin bool
		target  uuid.UUID
		want    bool
	}{
		{"self", self, false, self, true},
		{"other user", self, false, other, false},
		{"admin on other user", self, true, other, true},
		{"admin on self", self, true, self, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.actor, tt.isAdmin, tt.target))
		})
	}
}
