package backend_test

import (
	"testing"

	"bucket-manager/core/backend"

	"github.com/stretchr/testify/assert"
)

func TestIsSystemBucket(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".rgw.control", true},
		{".pools.avail", true},
		{"photos", false},
		{"photos.2024", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backend.IsSystemBucket(tt.name))
		})
	}
}
