package donations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"json number", float64(250), 250, true},
		{"numeric string", "99.50", 99.5, true},
		{"zero", float64(0), 0, false},
		{"negative", float64(-5), 0, false},
		{"negative string", "-5", 0, false},
		{"non-numeric string", "ten", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
