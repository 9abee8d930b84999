package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayPhone(t *testing.T) {
	tests := []struct {
		name string
		waID string
		want string
	}{
		{name: "brazilian mobile", waID: "5511987654321", want: "+55 11 98765-4321"},
		{name: "brazilian landline", waID: "551133334444", want: "+55 11 3333-4444"},
		{name: "brazilian unexpected length", waID: "55119876543210", want: "+55 11 9876543210"},
		{name: "foreign number", waID: "14155552671", want: "+14155552671"},
		{name: "surrounding whitespace", waID: " 5511987654321 ", want: "+55 11 98765-4321"},
		{name: "empty", waID: "", want: ""},
		{name: "blank", waID: "   ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToDisplayPhone(tc.waID))
		})
	}
}
