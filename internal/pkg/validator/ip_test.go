package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"192.168.1.10", "192.168.1.10", true},
		{" 10.0.0.1 ", "10.0.0.1", true},
		{"fe80::1%eth0", "fe80::1", true},
		{"2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1", true},
		{"", "", false},
		{"not-an-ip", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeIP(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientIPKey(t *testing.T) {
	assert.Equal(t, "10.0.0.1", ClientIPKey("10.0.0.1", "unknown"))
	assert.Equal(t, "unknown", ClientIPKey("", "unknown"))
}
