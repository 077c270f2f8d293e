package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhatsApp(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "formatted with country code", in: "+55 (11) 98765-4321", want: "5511987654321"},
		{name: "bare digits with country code", in: "5511987654321", want: "5511987654321"},
		{name: "local mobile gets country code", in: "(11) 98765-4321", want: "5511987654321"},
		{name: "local landline gets country code", in: "11 3456-7890", want: "551134567890"},
		{name: "too short", in: "98765", wantErr: true},
		{name: "too long", in: "1234567890123456", wantErr: true},
		{name: "no digits", in: "me chama no zap", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeWhatsApp(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestE164(t *testing.T) {
	assert.Equal(t, "+5511987654321", E164("5511987654321"))
}
