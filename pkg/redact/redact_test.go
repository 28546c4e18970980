package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Табличные тесты редактирования API-ключей и строк подключения.

func TestAPIKey_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "prefix_and_secret", in: "ab12.s3cr3t", want: "ab12.***"},
		{name: "secret_with_dots", in: "ab12.s3.cr.et", want: "ab12.***"},
		{name: "no_dot", in: "garbage", want: "***"},
		{name: "empty_prefix", in: ".secret", want: "***"},
		{name: "empty", in: "", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, APIKey(tt.in))
		})
	}
}

func TestURL_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "postgres_password", in: "postgres://forem:pass@db:5432/forem?sslmode=disable", want: "postgres://forem:xxxxx@db:5432/forem?sslmode=disable"},
		{name: "mongo_no_password", in: "mongodb://mongo:27017/forem", want: "mongodb://mongo:27017/forem"},
		{name: "not_a_url", in: "host=db user=forem", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, URL(tt.in))
		})
	}
}

func TestToken_Literal(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
}
