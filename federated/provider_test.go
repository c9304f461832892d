package federated_test

import (
	"testing"

	"github.com/ddip/go-auth/federated"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogle(t *testing.T) {
	p := federated.Google{}

	t.Run("flat userinfo payload", func(t *testing.T) {
		attrs := map[string]any{
			"sub":   "109876543210",
			"email": "person@gmail.com",
			"name":  "Person Name",
		}

		email, err := p.ExtractEmail(attrs)
		require.NoError(t, err)
		assert.Equal(t, "person@gmail.com", email)
		assert.Equal(t, "Person Name", p.ExtractDisplayName(attrs))
		assert.Equal(t, "109876543210", p.ExtractProviderID(attrs))
	})

	t.Run("numeric sub", func(t *testing.T) {
		assert.Equal(t, "12345", p.ExtractProviderID(map[string]any{"sub": 12345}))
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := p.ExtractEmail(map[string]any{"sub": "x"})
		assert.True(t, errors.Is(err, federated.ErrMissingEmail))
	})
}

func TestKakao(t *testing.T) {
	p := federated.Kakao{}

	t.Run("nested account payload", func(t *testing.T) {
		attrs := map[string]any{
			"id": float64(2787342991),
			"kakao_account": map[string]any{
				"email": "person@kakao.com",
			},
			"properties": map[string]any{
				"nickname": "Person",
			},
		}

		email, err := p.ExtractEmail(attrs)
		require.NoError(t, err)
		assert.Equal(t, "person@kakao.com", email)
		assert.Equal(t, "Person", p.ExtractDisplayName(attrs))
		// numeric ids must not come out in scientific notation
		assert.Equal(t, "2787342991", p.ExtractProviderID(attrs))
	})

	t.Run("account without email", func(t *testing.T) {
		_, err := p.ExtractEmail(map[string]any{
			"id":            float64(1),
			"kakao_account": map[string]any{},
		})
		assert.True(t, errors.Is(err, federated.ErrMissingEmail))
	})

	t.Run("missing account object", func(t *testing.T) {
		_, err := p.ExtractEmail(map[string]any{"id": float64(1)})
		assert.True(t, errors.Is(err, federated.ErrMissingEmail))
	})
}

func TestNaver(t *testing.T) {
	p := federated.Naver{}

	t.Run("wrapped response payload", func(t *testing.T) {
		attrs := map[string]any{
			"resultcode": "00",
			"response": map[string]any{
				"id":    "naver-uid",
				"email": "person@naver.com",
				"name":  "Person",
			},
		}

		email, err := p.ExtractEmail(attrs)
		require.NoError(t, err)
		assert.Equal(t, "person@naver.com", email)
		assert.Equal(t, "Person", p.ExtractDisplayName(attrs))
		assert.Equal(t, "naver-uid", p.ExtractProviderID(attrs))
	})

	t.Run("missing response object", func(t *testing.T) {
		_, err := p.ExtractEmail(map[string]any{"resultcode": "00"})
		assert.True(t, errors.Is(err, federated.ErrMissingEmail))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("default registry knows all three providers", func(t *testing.T) {
		r := federated.DefaultRegistry()
		assert.Equal(t, []string{"google", "kakao", "naver"}, r.Names())
	})

	t.Run("lookup", func(t *testing.T) {
		r := federated.DefaultRegistry()

		p, ok := r.Lookup("kakao")
		require.True(t, ok)
		assert.Equal(t, "kakao", p.Name())

		_, ok = r.Lookup("facebook")
		assert.False(t, ok)
	})

	t.Run("resolve normalizes the payload", func(t *testing.T) {
		r := federated.DefaultRegistry()

		profile, err := r.Resolve("google", map[string]any{
			"sub":   "uid",
			"email": "person@gmail.com",
			"name":  "Person",
		})
		require.NoError(t, err)

		assert.Equal(t, &federated.Profile{
			Provider:    "google",
			ProviderID:  "uid",
			Email:       "person@gmail.com",
			DisplayName: "Person",
		}, profile)
	})

	t.Run("resolve with unknown provider", func(t *testing.T) {
		_, err := federated.DefaultRegistry().Resolve("facebook", nil)
		assert.Error(t, err)
	})
}
