package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueReqValidate(t *testing.T) {
	valid := venueReq{
		Name:    "The Black Hall",
		City:    "Portland",
		Country: "USA",
		Address: "100 SE Stark St",
	}

	t.Run("minimal valid venue", func(t *testing.T) {
		v, errs := valid.validate()
		require.Nil(t, errs)
		require.NotNil(t, v)
		assert.Equal(t, "The Black Hall", v.Name)
		assert.Nil(t, v.Capacity)
		assert.Nil(t, v.Website)
	})

	t.Run("required fields", func(t *testing.T) {
		v, errs := (&venueReq{}).validate()
		assert.Nil(t, v)
		for _, field := range []string{"name", "city", "country", "address"} {
			assert.Contains(t, errs, field)
		}
	})

	t.Run("whitespace does not satisfy required", func(t *testing.T) {
		req := valid
		req.Name = "   "
		_, errs := req.validate()
		assert.Contains(t, errs, "name")
	})

	t.Run("overlong name", func(t *testing.T) {
		req := valid
		req.Name = strings.Repeat("a", 256)
		_, errs := req.validate()
		assert.Contains(t, errs, "name")
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		for _, bad := range []string{"0", "-5", "lots"} {
			req := valid
			req.Capacity = bad
			_, errs := req.validate()
			assert.Contains(t, errs, "capacity", "capacity=%q", bad)
		}
	})

	t.Run("capacity parsed", func(t *testing.T) {
		req := valid
		req.Capacity = "450"
		v, errs := req.validate()
		require.Nil(t, errs)
		require.NotNil(t, v.Capacity)
		assert.EqualValues(t, 450, *v.Capacity)
	})

	t.Run("website must be absolute http url", func(t *testing.T) {
		req := valid
		req.Website = "blackhall.example"
		_, errs := req.validate()
		assert.Contains(t, errs, "website")

		req.Website = "https://blackhall.example"
		v, errs := req.validate()
		require.Nil(t, errs)
		require.NotNil(t, v.Website)
	})

	t.Run("optional state kept", func(t *testing.T) {
		req := valid
		req.State = "OR"
		v, errs := req.validate()
		require.Nil(t, errs)
		require.NotNil(t, v.State)
		assert.Equal(t, "OR", *v.State)
	})
}
