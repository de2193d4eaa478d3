package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayment() paymentReq {
	return paymentReq{
		Email:      "fan@example.com",
		FirstName:  "Sam",
		LastName:   "Rivers",
		Address:    "12 Side St",
		City:       "Austin",
		State:      "TX",
		Zip:        "78701",
		CardNumber: "4242 4242 4242 4242",
		Expiry:     "09/27",
		CVV:        "123",
	}
}

func TestPaymentReqValidate(t *testing.T) {
	t.Run("valid payment passes", func(t *testing.T) {
		req := validPayment()
		assert.Nil(t, req.validate())
	})

	t.Run("every contact field required", func(t *testing.T) {
		errs := (&paymentReq{}).validate()
		require.NotNil(t, errs)
		for _, field := range []string{"email", "firstName", "lastName", "address",
			"city", "state", "zip", "cardNumber", "expiry", "cvv"} {
			assert.Contains(t, errs, field)
		}
	})

	t.Run("bad email shape", func(t *testing.T) {
		req := validPayment()
		req.Email = "not-an-email"
		assert.Contains(t, req.validate(), "email")
	})

	t.Run("card number length bounds", func(t *testing.T) {
		req := validPayment()
		req.CardNumber = "1234"
		assert.Contains(t, req.validate(), "cardNumber")

		req.CardNumber = "4242abcd42424242"
		assert.Contains(t, req.validate(), "cardNumber")
	})

	t.Run("card number spaces tolerated", func(t *testing.T) {
		req := validPayment()
		req.CardNumber = "4242 4242 4242 4242"
		assert.Nil(t, req.validate())
	})

	t.Run("expiry format", func(t *testing.T) {
		req := validPayment()
		for _, bad := range []string{"2027-09", "9/27", "13/27", "september"} {
			req.Expiry = bad
			assert.Contains(t, req.validate(), "expiry", "expiry=%q", bad)
		}
	})

	t.Run("cvv three or four digits", func(t *testing.T) {
		req := validPayment()
		req.CVV = "12"
		assert.Contains(t, req.validate(), "cvv")
		req.CVV = "12345"
		assert.Contains(t, req.validate(), "cvv")
		req.CVV = "1234"
		assert.Nil(t, req.validate())
	})
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@b.co", "fan@mail.example.com", "x.y+z@d.io"}
	bad := []string{"", "@b.co", "a@", "a@b", "a b@c.co", "a@b."}
	for _, e := range good {
		assert.True(t, validEmail(e), "email=%q", e)
	}
	for _, e := range bad {
		assert.False(t, validEmail(e), "email=%q", e)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.True(t, digitsOnly("0123456789"))
	assert.False(t, digitsOnly(""))
	assert.False(t, digitsOnly("12a4"))
	assert.False(t, digitsOnly("12 34"))
}
