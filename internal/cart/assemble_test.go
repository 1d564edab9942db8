package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/cart"
)

func TestAssemble_MapsCart(t *testing.T) {
	a, b := product("a", "19.99", 10), product("b", "5", 10)
	c, _, _ := cart.New().AddItem(a)
	c, _, _ = c.AddItem(b)
	c, _, _ = c.SetQuantity(b, 3)
	c, _ = c.SetLineDiscount("b", dec("1.50"))
	c = c.SetOverallDiscount(dec("2")).
		SetPaymentMethod(cart.PaymentMobileMoney).
		SetCustomer(cart.CustomerSelection{Kind: cart.CustomerWalkIn, Phone: "0712345678"})

	cust, err := cart.Validate(c)
	require.NoError(t, err)
	p := cart.Assemble(c, cust)

	require.Len(t, p.Items, 2)
	assert.Equal(t, "a", p.Items[0].ProductID)
	assert.Equal(t, "b", p.Items[1].ProductID)
	assert.Equal(t, 3, p.Items[1].Quantity)
	assert.True(t, p.Items[1].DiscountAmount.Equal(dec("1.5")))
	assert.Nil(t, p.CustomerID)
	assert.Nil(t, p.Notes)
	assert.Equal(t, cart.PaymentMobileMoney, p.PaymentMethod)
	assert.Equal(t, 4, p.ItemCount())
	assert.Len(t, c.Lines, 2, "assemble leaves the cart alone")
}

func TestAssemble_TotalMatchesCart(t *testing.T) {
	carts := []cart.Cart{}

	a, b := product("a", "100", 10), product("b", "10", 10)
	c, _, _ := cart.New().AddItem(a)
	c, _, _ = c.SetQuantity(a, 2)
	carts = append(carts, c.SetOverallDiscount(dec("50")))

	d, _, _ := cart.New().AddItem(b)
	d, _, _ = d.SetQuantity(b, 2)
	d, _ = d.SetLineDiscount("b", dec("30"))
	carts = append(carts, d)

	e, _, _ := cart.New().AddItem(a)
	e, _, _ = e.AddItem(b)
	carts = append(carts, e.SetOverallDiscount(dec("500")))

	for _, c := range carts {
		c = c.SetCustomer(cart.CustomerSelection{Kind: cart.CustomerWalkIn, Phone: "0712345678"})
		cust, err := cart.Validate(c)
		require.NoError(t, err)
		p := cart.Assemble(c, cust)
		assert.True(t, p.Total().Equal(cart.CartTotal(c)), "payload %s vs cart %s", p.Total(), cart.CartTotal(c))
	}
}

func TestSalePayload_JSONShape(t *testing.T) {
	c, _, _ := cart.New().AddItem(product("gbc-001", "129.99", 3))
	c = c.SetNotes("boxed").SetCustomer(cart.CustomerSelection{Kind: cart.CustomerExisting, CustomerID: "cus-1", Name: "Kofi", Phone: "0200000000"})
	cust, err := cart.Validate(c)
	require.NoError(t, err)

	b, err := json.Marshal(cart.Assemble(c, cust))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"customer_id": "cus-1",
		"customer_name": "Kofi",
		"customer_phone": "0200000000",
		"customer_email": null,
		"items": [{"product_id": "gbc-001", "quantity": 1, "unit_price": 129.99, "discount_amount": 0}],
		"overall_discount": 0,
		"payment_method": "cash",
		"notes": "boxed"
	}`, string(b))
}
