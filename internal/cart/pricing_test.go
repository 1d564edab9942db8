package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/cart"
)

func TestCartTotal_OverallDiscount(t *testing.T) {
	p := product("gbc-001", "100", 10)
	c, _, err := cart.New().AddItem(p)
	require.NoError(t, err)
	c, _, err = c.SetQuantity(p, 2)
	require.NoError(t, err)
	c = c.SetOverallDiscount(dec("50"))

	assert.True(t, cart.CartSubtotal(c).Equal(dec("200")))
	assert.True(t, cart.CartTotal(c).Equal(dec("150")))
	assert.Equal(t, 2, cart.TotalItemCount(c))
}

func TestCartTotal_LineDiscountAboveLineSubtotal(t *testing.T) {
	p := product("cable", "10", 10)
	c, _, _ := cart.New().AddItem(p)
	c, _, _ = c.SetQuantity(p, 2)
	c, err := c.SetLineDiscount(p.ID, dec("30"))
	require.NoError(t, err)

	assert.True(t, cart.LineSubtotal(c.Lines[0]).Equal(dec("-10")))
	assert.True(t, cart.CartSubtotal(c).Equal(dec("-10")))
	assert.True(t, cart.CartTotal(c).IsZero())
}

func TestCartTotal_ExcessLineDiscountOffsetsOtherLines(t *testing.T) {
	a, b := product("a", "10", 10), product("b", "40", 10)
	c, _, _ := cart.New().AddItem(a)
	c, _, _ = c.AddItem(b)
	c, _ = c.SetLineDiscount("a", dec("15"))

	// (10 - 15) + 40
	assert.True(t, cart.CartTotal(c).Equal(dec("35")))
}

func TestCartTotal_EmptyCart(t *testing.T) {
	c := cart.New()
	assert.True(t, cart.CartSubtotal(c).IsZero())
	assert.True(t, cart.CartTotal(c).IsZero())
	assert.Equal(t, 0, cart.TotalItemCount(c))
}

func TestComputeTotals_RoundsOnlyForOutput(t *testing.T) {
	p := product("pen", "0.333", 10)
	c, _, _ := cart.New().AddItem(p)
	c, _, _ = c.SetQuantity(p, 3)

	// 0.333 * 3 = 0.999 accumulated exactly, rounded once
	assert.True(t, cart.CartTotal(c).Equal(dec("0.999")))
	tot := cart.ComputeTotals(c)
	assert.Equal(t, "1", tot.Total.String())
	assert.Equal(t, "0.33", tot.Lines[0].UnitPrice.String())
	assert.Equal(t, 3, tot.ItemCount)
}
