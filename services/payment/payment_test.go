package payment

import (
	"sync/atomic"
	"testing"
	"time"

	"vijayfix/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *Provider {
	return NewProvider(Config{
		ProcessingDelay: 10 * time.Millisecond,
		SuccessDelay:    10 * time.Millisecond,
		Currency:        "INR",
	}, nil)
}

func waitDone(t *testing.T, c *Checkout) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("checkout did not finish")
	}
}

func TestCheckout_PaySucceeds(t *testing.T) {
	p := newTestProvider()
	invoices := make(chan models.Invoice, 1)

	c, err := p.Open("BK-1", decimal.NewFromInt(700), func(inv models.Invoice) { invoices <- inv })
	require.NoError(t, err)
	assert.Equal(t, models.StepOptions, c.View().Step)

	require.NoError(t, c.Pay(models.MethodUPI))
	assert.Equal(t, models.StepProcessing, c.View().Step)
	assert.ErrorIs(t, c.Pay(models.MethodCard), ErrCheckoutStarted)

	waitDone(t, c)
	inv := <-invoices
	assert.Equal(t, "BK-1", inv.BookingID)
	assert.Equal(t, "paid", inv.Status)
	assert.Equal(t, models.MethodUPI, inv.Method)
	assert.True(t, inv.Amount.Equal(decimal.NewFromInt(700)))

	v := c.View()
	assert.Equal(t, models.StepSuccess, v.Step)
	require.NotNil(t, v.Invoice)
	assert.Equal(t, inv.InvoiceID, v.Invoice.InvoiceID)

	assert.ErrorIs(t, c.Close(), ErrCheckoutFinished)
}

func TestCheckout_CloseAbandons(t *testing.T) {
	p := newTestProvider()
	var called int32

	c, err := p.Open("BK-1", decimal.NewFromInt(700), func(models.Invoice) { atomic.AddInt32(&called, 1) })
	require.NoError(t, err)
	require.NoError(t, c.Pay(models.MethodCard))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&called))
	assert.Equal(t, models.StepClosed, c.View().Step)
	assert.ErrorIs(t, c.Pay(models.MethodUPI), ErrCheckoutFinished)
}

func TestCheckout_Validation(t *testing.T) {
	p := newTestProvider()

	_, err := p.Open("BK-1", decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	c, err := p.Open("BK-1", decimal.NewFromInt(1), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Pay("cash"), ErrInvalidMethod)
	assert.Equal(t, models.StepOptions, c.View().Step)
}

func TestProvider_Lookup(t *testing.T) {
	p := newTestProvider()
	c, err := p.Open("BK-1", decimal.NewFromInt(1), nil)
	require.NoError(t, err)

	got, err := p.Checkout(c.ID())
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = p.Checkout("missing")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}

func TestProvider_OneOpenCheckoutPerBooking(t *testing.T) {
	p := newTestProvider()
	first, err := p.Open("BK-1", decimal.NewFromInt(700), nil)
	require.NoError(t, err)

	_, err = p.Open("BK-1", decimal.NewFromInt(700), nil)
	assert.ErrorIs(t, err, ErrCheckoutExists)

	_, err = p.Open("BK-2", decimal.NewFromInt(700), nil)
	assert.NoError(t, err)

	require.NoError(t, first.Close())
	_, err = p.Open("BK-1", decimal.NewFromInt(700), nil)
	assert.NoError(t, err)
}
