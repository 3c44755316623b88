package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiranamart/storefront-client/cart"
)

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	c := NewController(cart.New(), nil, nil, nil)
	c.state = StateSubmitting

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Equal(t, StateSubmitting, c.State())
}

func TestEpochBumpDiscardsStaleCompletion(t *testing.T) {
	c := NewController(cart.New(), nil, nil, nil)

	before := c.epoch
	c.Reset()
	assert.Equal(t, before+1, c.epoch, "Reset invalidates any submission in flight")
}
