package gw2

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tradingpost"
)

/*
	{
	    "id": 19721,
	    "whitelisted": false,
	    "buys": {
	        "quantity": 48251,
	        "unit_price": 2297
	    },
	    "sells": {
	        "quantity": 61005,
	        "unit_price": 2410
	    }
	}
*/

// Quote fetches the current highest buy order and lowest sell listing of the
// item.
func (c *Client) Quote(ctx context.Context, id tradingpost.ItemID) (tradingpost.Quote, error) {
	var jobj any
	addr := c.endpoint(fmt.Sprintf("/v2/commerce/prices/%d", id), nil, false)
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return tradingpost.Quote{}, fmt.Errorf("error retrieving price of %v: %w", id, err)
	}
	buy, err := copperAt(jobj, "$.buys.unit_price")
	if err != nil {
		return tradingpost.Quote{}, fmt.Errorf("error parsing price of %v: %w", id, err)
	}
	sell, err := copperAt(jobj, "$.sells.unit_price")
	if err != nil {
		return tradingpost.Quote{}, fmt.Errorf("error parsing price of %v: %w", id, err)
	}
	return tradingpost.Quote{Buy: buy, Sell: sell}, nil
}

// copperAt reads the integer number of copper at path.
func copperAt(jobj any, path string) (tradingpost.Gold, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return tradingpost.Gold{}, fmt.Errorf("%q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return tradingpost.Gold{}, fmt.Errorf("%q: not a number: %v", path, jval)
	}
	if val < 0 || val != float64(int64(val)) {
		return tradingpost.Gold{}, fmt.Errorf("%q: not a copper amount: %v", path, val)
	}
	return tradingpost.FromCopper(int64(val)), nil
}
