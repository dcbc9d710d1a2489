// Package tradingpost tracks purchases of items on the Guild Wars 2 trading
// post and values them against live market quotes.
//
// The core functionalities include:
//   - Ledger Management: recording purchase lots per item, addressed by their
//     position in the item's list, and persisted as a single document on every
//     change through a swappable Backend.
//   - Valuation: a stateless engine combining a Position (quantity and
//     weighted-average unit price) with a Quote (buy and sell prices) into a
//     Summary of cost basis, market value net of the trading post fee, and
//     profit.
//   - Currency: the Gold type holds exact decimal amounts of the three-tier
//     currency (100 copper per silver, 100 silver per gold) and converts them
//     to and from their denominations for display.
//
// This package serves as the foundational logic for the `tp` command-line
// tool. Market data is fetched by collaborators such as package gw2 and
// handed to the valuation as already-resolved quotes.
package tradingpost
