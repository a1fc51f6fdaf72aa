package stockbook

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// closedEpsilon is the quantity below which a position is considered closed.
var closedEpsilon = decimal.New(1, -4)

// Key identifies a cost-basis ledger: an instrument, optionally at one broker.
// Broker is empty when brokers are combined.
type Key struct {
	Ticker string
	Broker string
}

func (k Key) String() string {
	if k.Broker == "" {
		return k.Ticker
	}
	return k.Ticker + "|" + k.Broker
}

// Options control a replay.
type Options struct {
	PortfolioID    string // only replay this portfolio's transactions, all when empty.
	Broker         string // only replay transactions of this broker, all when empty.
	CombineBrokers bool   // one ledger per ticker instead of one per ticker and broker.

	// Prices are manual price overrides, by ticker. They win over Quotes.
	Prices map[string]decimal.Decimal
	// Quotes are prices from a price source, by ticker.
	Quotes map[string]decimal.Decimal
}

// key returns the grouping key for tx.
func (o Options) key(tx Transaction) Key {
	if o.CombineBrokers {
		return Key{Ticker: tx.Ticker}
	}
	return Key{Ticker: tx.Ticker, Broker: tx.BrokerOrUnknown()}
}

// accept reports whether tx belongs to the replayed portfolio and broker.
func (o Options) accept(tx Transaction) bool {
	if o.PortfolioID != "" && tx.PortfolioID != o.PortfolioID {
		return false
	}
	if o.Broker != "" && tx.BrokerOrUnknown() != o.Broker {
		return false
	}
	return true
}

// Result is the outcome of a replay.
type Result struct {
	Holdings     []Holding       // open positions, sorted by ticker then broker.
	Realized     []RealizedTrade // one per SELL, in replay order.
	NetDividends decimal.Decimal // gross dividends minus withholding tax.
	Dividends    []DividendIncome
	Activity     Activity
}

// Stats computes the portfolio statistics of the result.
func (r Result) Stats() Stats {
	return ComputeStats(r.Holdings, r.Realized, r.NetDividends)
}

// Holding returns the open holding for key k, if any.
func (r Result) Holding(k Key) (Holding, bool) {
	i := slices.IndexFunc(r.Holdings, func(h Holding) bool { return h.Key == k })
	if i < 0 {
		return Holding{}, false
	}
	return r.Holdings[i], true
}

// Replay replays transactions in chronological order into holdings, realized
// trades, dividends and account activity.
//
// Replay is a pure function of its input: txs is not modified, and replaying
// the same transactions twice gives identical results. It never fails: sells
// beyond the held quantity are capped, and missing prices fall back to the
// average cost.
func Replay(txs []Transaction, opts Options) Result {
	accepted := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if opts.accept(tx) {
			accepted = append(accepted, tx)
		}
	}
	SortTransactions(accepted)

	ledger := newCostLedger()
	dividends := newDividendAggregator()
	var activity Activity
	for _, tx := range accepted {
		switch tx.Type {
		case TxBuy:
			ledger.buy(opts.key(tx), tx)
		case TxSell:
			ledger.sell(opts.key(tx), tx)
		case TxDividend:
			dividends.add(tx)
		default:
			activity.add(tx)
		}
	}

	return Result{
		Holdings:     ledger.holdings(opts),
		Realized:     ledger.realized,
		NetDividends: dividends.total,
		Dividends:    dividends.incomes(),
		Activity:     activity,
	}
}

// SortTransactions sorts txs in place by date, then by type priority (BUY
// before DIVIDEND before SELL before everything else), then keeps the
// original order.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Type.priority(), b.Type.priority())
	})
}

// position is the running state of a single cost-basis ledger.
type position struct {
	quantity   decimal.Decimal
	avgPrice   decimal.Decimal
	commission decimal.Decimal
	tax        decimal.Decimal
	cdc        decimal.Decimal
}

// costLedger keeps one average-cost position per key, in insertion order.
type costLedger struct {
	keys      []Key
	positions map[Key]*position
	realized  []RealizedTrade
}

func newCostLedger() *costLedger {
	return &costLedger{positions: make(map[Key]*position)}
}

// position returns the position for k, creating it on first use.
func (l *costLedger) position(k Key) *position {
	p, ok := l.positions[k]
	if !ok {
		p = &position{}
		l.positions[k] = p
		l.keys = append(l.keys, k)
	}
	return p
}

// buy adds tx to the position and recomputes the average price, fees included.
func (l *costLedger) buy(k Key, tx Transaction) {
	p := l.position(k)
	quantity := p.quantity.Add(tx.Quantity)
	if !quantity.IsZero() {
		cost := p.quantity.Mul(p.avgPrice).Add(tx.Gross()).Add(tx.Fees())
		p.avgPrice = cost.Div(quantity)
	}
	p.quantity = quantity
	p.commission = p.commission.Add(tx.Commission)
	p.tax = p.tax.Add(tx.Tax)
	p.cdc = p.cdc.Add(tx.CDCCharges)
}

// sell realizes tx against the position at the current average price.
//
// The sold quantity is capped to the held quantity. The average price is
// left untouched; accumulated fees are written down in proportion to the
// sold fraction.
func (l *costLedger) sell(k Key, tx Transaction) {
	p := l.position(k)
	held := p.quantity
	sold := decimal.Min(held, tx.Quantity)
	if sold.IsNegative() {
		sold = decimal.Zero
	}

	fees := tx.Fees()
	costBasis := sold.Mul(p.avgPrice)
	proceeds := sold.Mul(tx.Price).Sub(fees)
	l.realized = append(l.realized, RealizedTrade{
		TransactionID: tx.ID,
		Key:           k,
		Date:          tx.Date,
		Quantity:      sold,
		BuyAvg:        p.avgPrice,
		SellPrice:     tx.Price,
		Fees:          fees,
		Profit:        proceeds.Sub(costBasis),
	})

	if held.IsPositive() {
		p.commission = p.commission.Sub(p.commission.Mul(sold).Div(held))
		p.tax = p.tax.Sub(p.tax.Mul(sold).Div(held))
		p.cdc = p.cdc.Sub(p.cdc.Mul(sold).Div(held))
	}
	p.quantity = held.Sub(sold)
}

// holdings returns the open positions as Holdings, sorted by key.
func (l *costLedger) holdings(opts Options) []Holding {
	keys := slices.Clone(l.keys)
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Ticker, b.Ticker); c != 0 {
			return c
		}
		return cmp.Compare(a.Broker, b.Broker)
	})

	holdings := make([]Holding, 0, len(keys))
	for _, k := range keys {
		p := l.positions[k]
		if p.quantity.LessThan(closedEpsilon) {
			continue
		}
		h := Holding{
			Key:             k,
			Quantity:        p.quantity,
			AvgPrice:        p.avgPrice,
			TotalCommission: p.commission,
			TotalTax:        p.tax,
			TotalCDC:        p.cdc,
		}
		h.CurrentPrice, h.PriceSource = resolvePrice(k.Ticker, p.avgPrice, opts)
		holdings = append(holdings, h)
	}
	return holdings
}
