package stockbook

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// FlowBasis selects which transactions make the cash flows of a portfolio.
type FlowBasis int

const (
	// AutoFlows uses ExternalFlows when the portfolio has any deposit or
	// withdrawal, TradeFlows otherwise.
	AutoFlows FlowBasis = iota
	// ExternalFlows uses deposits and withdrawals only.
	ExternalFlows
	// TradeFlows uses buys, sells and dividends.
	TradeFlows
)

func (b FlowBasis) String() string {
	switch b {
	case ExternalFlows:
		return "external"
	case TradeFlows:
		return "trades"
	default:
		return "auto"
	}
}

// ParseFlowBasis parses "auto", "external" or "trades".
func ParseFlowBasis(s string) (FlowBasis, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return AutoFlows, nil
	case "external":
		return ExternalFlows, nil
	case "trades", "trade":
		return TradeFlows, nil
	}
	return AutoFlows, fmt.Errorf("invalid flow basis %q: want auto, external or trades", s)
}

// CashFlows returns the dated cash flows of the transactions accepted by
// opts, seen from the investor: money put in is negative, money taken out
// is positive. terminal is the market value of the holdings; a positive
// terminal value is added as a final inflow on day on. With external flows
// the uninvested cash balance is part of that final inflow.
//
// Trade flows use the recorded sell quantity, not the capped one.
func CashFlows(txs []Transaction, opts Options, basis FlowBasis, terminal decimal.Decimal, on date.Date) []CashFlow {
	var accepted []Transaction
	for _, tx := range txs {
		if opts.accept(tx) {
			accepted = append(accepted, tx)
		}
	}
	SortTransactions(accepted)

	if basis == AutoFlows {
		basis = TradeFlows
		for _, tx := range accepted {
			if tx.Type == TxDeposit || tx.Type == TxWithdrawal {
				basis = ExternalFlows
				break
			}
		}
	}

	var flows []CashFlow
	add := func(d date.Date, v decimal.Decimal) {
		flows = append(flows, CashFlow{Date: d, Amount: v.InexactFloat64()})
	}
	for _, tx := range accepted {
		switch {
		case basis == ExternalFlows && tx.Type == TxDeposit:
			add(tx.Date, tx.Amount().Neg())
		case basis == ExternalFlows && tx.Type == TxWithdrawal:
			add(tx.Date, tx.Amount())
		case basis == TradeFlows && tx.Type == TxBuy:
			add(tx.Date, tx.Gross().Add(tx.Fees()).Add(tx.OtherFees).Neg())
		case basis == TradeFlows && tx.Type == TxSell:
			add(tx.Date, tx.Gross().Sub(tx.Fees()).Sub(tx.OtherFees))
		case basis == TradeFlows && tx.Type == TxDividend:
			add(tx.Date, tx.Gross().Sub(tx.Tax))
		}
	}
	if basis == ExternalFlows {
		terminal = terminal.Add(cashBalance(accepted))
	}
	if terminal.IsPositive() {
		add(on, terminal)
	}
	return flows
}

// cashBalance returns the cash left in the account after txs: deposits and
// sales proceeds and net dividends, minus withdrawals, purchases and charges.
func cashBalance(txs []Transaction) decimal.Decimal {
	cash := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case TxDeposit:
			cash = cash.Add(tx.Amount())
		case TxWithdrawal, TxTax, TxAnnualFee, TxOther:
			cash = cash.Sub(tx.Amount())
		case TxBuy:
			cash = cash.Sub(tx.Gross().Add(tx.Fees()).Add(tx.OtherFees))
		case TxSell:
			cash = cash.Add(tx.Gross().Sub(tx.Fees()).Sub(tx.OtherFees))
		case TxDividend:
			cash = cash.Add(tx.Gross().Sub(tx.Tax))
		}
	}
	return cash
}

// PortfolioXIRR replays txs, values the holdings at their current price on
// day on, and returns the XIRR of the resulting cash flows.
func PortfolioXIRR(txs []Transaction, opts Options, basis FlowBasis, on date.Date) XIRRResult {
	value := Replay(txs, opts).Stats().TotalValue
	return SolveXIRR(CashFlows(txs, opts, basis, value, on), defaultXIRRGuess)
}
