package tracker

// INR is a helper for test to create money from const
func INR(v float64) Money { return M(v, "INR") }

// trade is a helper for test to create a trade from const
func trade(symbol string, shares, price float64, day string) Trade {
	return NewTrade(symbol, Q(shares), INR(price), day)
}
