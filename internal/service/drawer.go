package service

import "lottopos/internal/money"

// Drawer reconciliation math. Pure functions over cents so the arithmetic is
// testable without a store.

// expectedDrawerValue is the cash the drawer should hold for a shift: online
// sales taken in plus instant tickets sold, minus everything paid out.
func expectedDrawerValue(deltaOnlineSales, instantValue, deltaOnlinePayouts, deltaInstantPayouts money.Cents) money.Cents {
	return deltaOnlineSales + instantValue - (deltaOnlinePayouts + deltaInstantPayouts)
}

// drawerDifference is expected minus counted. Positive means a shortfall
// (the drawer held less cash than expected), negative an overage.
func drawerDifference(expected, counted money.Cents) money.Cents {
	return expected - counted
}
