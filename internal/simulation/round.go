package simulation

import "github.com/shopspring/decimal"

// Round округляет до places знаков (половина от нуля)
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
