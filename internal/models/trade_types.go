package models

// TradedAsset is an asset in a proposed trade with optional salary retention
// by the club sending it.
type TradedAsset struct {
	Asset            Asset
	RetentionPercent float64 // 0-100, where 50 = 50% retention
}

// RetainedSalary is the part of the salary the sending club keeps paying.
func (ta TradedAsset) RetainedSalary() float64 {
	if ta.RetentionPercent <= 0 {
		return 0
	}
	return ta.Asset.Salary * ta.RetentionPercent / 100.0
}

// TradedSalary is the salary the receiving club takes on.
func (ta TradedAsset) TradedSalary() float64 {
	return ta.Asset.Salary - ta.RetainedSalary()
}

// Received returns the asset as the receiving club sees it: same player,
// carrying only the traded part of the salary.
func (ta TradedAsset) Received() Asset {
	return ta.Asset.WithContract(ta.TradedSalary(), ta.Asset.YearsRemaining)
}
