package domain

// DepositType способ расчёта депозита
type DepositType string

const (
	DepositNone       DepositType = "none"
	DepositPercentage DepositType = "percentage"
	DepositFixed      DepositType = "fixed"
)

// DepositRules правила депозита бизнеса
type DepositRules struct {
	Type   DepositType
	Amount float64 // процент или фиксированная сумма
}

// Calculate returns the deposit for the given total; never exceeds the total
func (d DepositRules) Calculate(total float64) float64 {
	var deposit float64
	switch d.Type {
	case DepositPercentage:
		deposit = total * d.Amount / 100
	case DepositFixed:
		deposit = d.Amount
	default:
		return 0
	}
	return clamp(deposit, 0, total)
}

// Pricing денежная часть записи
type Pricing struct {
	Subtotal       float64
	DiscountAmount float64
	PromotionID    *int64
	Total          float64 // subtotal - discount
	DepositAmount  float64
	DepositPaid    bool
	Tip            float64
	FinalTotal     float64 // total + tip
}

// NewPricing считает цену записи по снимкам услуг.
// Скидка ограничивается суммой услуг, чтобы итог не стал отрицательным.
func NewPricing(services []BookedService, discount float64, promotionID *int64, deposit DepositRules) Pricing {
	subtotal := Subtotal(services)
	discount = clamp(discount, 0, subtotal)
	total := subtotal - discount

	return Pricing{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		PromotionID:    promotionID,
		Total:          total,
		DepositAmount:  deposit.Calculate(total),
		FinalTotal:     total,
	}
}

// Subtotal сумма цен услуг
func Subtotal(services []BookedService) float64 {
	var sum float64
	for _, s := range services {
		sum += s.Price
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
