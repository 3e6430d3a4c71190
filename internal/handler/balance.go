package handler

import (
	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"

	"github.com/shopspring/decimal"
)

// groupBalance sums a group's paid transactions: income adds, expense
// subtracts. Unpaid and scheduled rows contribute nothing until their
// isPaid flag flips.
func groupBalance(txs []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for i := range txs {
		t := &txs[i]
		if !t.IsPaid {
			continue
		}
		if t.Type == models.TypeIncome {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}
