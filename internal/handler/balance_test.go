package handler

import (
	"testing"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(typ string, amount float64, paid bool) models.Transaction {
	return models.Transaction{
		Type:   typ,
		Amount: decimal.NewFromFloat(amount),
		IsPaid: paid,
	}
}

func TestGroupBalance(t *testing.T) {
	cases := []struct {
		name string
		txs  []models.Transaction
		want string
	}{
		{"empty", nil, "0"},
		{"income only", []models.Transaction{
			tx(models.TypeIncome, 100, true),
			tx(models.TypeIncome, 50.25, true),
		}, "150.25"},
		{"income minus expense", []models.Transaction{
			tx(models.TypeIncome, 100, true),
			tx(models.TypeExpense, 40, true),
		}, "60"},
		{"unpaid rows ignored", []models.Transaction{
			tx(models.TypeIncome, 100, true),
			tx(models.TypeExpense, 40, false),
			tx(models.TypeIncome, 999, false),
		}, "100"},
		{"negative result", []models.Transaction{
			tx(models.TypeExpense, 75.50, true),
		}, "-75.5"},
		{"cent precision survives", []models.Transaction{
			tx(models.TypeIncome, 0.1, true),
			tx(models.TypeIncome, 0.2, true),
			tx(models.TypeExpense, 0.3, true),
		}, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := groupBalance(tc.txs)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", got, tc.want)
		})
	}
}
