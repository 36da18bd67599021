package category

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/financeapp/statement-engine/internal/models"
)

func TestCategorizeExpenses(t *testing.T) {
	tax := New()
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		description string
		want        models.Category
	}{
		{"food delivery", "Swiggy Order 12345", models.CategoryFood},
		{"restaurant", "Hotel Sai Prasad", models.CategoryFood},
		{"ride hailing", "UBER RIDES", models.CategoryTransportation},
		{"fuel", "HP Petrol Pump", models.CategoryTransportation},
		{"marketplace", "Amazon Pay India", models.CategoryShopping},
		{"quick commerce", "Blinkit groceries", models.CategoryShopping},
		{"electricity", "MSEDCL electricity bill", models.CategoryUtilities},
		{"flight", "Indigo flight booking", models.CategoryTravel},
		{"tuition", "College fees semester 2", models.CategoryEducation},
		{"pharmacy", "Apollo Pharmacy", models.CategoryHealthcare},
		{"broking", "Zerodha funds added", models.CategoryInvestment},
		{"contact roster", "Rahul payment", models.CategoryFriendsTransfers},
		{"no match", "XYZQWK", models.CategoryOtherExpense},
		{"empty", "", models.CategoryOtherExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tax.Categorize(tt.description, amount, models.Expense)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategorizeIncome(t *testing.T) {
	tax := New()
	amount := decimal.NewFromInt(50000)

	tests := []struct {
		name        string
		description string
		want        models.Category
	}{
		{"salary credit", "ACME CORP SALARY DEC", models.CategorySalary},
		{"consulting", "Freelance project invoice", models.CategoryFreelance},
		{"interest", "Int.Pd quarterly", models.CategoryInvestment},
		{"p2p credit", "Received from Priya", models.CategoryFriendsTransfers},
		{"no match", "XYZQWK", models.CategoryOtherIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tax.Categorize(tt.description, amount, models.Income)
			assert.Equal(t, tt.want, got)
		})
	}
}

// "hotel" belongs to both the food and travel keyword sets; the food rule
// comes first and must win.
func TestCategorizeOrderSensitivity(t *testing.T) {
	tax := New()
	got := tax.Categorize("Hotel Blue Diamond", decimal.NewFromInt(800), models.Expense)
	assert.Equal(t, models.CategoryFood, got)
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	tax := New()
	amount := decimal.NewFromInt(200)
	assert.Equal(t,
		tax.Categorize("SWIGGY ORDER", amount, models.Expense),
		tax.Categorize("swiggy order", amount, models.Expense))
}

func TestWithTransferContacts(t *testing.T) {
	tax := New(WithTransferContacts([]string{"Asha"}))
	amount := decimal.NewFromInt(500)

	assert.Equal(t, models.CategoryFriendsTransfers,
		tax.Categorize("Asha birthday gift", amount, models.Expense))

	// The default roster is replaced, not extended. "rahul" alone should
	// no longer match the contacts entry, though generic transfer keywords
	// still apply to other descriptions.
	got := tax.Categorize("rahul", amount, models.Expense)
	assert.Equal(t, models.CategoryOtherExpense, got)
}

func TestCategorizeAlwaysValidForDirection(t *testing.T) {
	tax := New()
	amount := decimal.NewFromInt(42)
	descriptions := []string{
		"Swiggy", "Uber", "random text", "", "Received from Priya",
		"salary", "Hotel", "Zerodha", "transfer to savings",
	}
	for _, desc := range descriptions {
		for _, dir := range []models.Direction{models.Income, models.Expense} {
			got := tax.Categorize(desc, amount, dir)
			assert.True(t, got.ValidFor(dir), "category %s invalid for %s (desc %q)", got, dir, desc)
		}
	}
}
