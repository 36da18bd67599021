package models

// Category is a spending or income bucket assigned to every parsed
// transaction. A few buckets (investment, friends/transfers) are legal
// for both directions.
type Category string

const (
	// Income categories
	CategorySalary      Category = "SALARY"
	CategoryFreelance   Category = "FREELANCE"
	CategoryBusiness    Category = "BUSINESS"
	CategoryOtherIncome Category = "OTHER_INCOME"

	// Expense categories
	CategoryFood           Category = "FOOD"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryShopping       Category = "SHOPPING"
	CategoryUtilities      Category = "UTILITIES"
	CategoryTravel         Category = "TRAVEL"
	CategoryEducation      Category = "EDUCATION"
	CategoryHealthcare     Category = "HEALTHCARE"
	CategoryOtherExpense   Category = "OTHER_EXPENSE"

	// Shared across both directions
	CategoryInvestment       Category = "INVESTMENT"
	CategoryFriendsTransfers Category = "FRIENDS_TRANSFERS"
)

var incomeCategories = map[Category]bool{
	CategorySalary:           true,
	CategoryFreelance:        true,
	CategoryInvestment:       true,
	CategoryBusiness:         true,
	CategoryFriendsTransfers: true,
	CategoryOtherIncome:      true,
}

var expenseCategories = map[Category]bool{
	CategoryFood:             true,
	CategoryTransportation:   true,
	CategoryShopping:         true,
	CategoryUtilities:        true,
	CategoryTravel:           true,
	CategoryEducation:        true,
	CategoryHealthcare:       true,
	CategoryInvestment:       true,
	CategoryFriendsTransfers: true,
	CategoryOtherExpense:     true,
}

// ValidFor reports whether the category belongs to the given direction's set.
func (c Category) ValidFor(d Direction) bool {
	if d == Income {
		return incomeCategories[c]
	}
	return expenseCategories[c]
}

// DefaultCategory is the fallback bucket for a direction.
func DefaultCategory(d Direction) Category {
	if d == Income {
		return CategoryOtherIncome
	}
	return CategoryOtherExpense
}
