// Package category assigns a spending/income bucket to a transaction
// description. The taxonomy is an ordered keyword table: the first rule
// whose keyword set matches wins, so rule order is load-bearing (several
// buckets share keywords, e.g. "hotel" appears under both food and travel
// and resolves to food by position).
package category

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financeapp/statement-engine/internal/models"
)

type rule struct {
	category models.Category
	keywords []string
}

var incomeRules = []rule{
	{models.CategorySalary, []string{"salary", "wages", "payroll"}},
	{models.CategoryFreelance, []string{"freelance", "consulting"}},
	{models.CategoryInvestment, []string{
		"dividend", "interest", "profit", "returns", "mutual fund", "int.pd", "cashback",
	}},
	{models.CategoryBusiness, []string{"business", "revenue", "sales"}},
	{models.CategoryFriendsTransfers, []string{"received from", "transfer from"}},
}

var expenseRules = []rule{
	{models.CategoryFood, []string{
		"swiggy", "zomato", "bhojnalay", "biryani", "dabeli", "roll", "juice",
		"idli", "vada", "pav", "dosa", "misal", "chicken", "bhel", "sandwich",
		"prasad mess", "canteen", "hotel", "kfc", "mcdonald", "domino", "pizza",
		"burger", "snacks",
	}},
	{models.CategoryTransportation, []string{
		"uber", "ola", "redbus", "metro", "fuel", "petrol", "diesel", "parking",
		"toll", "bus", "auto", "rickshaw", "rapido", "cab",
	}},
	{models.CategoryShopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "dmart", "reliance digital",
		"croma", "electronics", "mobile", "gadget", "device", "grocery",
		"vegetable", "fruit", "blinkit", "zepto", "grofers", "star bazaar",
		"bigbasket", "shopping",
	}},
	{models.CategoryUtilities, []string{
		"electricity", "msedcl", "water", "gas", "wifi", "broadband",
		"mobile recharge", "airtel", "vi", "jio", "vodafone", "idea", "bsnl",
		"recharge", "bill payment",
	}},
	{models.CategoryTravel, []string{
		"travel", "flight", "ticket", "oyo", "resort", "lodge", "hotel",
		"accommodation", "trip",
	}},
	{models.CategoryEducation, []string{
		"school", "college", "fees", "course", "training", "udemy", "byju",
		"academy", "learning",
	}},
	{models.CategoryHealthcare, []string{
		"hospital", "clinic", "pharmacy", "medical", "medicine", "chemist",
	}},
	{models.CategoryInvestment, []string{
		"groww", "zerodha", "upstox", "sip", "investment", "stocks",
		"mutual fund", "rd", "fd",
	}},
	// Personal transfer keywords; the final friends rule also matches a
	// roster of contact names appended at construction time.
	{models.CategoryFriendsTransfers, []string{"transfer", "upi/", "to", "pagar"}},
}

// defaultContacts is the historical contact-name roster keyed into the
// friends/transfers rule. Callers can replace it via WithTransferContacts.
var defaultContacts = []string{
	"rahul", "sandip", "nilesh", "shubham", "kirti", "sujit", "pawar",
	"manoj", "faeem",
}

// Taxonomy is a read-only ordered rule table, safe for concurrent use.
type Taxonomy struct {
	income  []rule
	expense []rule
}

// Option customizes taxonomy construction.
type Option func(*options)

type options struct {
	contacts []string
}

// WithTransferContacts replaces the contact-name roster matched by the
// friends/transfers expense rule.
func WithTransferContacts(names []string) Option {
	return func(o *options) { o.contacts = names }
}

// New builds the taxonomy. With no options the rule set matches the
// original keyword tables exactly.
func New(opts ...Option) *Taxonomy {
	o := options{contacts: defaultContacts}
	for _, opt := range opts {
		opt(&o)
	}

	expense := make([]rule, len(expenseRules))
	copy(expense, expenseRules)
	last := expense[len(expense)-1]
	merged := make([]string, 0, len(last.keywords)+len(o.contacts))
	merged = append(merged, last.keywords...)
	for _, name := range o.contacts {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			merged = append(merged, name)
		}
	}
	expense[len(expense)-1] = rule{category: last.category, keywords: merged}

	return &Taxonomy{income: incomeRules, expense: expense}
}

// Categorize resolves the category for a description. It never fails:
// an empty or unmatched description falls back to the direction's OTHER
// bucket. Matching is case-insensitive substring, first rule wins.
func (t *Taxonomy) Categorize(description string, amount decimal.Decimal, dir models.Direction) models.Category {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return models.DefaultCategory(dir)
	}

	rules := t.expense
	if dir == models.Income {
		rules = t.income
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}
	return models.DefaultCategory(dir)
}
