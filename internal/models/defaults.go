package models

// DefaultCategory is a category template seeded on signup / group creation.
type DefaultCategory struct {
	Name  string
	Emoji string
	Type  string
}

// DefaultUserCategories is seeded for every new user, in the same
// transaction that creates the user row.
var DefaultUserCategories = []DefaultCategory{
	{Name: "Salário", Emoji: "💰", Type: TypeIncome},
	{Name: "Freelance", Emoji: "💻", Type: TypeIncome},
	{Name: "Investimentos", Emoji: "📈", Type: TypeIncome},
	{Name: "Vendas", Emoji: "🛍️", Type: TypeIncome},
	{Name: "Outras Receitas", Emoji: "💵", Type: TypeIncome},

	{Name: "Alimentação", Emoji: "🍔", Type: TypeExpense},
	{Name: "Transporte", Emoji: "🚗", Type: TypeExpense},
	{Name: "Moradia", Emoji: "🏠", Type: TypeExpense},
	{Name: "Saúde", Emoji: "⚕️", Type: TypeExpense},
	{Name: "Educação", Emoji: "📚", Type: TypeExpense},
	{Name: "Lazer", Emoji: "🎬", Type: TypeExpense},
	{Name: "Compras", Emoji: "🛍️", Type: TypeExpense},
	{Name: "Contas", Emoji: "📄", Type: TypeExpense},
	{Name: "Outras Despesas", Emoji: "💸", Type: TypeExpense},
}

// DefaultGroupCategories is seeded for every new group, in the same
// transaction that creates the group and the owner membership.
var DefaultGroupCategories = []DefaultCategory{
	{Name: "Salários", Emoji: "💰", Type: TypeIncome},
	{Name: "Rendas", Emoji: "📈", Type: TypeIncome},
	{Name: "Outras Receitas", Emoji: "💵", Type: TypeIncome},

	{Name: "Alimentação", Emoji: "🍔", Type: TypeExpense},
	{Name: "Supermercado", Emoji: "🛒", Type: TypeExpense},
	{Name: "Transporte", Emoji: "🚗", Type: TypeExpense},
	{Name: "Moradia", Emoji: "🏠", Type: TypeExpense},
	{Name: "Contas", Emoji: "📄", Type: TypeExpense},
	{Name: "Saúde", Emoji: "⚕️", Type: TypeExpense},
	{Name: "Educação", Emoji: "📚", Type: TypeExpense},
	{Name: "Lazer", Emoji: "🎬", Type: TypeExpense},
	{Name: "Outras Despesas", Emoji: "💸", Type: TypeExpense},
}
