package xbrl

import "strings"

// Statement is a canonical financial statement name.
type Statement string

const (
	BalanceSheet        Statement = "Balance Sheet"
	IncomeStatement     Statement = "Income Statement"
	ComprehensiveIncome Statement = "Comprehensive Income"
	CashFlow            Statement = "Cash Flow"
	StockholdersEquity  Statement = "Stockholders Equity"
)

// CanonicalStatements lists the recognized statements in their conventional
// presentation order.
var CanonicalStatements = []Statement{
	BalanceSheet,
	IncomeStatement,
	ComprehensiveIncome,
	CashFlow,
	StockholdersEquity,
}

// roleRule classifies normalized role identifiers by keyword. A rule fires
// when an include keyword is present and no exclude keyword is; if both an
// include and an exclude keyword match, the rule is skipped and evaluation
// moves to the next rule.
type roleRule struct {
	statement Statement
	include   []string
	exclude   []string
}

// roleRules is evaluated in priority order; the first firing rule wins.
// Every rule excludes parenthetical roles: a parenthetical block annotates a
// primary statement but is never itself one.
var roleRules = []roleRule{
	{
		statement: BalanceSheet,
		include:   []string{"balancesheet", "financialposition", "financialcondition"},
		exclude:   []string{"parenthetical"},
	},
	{
		statement: IncomeStatement,
		include: []string{
			"statementsofoperations", "statementofoperations",
			"statementsofincome", "statementofincome",
			"statementsofearnings", "statementofearnings",
			"incomestatement",
		},
		exclude: []string{"parenthetical", "comprehensive"},
	},
	{
		statement: ComprehensiveIncome,
		include:   []string{"comprehensiveincome", "comprehensiveloss"},
		exclude:   []string{"parenthetical"},
	},
	{
		statement: CashFlow,
		include:   []string{"cashflow"},
		exclude:   []string{"parenthetical"},
	},
	{
		statement: StockholdersEquity,
		include: []string{
			"stockholdersequity", "shareholdersequity",
			"stockholdersdeficit", "shareholdersdeficit",
			"changesinequity", "changeinequity",
		},
		exclude: []string{"parenthetical"},
	},
}

// ClassifyRole maps a linkbase role identifier (a URI-like path ending in a
// human-readable slug) to a canonical statement. Classification is a pure
// function of the identifier string: the presentation and calculation passes
// must agree for their outputs to merge. Unclassified roles are expected:
// most roles in a filing are disclosure notes, not primary statements.
func ClassifyRole(roleURI string) (Statement, bool) {
	normalized := normalizeRole(roleURI)

	for _, rule := range roleRules {
		included := containsAny(normalized, rule.include)
		if !included {
			continue
		}
		if containsAny(normalized, rule.exclude) {
			continue
		}
		return rule.statement, true
	}

	return "", false
}

func normalizeRole(roleURI string) string {
	s := strings.ToLower(roleURI)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
