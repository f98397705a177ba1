package xbrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		role string
		want Statement
		ok   bool
	}{
		// Balance sheet variants
		{"http://apple.com/role/CONSOLIDATEDBALANCESHEETS", BalanceSheet, true},
		{"http://ex.com/role/StatementsOfFinancialPosition", BalanceSheet, true},
		{"http://ex.com/role/StatementOfFinancialCondition", BalanceSheet, true},
		{"http://ex.com/role/Consolidated Balance Sheets", BalanceSheet, true},

		// Income statement variants
		{"http://ex.com/role/CONSOLIDATEDSTATEMENTSOFOPERATIONS", IncomeStatement, true},
		{"http://ex.com/role/StatementsOfIncome", IncomeStatement, true},
		{"http://ex.com/role/ConsolidatedStatementOfEarnings", IncomeStatement, true},
		{"http://ex.com/role/IncomeStatement", IncomeStatement, true},

		// Comprehensive income must not fall into the income statement rule.
		{"http://ex.com/role/ConsolidatedStatementsOfComprehensiveIncome", ComprehensiveIncome, true},
		{"http://ex.com/role/StatementsOfComprehensiveLoss", ComprehensiveIncome, true},

		// Cash flow and equity
		{"http://ex.com/role/CONSOLIDATEDSTATEMENTSOFCASHFLOWS", CashFlow, true},
		{"http://ex.com/role/StatementsOfStockholdersEquity", StockholdersEquity, true},
		{"http://ex.com/role/StatementsOfChangesInEquity", StockholdersEquity, true},
		{"http://ex.com/role/ShareholdersDeficit", StockholdersEquity, true},

		// Parentheticals annotate a statement, they are not one.
		{"http://ex.com/role/CONSOLIDATEDBALANCESHEETSParenthetical", "", false},
		{"http://ex.com/role/StatementsOfCashFlowsParenthetical", "", false},
		{"http://ex.com/role/ComprehensiveIncomeParenthetical", "", false},

		// Disclosure notes and cover pages stay unclassified.
		{"http://ex.com/role/CoverPage", "", false},
		{"http://ex.com/role/SegmentReporting", "", false},
		{"http://ex.com/role/SignificantAccountingPolicies", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ClassifyRole(tt.role)
		assert.Equal(t, tt.ok, ok, "role %q", tt.role)
		assert.Equal(t, tt.want, got, "role %q", tt.role)
	}
}

// The presentation and calculation passes rely on classification being a
// pure function of the role string.
func TestClassifyRole_Deterministic(t *testing.T) {
	role := "http://ex.com/role/ConsolidatedStatementsOfComprehensiveIncome"
	first, ok := ClassifyRole(role)
	assert.True(t, ok)
	for i := 0; i < 100; i++ {
		got, ok := ClassifyRole(role)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t,
		"http://ex.com/role/balancesheets",
		normalizeRole("http://ex.com/role/Balance - Sheets"))
}
