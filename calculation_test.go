package xbrl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalculation(t *testing.T) {
	doc := `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:calculationLink xlink:role="http://ex.com/role/ConsolidatedBalanceSheets">
    <link:loc xlink:label="assets" xlink:href="s.xsd#us-gaap_Assets"/>
    <link:loc xlink:label="cash" xlink:href="s.xsd#us-gaap_Cash"/>
    <link:loc xlink:label="assets2" xlink:href="s.xsd#us-gaap_Assets"/>
    <link:calculationArc xlink:from="assets" xlink:to="cash" order="1" weight="1.0"/>
  </link:calculationLink>
  <link:calculationLink xlink:role="http://ex.com/role/FairValueDisclosures">
    <link:loc xlink:label="fv" xlink:href="s.xsd#us-gaap_FairValue"/>
  </link:calculationLink>
</link:linkbase>`

	got, err := ParseCalculation([]byte(doc))
	require.NoError(t, err)

	// Concepts in loc declaration order, deduplicated; unclassified roles
	// skipped.
	want := map[Statement][]string{
		BalanceSheet: {"Assets", "Cash"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("calculation concepts mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeCalculation(t *testing.T) {
	pres := map[Statement][]string{
		BalanceSheet:    {"Assets", "Cash"},
		IncomeStatement: {"Revenues"},
	}
	calc := map[Statement][]string{
		BalanceSheet: {"Cash", "Goodwill"}, // Cash already present
		CashFlow:     {"NetCashProvidedByOperatingActivities"},
	}

	merged := MergeCalculation(pres, calc)

	// Calculation-only concepts land after the presentation rows.
	assert.Equal(t, []string{"Assets", "Cash", "Goodwill"}, merged[BalanceSheet])
	assert.Equal(t, []string{"Revenues"}, merged[IncomeStatement])
	assert.Equal(t, []string{"NetCashProvidedByOperatingActivities"}, merged[CashFlow])

	// Input maps are not mutated.
	assert.Equal(t, []string{"Assets", "Cash"}, pres[BalanceSheet])
}

func TestMergeCalculation_NilCalculation(t *testing.T) {
	pres := map[Statement][]string{BalanceSheet: {"Assets"}}

	merged := MergeCalculation(pres, nil)
	assert.Equal(t, []string{"Assets"}, merged[BalanceSheet])

	merged = MergeCalculation(nil, nil)
	assert.Empty(t, merged)
}
