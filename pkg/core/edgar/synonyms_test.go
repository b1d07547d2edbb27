package edgar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatementFile(t *testing.T) {
	catalog := FileCatalog{
		"consolidated balance sheets":           "R2.htm",
		"consolidated statements of operations": "R4.htm",
		"consolidated statements of cash flows": "R7.htm",
	}

	file, matched, err := ResolveStatementFile(catalog, BalanceSheet)
	require.NoError(t, err)
	assert.Equal(t, "R2.htm", file)
	assert.Equal(t, "consolidated balance sheets", matched)

	file, _, err = ResolveStatementFile(catalog, IncomeStatement)
	require.NoError(t, err)
	assert.Equal(t, "R4.htm", file)

	file, _, err = ResolveStatementFile(catalog, CashFlowStatement)
	require.NoError(t, err)
	assert.Equal(t, "R7.htm", file)
}

// When a catalog carries two titles that both name the same statement, the
// synonym declared earlier wins regardless of catalog iteration order.
func TestResolveStatementFileFirstMatchWins(t *testing.T) {
	catalog := FileCatalog{
		"balance sheet":               "R1.htm",
		"consolidated balance sheets": "R2.htm",
	}

	file, matched, err := ResolveStatementFile(catalog, BalanceSheet)
	require.NoError(t, err)
	assert.Equal(t, "R1.htm", file)
	assert.Equal(t, "balance sheet", matched)
}

func TestResolveStatementFileMiss(t *testing.T) {
	catalog := FileCatalog{"notes to financial statements": "R12.htm"}

	_, _, err := ResolveStatementFile(catalog, CashFlowStatement)
	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, CashFlowStatement, rerr.Statement)
}
