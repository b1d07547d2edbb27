package edgar

// statementSynonyms maps each statement type to the short-name variants
// observed across SEC filers. Filings title the same statement inconsistently
// between companies and years; order encodes preference, most common or most
// specific phrasing first, and the first synonym that hits a filing's catalog
// wins. The table is a process-wide constant and is never mutated.
var statementSynonyms = map[StatementType][]string{
	BalanceSheet: {
		"balance sheet",
		"balance sheets",
		"statement of financial position",
		"consolidated balance sheets",
		"consolidated balance sheet",
		"consolidated financial position",
		"consolidated balance sheets - southern",
		"consolidated statements of financial position",
		"consolidated statement of financial position",
		"consolidated statements of financial condition",
		"combined and consolidated balance sheet",
		"condensed consolidated balance sheets",
		"consolidated balance sheets, as of december 31",
		"dow consolidated balance sheets",
		"consolidated balance sheets (unaudited)",
	},
	IncomeStatement: {
		"income statement",
		"income statements",
		"statement of earnings (loss)",
		"statements of consolidated income",
		"consolidated statements of operations",
		"consolidated statement of operations",
		"consolidated statements of earnings",
		"consolidated statement of earnings",
		"consolidated statements of income",
		"consolidated statement of income",
		"consolidated income statements",
		"consolidated income statement",
		"condensed consolidated statements of earnings",
		"condensed consolidated statements of income",
		"consolidated results of operations",
		"consolidated statements of income (loss)",
		"consolidated statements of income - southern",
		"consolidated statements of operations and comprehensive income",
		"consolidated statements of comprehensive income",
		"consolidated statements of comprehensive income (unaudited)",
	},
	CashFlowStatement: {
		"cash flows statement",
		"cash flows statements",
		"statement of cash flows",
		"statements of consolidated cash flows",
		"consolidated statements of cash flows",
		"consolidated statement of cash flows",
		"consolidated statement of cash flow",
		"consolidated cash flows statements",
		"consolidated cash flow statements",
		"condensed consolidated statements of cash flows",
		"consolidated statements of cash flows (unaudited)",
		"consolidated statements of cash flows - southern",
	},
}

// ResolveStatementFile finds the rendered document for a statement type in a
// filing's catalog. Synonyms are tried in declared order and the first catalog
// hit wins, even when a later synonym would also match. Returns the file name,
// the short name it matched under, or a *ResolutionError when nothing matched.
func ResolveStatementFile(catalog FileCatalog, st StatementType) (file, matched string, err error) {
	for _, synonym := range statementSynonyms[st] {
		if file, ok := catalog[synonym]; ok {
			return file, synonym, nil
		}
	}
	return "", "", &ResolutionError{Statement: st}
}
