package llm

// StatementJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// extracted statements as a generic map. We pass this to the backend as a
// structured-output constraint and optionally use it locally to validate.
// The schema is a fixed contract: changing it changes the output format for
// every caller, so it must be versioned rather than edited in place.
func StatementJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"credit_card_company": map[string]any{"type": "string"},
			"credit_card_last4":   map[string]any{"type": "string"},
			"statement_date":      dateProp(),
			"due_date":            dateProp(),
			"statement_balance":   map[string]any{"type": "number"},
			"minimum_payment":     map[string]any{"type": "number"},
			"interest_rate":       map[string]any{"type": "number"},
			"credits":             lineItemsProp("credit_date"),
			"transactions":        lineItemsProp("transaction_date"),
		},
		"required": []string{
			"credit_card_company",
			"credit_card_last4",
			"statement_date",
			"due_date",
			"statement_balance",
			"minimum_payment",
			"interest_rate",
			"credits",
			"transactions",
		},
	}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "format": "date"}
}

func lineItemsProp(dateKey string) map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				dateKey:       dateProp(),
				"description": map[string]any{"type": "string"},
				"amount":      map[string]any{"type": "number"},
			},
			"required": []string{dateKey, "description", "amount"},
		},
	}
}
