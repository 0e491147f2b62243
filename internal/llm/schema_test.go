package llm

import (
	"strings"
	"testing"
)

const validStatement = `{
	"credit_card_company": "Acme Bank",
	"credit_card_last4": "4242",
	"statement_date": "2026-03-05",
	"due_date": "2026-03-28",
	"statement_balance": 512.33,
	"minimum_payment": 25.0,
	"interest_rate": 24.99,
	"credits": [
		{"credit_date": "2026-02-14", "description": "Payment received", "amount": 300.00}
	],
	"transactions": [
		{"transaction_date": "2026-02-20", "description": "Grocery store", "amount": 84.12},
		{"transaction_date": "2026-02-22", "description": "Fuel", "amount": 45.00}
	]
}`

func TestSchemaAcceptsValidStatement(t *testing.T) {
	if err := ValidateJSONAgainstSchema(StatementJSONSchema(), []byte(validStatement)); err != nil {
		t.Fatalf("valid statement rejected: %v", err)
	}
}

func TestSchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing company", strings.Replace(validStatement, `"credit_card_company": "Acme Bank",`, "", 1)},
		{"missing transactions", strings.Replace(validStatement, `"transactions"`, `"purchases"`, 1)},
		{"balance as string", strings.Replace(validStatement, `"statement_balance": 512.33`, `"statement_balance": "512.33"`, 1)},
		{"transaction missing amount", strings.Replace(validStatement, `"description": "Fuel", "amount": 45.00`, `"description": "Fuel"`, 1)},
		{"transaction with credit date key", strings.Replace(validStatement, `"transaction_date": "2026-02-22"`, `"credit_date": "2026-02-22"`, 1)},
		{"not an object", `["not","an","object"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateJSONAgainstSchema(StatementJSONSchema(), []byte(tt.doc)); err == nil {
				t.Errorf("schema accepted invalid document")
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	fields, err := ParseStatement([]byte(validStatement))
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if fields.CreditCardCompany != "Acme Bank" || fields.CreditCardLast4 != "4242" {
		t.Errorf("fields = %+v", fields)
	}
	if len(fields.Transactions) != 2 || len(fields.Credits) != 1 {
		t.Fatalf("line items = %d transactions, %d credits", len(fields.Transactions), len(fields.Credits))
	}
	if got := fields.Transactions[0].Date(); got != "2026-02-20" {
		t.Errorf("transaction date = %q", got)
	}
	if got := fields.Credits[0].Date(); got != "2026-02-14" {
		t.Errorf("credit date = %q", got)
	}
}
