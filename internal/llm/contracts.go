package llm

import (
	"context"
	"encoding/json"
)

// StatementFields is the normalized shape we want from the model. The JSON
// field names are the output contract; renaming any of them is a breaking
// change for downstream consumers.
type StatementFields struct {
	CreditCardCompany string     `json:"credit_card_company"`
	CreditCardLast4   string     `json:"credit_card_last4"`
	StatementDate     string     `json:"statement_date"` // YYYY-MM-DD
	DueDate           string     `json:"due_date"`       // YYYY-MM-DD
	StatementBalance  float64    `json:"statement_balance"`
	MinimumPayment    float64    `json:"minimum_payment"`
	InterestRate      float64    `json:"interest_rate"`
	Credits           []LineItem `json:"credits"`
	Transactions      []LineItem `json:"transactions"`
}

// LineItem is one credit or transaction row. Credits carry their date under
// "credit_date" and transactions under "transaction_date"; exactly one of the
// two is set per item.
type LineItem struct {
	CreditDate      string  `json:"credit_date,omitempty"`
	TransactionDate string  `json:"transaction_date,omitempty"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
}

// Date returns whichever date field the item carries.
func (li LineItem) Date() string {
	if li.TransactionDate != "" {
		return li.TransactionDate
	}
	return li.CreditDate
}

// ExtractRequest addresses one document for extraction. The pipeline never
// reads object bytes; the backend fetches the document by URI.
type ExtractRequest struct {
	DocumentURI string // e.g. "gs://statements/march.pdf"
	MIMEType    string // always "application/pdf" for statements
}

// StatementExtractor is the interface the pipeline depends on. The returned
// bytes are the backend's response text verbatim, expected to be JSON
// conforming to StatementJSONSchema.
type StatementExtractor interface {
	ExtractStatement(ctx context.Context, req ExtractRequest) (json.RawMessage, error)
}

// ParseStatement decodes raw extraction output into typed fields.
func ParseStatement(raw json.RawMessage) (StatementFields, error) {
	var out StatementFields
	if err := json.Unmarshal(raw, &out); err != nil {
		return StatementFields{}, err
	}
	return out, nil
}
