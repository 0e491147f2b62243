package llm

// ExtractionPrompt is the fixed instruction sent alongside the document. The
// response schema, not the prompt, is what constrains the output shape.
const ExtractionPrompt = "Your job is to parse the credit card statement that is given in pdf format. " +
	"You need to extract the statement information and also the transactions of it."
