package constants

import "strings"

// PDFExtension is the only object-name extension this pipeline processes.
const PDFExtension = "pdf"

// PDFContentType is the declared media type for statement documents.
const PDFContentType = "application/pdf"

// JSONContentType is the response media type requested from the backend and
// served by the webhook.
const JSONContentType = "application/json"

// StorageScheme prefixes document locators handed to the extraction backend.
const StorageScheme = "gs"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
