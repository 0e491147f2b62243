package event

import (
	"path"
	"strings"

	"github.com/joseph-ayodele/statement-extractor/constants"
)

// IsStatementPDF decides whether a decoded event refers to a document this
// pipeline should process: the object name ends in ".pdf" or the declared
// content type says application/pdf. Events carrying neither signal are
// skipped, not failed.
func IsStatementPDF(ev StorageEvent) bool {
	if constants.NormalizeExt(path.Ext(ev.ObjectName)) == constants.PDFExtension {
		return true
	}
	return strings.Contains(strings.ToLower(ev.ContentType), constants.PDFContentType)
}
