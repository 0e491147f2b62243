package event

import (
	"github.com/joseph-ayodele/statement-extractor/constants"
	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

// StorageEvent is the normalized record of one object-storage change
// notification. Values are constructed once at the decoding boundary and
// never mutated or persisted afterwards.
type StorageEvent struct {
	Bucket      string `json:"bucket"`
	ObjectName  string `json:"object_name"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
	EventType   string `json:"event_type,omitempty"`
}

// Actionable reports whether the event addresses a concrete object.
// An event missing either part is still a valid decode result; only locator
// construction depends on it.
func (e StorageEvent) Actionable() bool {
	return e.Bucket != "" && e.ObjectName != ""
}

// URI composes the document locator handed to the extraction backend,
// e.g. "gs://statements/march.pdf".
func (e StorageEvent) URI() (string, error) {
	if !e.Actionable() {
		return "", common.WrapError(common.ErrIncompleteEvent, "building document locator")
	}
	return constants.StorageScheme + "://" + e.Bucket + "/" + e.ObjectName, nil
}
