package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

// Envelope is the raw webhook body. Storage notifications arrive either as a
// bare event or wrapped in a Pub/Sub push message; both shapes are supported
// permanently, with the presence of "message" selecting the decoding path.
type Envelope struct {
	Message *PubSubMessage `json:"message"`

	// Direct shape. ObjectName and Name are caller-convention aliases for
	// the same field; ObjectName wins when both are set.
	Bucket      string   `json:"bucket"`
	ObjectName  string   `json:"objectName"`
	Name        string   `json:"name"`
	ContentType string   `json:"contentType"`
	Size        ByteSize `json:"size"`
	EventType   string   `json:"eventType"`
}

// PubSubMessage is the payload of a Pub/Sub push delivery. Data carries the
// base64-encoded storage notification; encoding/json decodes the base64 on
// unmarshal, so an invalid encoding fails the envelope parse itself.
type PubSubMessage struct {
	Data       []byte            `json:"data"`
	Attributes map[string]string `json:"attributes"`
}

// AttrEventType is the out-of-band attribute carrying the notification type.
const AttrEventType = "eventType"

// storageObject is the notification JSON carried inside a wrapped message.
type storageObject struct {
	Bucket      string   `json:"bucket"`
	Name        string   `json:"name"`
	ContentType string   `json:"contentType"`
	Size        ByteSize `json:"size"`
}

// ByteSize decodes an object size that callers deliver inconsistently:
// direct events carry a JSON number while storage notifications encode the
// size as a decimal string.
type ByteSize int64

func (s *ByteSize) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = ByteSize(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = 0
		return nil
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("size %q is not an integer: %w", str, err)
	}
	*s = ByteSize(n)
	return nil
}

// Decode normalizes a raw notification body into a StorageEvent. It performs
// no I/O and is idempotent: equal bodies decode to field-equal events.
func Decode(body []byte) (StorageEvent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return StorageEvent{}, common.ErrEmptyPayload
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return StorageEvent{}, common.NewAppError("DECODE_ERROR", "parsing notification body", common.ErrMalformedEnvelope)
	}

	if env.Message != nil {
		return decodeWrapped(env.Message)
	}

	name := env.ObjectName
	if name == "" {
		name = env.Name
	}
	if env.Bucket == "" && name == "" && env.ContentType == "" && env.Size == 0 && env.EventType == "" {
		return StorageEvent{}, common.ErrEmptyPayload
	}
	return StorageEvent{
		Bucket:      env.Bucket,
		ObjectName:  name,
		ContentType: env.ContentType,
		SizeBytes:   int64(env.Size),
		EventType:   env.EventType,
	}, nil
}

func decodeWrapped(msg *PubSubMessage) (StorageEvent, error) {
	if len(msg.Data) == 0 {
		return StorageEvent{}, common.NewAppError("DECODE_ERROR", "wrapped message has no data", common.ErrMalformedEnvelope)
	}
	var obj storageObject
	if err := json.Unmarshal(msg.Data, &obj); err != nil {
		return StorageEvent{}, common.NewAppError("DECODE_ERROR", "parsing wrapped notification data", common.ErrMalformedEnvelope)
	}
	return StorageEvent{
		Bucket:      obj.Bucket,
		ObjectName:  obj.Name,
		ContentType: obj.ContentType,
		SizeBytes:   int64(obj.Size),
		EventType:   msg.Attributes[AttrEventType],
	}, nil
}
