package event

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

func wrapped(t *testing.T, inner string, attrs map[string]string) []byte {
	t.Helper()
	msg := map[string]any{
		"data": base64.StdEncoding.EncodeToString([]byte(inner)),
	}
	if attrs != nil {
		msg["attributes"] = attrs
	}
	body, err := json.Marshal(map[string]any{"message": msg})
	if err != nil {
		t.Fatalf("marshal wrapped body: %v", err)
	}
	return body
}

func TestDecodeDirect(t *testing.T) {
	tests := []struct {
		name string
		body string
		want StorageEvent
	}{
		{
			name: "objectName key",
			body: `{"bucket":"statements","objectName":"march.pdf","contentType":"application/pdf","size":48213}`,
			want: StorageEvent{Bucket: "statements", ObjectName: "march.pdf", ContentType: "application/pdf", SizeBytes: 48213},
		},
		{
			name: "name alias",
			body: `{"bucket":"statements","name":"april.pdf"}`,
			want: StorageEvent{Bucket: "statements", ObjectName: "april.pdf"},
		},
		{
			name: "objectName wins over name",
			body: `{"bucket":"b","objectName":"a.pdf","name":"b.pdf"}`,
			want: StorageEvent{Bucket: "b", ObjectName: "a.pdf"},
		},
		{
			name: "size as string",
			body: `{"bucket":"b","name":"a.pdf","size":"12345"}`,
			want: StorageEvent{Bucket: "b", ObjectName: "a.pdf", SizeBytes: 12345},
		},
		{
			name: "event type field",
			body: `{"bucket":"b","name":"a.pdf","eventType":"OBJECT_FINALIZE"}`,
			want: StorageEvent{Bucket: "b", ObjectName: "a.pdf", EventType: "OBJECT_FINALIZE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeWrapped(t *testing.T) {
	body := wrapped(t,
		`{"bucket":"b1","name":"jan.pdf","contentType":"application/pdf"}`,
		map[string]string{"eventType": "OBJECT_FINALIZE"},
	)
	got, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := StorageEvent{
		Bucket:      "b1",
		ObjectName:  "jan.pdf",
		ContentType: "application/pdf",
		EventType:   "OBJECT_FINALIZE",
	}
	if got != want {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecodeWrappedSizeString(t *testing.T) {
	// Real storage notifications encode size as a decimal string.
	body := wrapped(t, `{"bucket":"b1","name":"jan.pdf","size":"987654"}`, nil)
	got, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SizeBytes != 987654 {
		t.Errorf("SizeBytes = %d, want 987654", got.SizeBytes)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	// Encoding an event as base64 JSON inside a wrapper and decoding it
	// recovers the original field values exactly.
	orig := StorageEvent{
		Bucket:      "archive",
		ObjectName:  "2026/feb.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
		EventType:   "OBJECT_FINALIZE",
	}
	inner := fmt.Sprintf(`{"bucket":%q,"name":%q,"contentType":%q,"size":%d}`,
		orig.Bucket, orig.ObjectName, orig.ContentType, orig.SizeBytes)
	body := wrapped(t, inner, map[string]string{"eventType": orig.EventType})

	got, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	body := []byte(`{"bucket":"statements","objectName":"march.pdf","contentType":"application/pdf"}`)
	first, err := Decode(body)
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	second, err := Decode(body)
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if first != second {
		t.Errorf("decoding is not idempotent: %+v != %+v", first, second)
	}
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want error
	}{
		{"nil body", nil, common.ErrEmptyPayload},
		{"empty body", []byte(""), common.ErrEmptyPayload},
		{"whitespace body", []byte("  \n"), common.ErrEmptyPayload},
		{"empty object", []byte("{}"), common.ErrEmptyPayload},
		{"invalid json", []byte("{not json"), common.ErrMalformedEnvelope},
		{"bad base64", []byte(`{"message":{"data":"!!not-base64!!"}}`), common.ErrMalformedEnvelope},
		{"wrapped data not json", wrappedRaw("this is not json"), common.ErrMalformedEnvelope},
		{"wrapped empty data", []byte(`{"message":{"attributes":{"eventType":"x"}}}`), common.ErrMalformedEnvelope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.body)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func wrappedRaw(inner string) []byte {
	data := base64.StdEncoding.EncodeToString([]byte(inner))
	return []byte(`{"message":{"data":"` + data + `"}}`)
}

func TestStorageEventURI(t *testing.T) {
	ev := StorageEvent{Bucket: "statements", ObjectName: "march.pdf"}
	uri, err := ev.URI()
	if err != nil {
		t.Fatalf("URI: %v", err)
	}
	if uri != "gs://statements/march.pdf" {
		t.Errorf("URI = %q, want %q", uri, "gs://statements/march.pdf")
	}

	for _, ev := range []StorageEvent{
		{ObjectName: "march.pdf"},
		{Bucket: "statements"},
		{},
	} {
		if _, err := ev.URI(); !errors.Is(err, common.ErrIncompleteEvent) {
			t.Errorf("URI(%+v) error = %v, want %v", ev, err, common.ErrIncompleteEvent)
		}
	}
}
