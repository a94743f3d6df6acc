package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// decodeJSON unmarshals data into dst keeping numbers as [json.Number], so
// integers outside the float64 mantissa survive a round trip.
func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dst)
}

// encodeFields converts v into document fields using its JSON names.
// Pointer fields tagged omitempty disappear when nil, which is what turns a
// patch struct into a partial update.
func encodeFields(v any) (Fields, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	fields := Fields{}
	if err := decodeJSON(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	return fields, nil
}

// toDocument splits the id attribute of record off its other fields.
func toDocument(record any) (Document, error) {
	fields, err := encodeFields(record)
	if err != nil {
		return Document{}, err
	}

	id, _ := fields[idField].(string)
	delete(fields, idField)

	return Document{ID: id, Fields: fields}, nil
}

// fromDocument rebuilds a record of type R from doc, stringifying the id.
func fromDocument[R any](doc Document) (R, error) {
	var record R

	fields := make(Fields, len(doc.Fields)+1)
	maps.Copy(fields, doc.Fields)
	fields[idField] = doc.ID

	data, err := json.Marshal(fields)
	if err != nil {
		return record, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	if err := decodeJSON(data, &record); err != nil {
		return record, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return record, nil
}

// normalizeFields returns a deep copy of fields holding only JSON-native
// values (string, json.Number, bool, nil, map[string]any, []any).
func normalizeFields(fields Fields) (Fields, error) {
	if fields == nil {
		return Fields{}, nil
	}
	return encodeFields(fields)
}
