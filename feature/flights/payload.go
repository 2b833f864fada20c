package flights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidPayload is wrapped by every payload decoding error.
var ErrInvalidPayload = errors.New("invalid payload")

// Batch is a vendor batch as published on the load queue.
type Batch struct {
	Source  string           `json:"source"`
	Records []map[string]any `json:"records"`
}

// DecodeRecords parses a vendor payload. Both a bare JSON array of records and an
// object wrapping the array under "records" or "data" are accepted.
func DecodeRecords(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}

	if trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return records, nil
	}

	var wrapper struct {
		Records []map[string]any `json:"records"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if wrapper.Records != nil {
		return wrapper.Records, nil
	}
	if wrapper.Data != nil {
		return wrapper.Data, nil
	}
	return nil, fmt.Errorf("%w: no records", ErrInvalidPayload)
}

// DecodeBatch parses a queue message carrying its own source identity.
func DecodeBatch(data []byte) (*Batch, error) {
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(batch.Source) == "" {
		return nil, ErrMissingSource
	}
	return &batch, nil
}

// SourceFromKey derives the source identity from an object key laid out as
// <prefix>/<source>/<file>.json.
func SourceFromKey(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}
