package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// UnmarshalObject разбирает content структурированного ответа модели как
// единственный JSON-объект. Модели иногда дописывают текст после объекта —
// такие ответы отклоняются целиком.
func UnmarshalObject(content string, v any) error {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return errors.New("empty structured content")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode structured content: %w", err)
	}
	return ensureSingleValue(dec)
}

func ensureSingleValue(dec *json.Decoder) error {
	if dec.More() {
		return errors.New("multiple JSON values in structured content")
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != nil && err != io.EOF {
		return fmt.Errorf("trailing data after JSON value: %v", err)
	}
	if len(bytes.TrimSpace(extra)) > 0 {
		return errors.New("trailing data after JSON value")
	}
	return nil
}
