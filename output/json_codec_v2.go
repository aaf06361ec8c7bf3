//go:build jsonv2

package output

import (
	"encoding/json/jsontext"
	jsonv2 "encoding/json/v2"
)

func jsonMarshal(value any) ([]byte, error) {
	return jsonv2.Marshal(value)
}

// marshalDocument renders value as an indented document ending in a newline.
func marshalDocument(value any) ([]byte, error) {
	data, err := jsonv2.Marshal(value, jsontext.WithIndent("  "))
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
