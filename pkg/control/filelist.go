package control

import (
	"fmt"

	"github.com/goccy/go-json"
)

// File describes one uploaded file as it travels through the wire
// representation: metadata plus the base64/data-URL payload the host
// environment produced. The engine never inspects Content.
type File struct {
	Name    string `json:"name"`
	Size    int64  `json:"size,omitempty"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
}

// decodeFileList coerces a wire value into []File. Accepted shapes are an
// existing []File, nil, or anything that round-trips through JSON as an
// array of file objects (the shape a generic wire decode produces).
func decodeFileList(value any) ([]File, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []File:
		return typed, nil
	case File:
		return []File{typed}, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("control: encode file list: %w", err)
	}
	var files []File
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, fmt.Errorf("control: decode file list: %w", err)
	}
	return files, nil
}
