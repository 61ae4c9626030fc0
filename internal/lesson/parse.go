package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lessonreel/internal/textutil"
)

type wireContent struct {
	Title    string          `json:"title"`
	Sections json.RawMessage `json:"sections"`
}

type wireSection struct {
	Heading         string      `json:"heading"`
	Content         string      `json:"content"`
	AnimationType   string      `json:"animation_type"`
	DurationSeconds *float64    `json:"duration_seconds"`
	ContentBlocks   []wireBlock `json:"content_blocks"`
}

type wireBlock struct {
	ContentType   string `json:"content_type"`
	Content       string `json:"content"`
	Language      string `json:"language"`
	AnimationType string `json:"animation_type"`
}

// Parse decodes a JSON lesson payload and normalizes it.
func Parse(data []byte) (*Content, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &InvalidContentError{Reason: "empty payload"}
	}
	if trimmed[0] != '{' {
		return nil, &InvalidContentError{Reason: "payload is not an object"}
	}

	var wire wireContent
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, &InvalidContentError{Reason: "malformed payload", Err: err}
	}
	return fromWire(wire)
}

// ParseYAML decodes a YAML lesson payload using the same field names as the
// JSON form.
func ParseYAML(data []byte) (*Content, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidContentError{Reason: "malformed yaml", Err: err}
	}
	if doc == nil {
		return nil, &InvalidContentError{Reason: "empty payload"}
	}
	converted, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, &InvalidContentError{Reason: "convert yaml", Err: err}
	}
	return Parse(converted)
}

// Load reads a lesson payload from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. A task envelope is accepted too;
// its content is returned only when the task has completed.
func Load(path string) (*Content, error) {
	env, err := LoadEnvelope(path)
	if err != nil {
		return nil, err
	}
	return env.Lesson()
}

func readPayload(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read lesson file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, true, &InvalidContentError{Reason: "malformed yaml", Err: err}
		}
		converted, err := json.Marshal(jsonCompatible(doc))
		if err != nil {
			return nil, true, &InvalidContentError{Reason: "convert yaml", Err: err}
		}
		return converted, true, nil
	default:
		return data, false, nil
	}
}

func fromWire(wire wireContent) (*Content, error) {
	raw := bytes.TrimSpace(wire.Sections)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &InvalidContentError{Reason: "sections missing"}
	}
	if raw[0] != '[' {
		return nil, &InvalidContentError{Reason: "sections is not a sequence"}
	}

	var sections []wireSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, &InvalidContentError{Reason: "malformed section", Err: err}
	}

	content := &Content{
		Title:    strings.TrimSpace(textutil.NormalizeText(wire.Title)),
		Sections: make([]Section, 0, len(sections)),
	}
	for _, ws := range sections {
		content.Sections = append(content.Sections, normalizeSection(ws))
	}
	return content, nil
}

func normalizeSection(ws wireSection) Section {
	section := Section{
		Heading:         strings.TrimSpace(textutil.NormalizeText(ws.Heading)),
		DurationSeconds: DefaultSectionSeconds,
		Animation:       AnimationType(strings.TrimSpace(ws.AnimationType)),
	}
	if ws.DurationSeconds != nil && *ws.DurationSeconds > 0 {
		section.DurationSeconds = *ws.DurationSeconds
	}
	if section.Animation == "" {
		section.Animation = DefaultAnimation
	}

	if len(ws.ContentBlocks) > 0 {
		section.Blocks = make([]Block, 0, len(ws.ContentBlocks))
		for _, wb := range ws.ContentBlocks {
			section.Blocks = append(section.Blocks, normalizeBlock(wb, section.Animation))
		}
		return section
	}

	// Legacy payloads carry one content string per section.
	text := textutil.NormalizeText(ws.Content)
	if strings.TrimSpace(text) != "" {
		section.Blocks = []Block{{
			Type:      ContentParagraph,
			Content:   text,
			Animation: section.Animation,
		}}
	}
	return section
}

func normalizeBlock(wb wireBlock, inherited AnimationType) Block {
	block := Block{
		Type:      ContentType(strings.ToLower(strings.TrimSpace(wb.ContentType))),
		Content:   textutil.NormalizeText(wb.Content),
		Language:  strings.TrimSpace(wb.Language),
		Animation: AnimationType(strings.TrimSpace(wb.AnimationType)),
	}
	if block.Type == "" {
		block.Type = ContentParagraph
	}
	if block.Animation == "" {
		block.Animation = inherited
	}
	return block
}

// jsonCompatible rewrites YAML-decoded maps with non-string keys so the value
// can be marshalled as JSON.
func jsonCompatible(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = jsonCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = jsonCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonCompatible(item)
		}
		return out
	default:
		return v
	}
}
