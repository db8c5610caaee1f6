package analyzer

import (
	"fmt"
	"strconv"
	"time"

	"bookbot/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeValue coerces a scalar value to its declared field type.
// Integer, float and boolean fail loudly on unparsable input; date falls
// back to the raw value when parsing fails; unknown types pass through.
func NormalizeValue(value any, fieldType domain.FieldType) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch fieldType {
	case domain.FieldText, domain.FieldKeyword:
		return Stringify(value), nil
	case domain.FieldInteger:
		return toInt(value)
	case domain.FieldFloat:
		return toFloat(value)
	case domain.FieldBoolean:
		return toBool(value)
	case domain.FieldDate:
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return value, nil
	default:
		return value, nil
	}
}

// NormalizeDocument applies NormalizeValue to every leaf of the document,
// resolving field types through the mapping by dotted path. Nested maps and
// slices are recursed into.
func NormalizeDocument(doc domain.Document, mapping domain.Mapping) (domain.Document, error) {
	normalized, err := normalizeMap(map[string]any(doc), mapping, "")
	if err != nil {
		return nil, err
	}
	return domain.Document(normalized), nil
}

func normalizeMap(obj map[string]any, mapping domain.Mapping, path string) (map[string]any, error) {
	result := make(map[string]any, len(obj))
	for key, value := range obj {
		fieldPath := joinPath(path, key)
		switch v := value.(type) {
		case map[string]any:
			nested, err := normalizeMap(v, mapping, fieldPath)
			if err != nil {
				return nil, err
			}
			result[key] = nested
		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					nested, err := normalizeMap(m, mapping, fieldPath)
					if err != nil {
						return nil, err
					}
					items = append(items, nested)
					continue
				}
				normalized, err := NormalizeValue(item, fieldTypeAt(mapping, fieldPath))
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", fieldPath, err)
				}
				items = append(items, normalized)
			}
			result[key] = items
		default:
			normalized, err := NormalizeValue(value, fieldTypeAt(mapping, fieldPath))
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", fieldPath, err)
			}
			result[key] = normalized
		}
	}
	return result, nil
}

// AnalyzeDocument extracts the full token stream of a document, duplicates
// included. This is the single canonical pass: both term frequencies and
// the inverted index are derived from its output, so the two can never
// disagree on which tokens a document contributes.
func AnalyzeDocument(doc domain.Document) []string {
	var tokens []string
	var extract func(value any)
	extract = func(value any) {
		switch v := value.(type) {
		case map[string]any:
			for _, item := range v {
				extract(item)
			}
		case domain.Document:
			for _, item := range v {
				extract(item)
			}
		case []any:
			for _, item := range v {
				extract(item)
			}
		case nil:
		default:
			tokens = append(tokens, TokenizeValue(v)...)
		}
	}
	extract(map[string]any(doc))
	return tokens
}

// ValidateDocument checks every typed leaf against the mapping. Integer,
// float and boolean fields must hold parseable values.
func ValidateDocument(doc domain.Document, mapping domain.Mapping) error {
	var validate func(obj map[string]any, path string) error
	validate = func(obj map[string]any, path string) error {
		for key, value := range obj {
			fieldPath := joinPath(path, key)
			switch v := value.(type) {
			case map[string]any:
				if err := validate(v, fieldPath); err != nil {
					return err
				}
			case []any:
				for _, item := range v {
					if m, ok := item.(map[string]any); ok {
						if err := validate(m, fieldPath); err != nil {
							return err
						}
						continue
					}
					if err := validateLeaf(item, fieldTypeAt(mapping, fieldPath), fieldPath); err != nil {
						return err
					}
				}
			default:
				if err := validateLeaf(value, fieldTypeAt(mapping, fieldPath), fieldPath); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return validate(map[string]any(doc), "")
}

func validateLeaf(value any, fieldType domain.FieldType, path string) error {
	if value == nil {
		return nil
	}
	switch fieldType {
	case domain.FieldInteger:
		if _, err := toInt(value); err != nil {
			return fmt.Errorf("%w: field %q must be an integer", domain.ErrInvalidDocument, path)
		}
	case domain.FieldFloat:
		if _, err := toFloat(value); err != nil {
			return fmt.Errorf("%w: field %q must be a float", domain.ErrInvalidDocument, path)
		}
	case domain.FieldBoolean:
		if _, err := toBool(value); err != nil {
			return fmt.Errorf("%w: field %q must be a boolean", domain.ErrInvalidDocument, path)
		}
	}
	return nil
}

func fieldTypeAt(mapping domain.Mapping, path string) domain.FieldType {
	if fm, ok := mapping[path]; ok {
		return fm.Type
	}
	return domain.FieldText
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", value)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("cannot convert %T to boolean", value)
	}
}
