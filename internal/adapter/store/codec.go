package store

import (
	"bytes"
	"encoding/gob"
	"time"

	"bookbot/internal/domain"
)

func init() {
	// Concrete types that may sit behind the any values of a Document.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register(time.Time{})
	gob.Register(int64(0))
	gob.Register(float64(0))
}

func encodeSnapshot(data *domain.IndexData) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSnapshot(blob []byte) (*domain.IndexData, error) {
	data := domain.NewIndexData()
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(data); err != nil {
		return nil, err
	}
	return data, nil
}
