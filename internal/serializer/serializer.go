// Package serializer превращает спроецированные записи в JSON-тело ответа.
// Ключи объектов идут в порядке проекции. Функции чистые, без I/O.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/tree"
)

var (
	// ErrUnprojectedField — запись несёт поле вне проекции (лишнее чтение из хранилища).
	ErrUnprojectedField = errors.New("field outside projection")
	// ErrTypeMismatch — тип записи не совпадает с сериализуемым типом.
	ErrTypeMismatch = errors.New("record type mismatch")
)

// childrenKey — имя поля с вложенными ответами в дереве.
const childrenKey = "children"

// Records сериализует список записей в JSON-массив.
func Records(t models.ResourceType, v models.View, records []models.Record) (json.RawMessage, error) {
	const op = "serializer.Records"

	fields := projection.Fields(t, v)

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObject(&buf, t, fields, r, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// Record сериализует одну запись в JSON-объект.
func Record(t models.ResourceType, v models.View, r models.Record) (json.RawMessage, error) {
	const op = "serializer.Record"

	var buf bytes.Buffer
	if err := writeObject(&buf, t, projection.Fields(t, v), r, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// Forest сериализует лес в JSON-массив корней; у каждого узла есть массив children.
func Forest(t models.ResourceType, v models.View, f *tree.Forest[models.Record]) (json.RawMessage, error) {
	const op = "serializer.Forest"

	fields := projection.Fields(t, v)

	var buf bytes.Buffer
	if err := writeNodes(&buf, t, fields, f, f.Roots()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeNodes(buf *bytes.Buffer, t models.ResourceType, fields []string, f *tree.Forest[models.Record], idx []int) error {
	buf.WriteByte('[')
	for n, i := range idx {
		if n > 0 {
			buf.WriteByte(',')
		}

		kids := f.Children(i)
		err := writeObject(buf, t, fields, f.Value(i), func(buf *bytes.Buffer) error {
			return writeNodes(buf, t, fields, f, kids)
		})
		if err != nil {
			return err
		}
	}
	buf.WriteByte(']')

	return nil
}

// writeObject пишет объект с ключами в порядке fields. Отсутствующие у записи
// поля проекции пропускаются; лишние поля записи — ошибка.
func writeObject(buf *bytes.Buffer, t models.ResourceType, fields []string, r models.Record, children func(*bytes.Buffer) error) error {
	if r.Type != t {
		return fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, r.Type, t)
	}

	values := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		values[f.Name] = f.Value
	}
	for name := range values {
		if !contains(fields, name) {
			return fmt.Errorf("%w: %s.%s", ErrUnprojectedField, t, name)
		}
	}

	buf.WriteByte('{')
	first := true
	for _, name := range fields {
		val, ok := values[name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		if err := writeKV(buf, name, val); err != nil {
			return err
		}
	}

	if children != nil {
		if !first {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(childrenKey)
		buf.Write(key)
		buf.WriteByte(':')
		if err := children(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')

	return nil
}

func writeKV(buf *bytes.Buffer, name string, val any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}

	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(raw)

	return nil
}

func contains(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}

	return false
}
