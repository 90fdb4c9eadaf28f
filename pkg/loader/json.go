package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// DecodeJSON reads exactly one JSON value from r. Object members keep the
// order they were written in and numbers keep their literal text.
func DecodeJSON(r io.Reader) (*tree.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		n.Release()
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", t, dec.InputOffset())
		}
	case string:
		return tree.NewString(t), nil
	case json.Number:
		return tree.NewNumber(t.String())
	case bool:
		return tree.NewBool(t), nil
	case nil:
		return tree.NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*tree.Node, error) {
	obj := tree.NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			obj.Release()
			return nil, truncated(err)
		}
		key, ok := tok.(string)
		if !ok {
			obj.Release()
			return nil, fmt.Errorf("object key is %T, not a string", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			obj.Release()
			return nil, truncated(err)
		}
		// Duplicate keys: the last one wins, as with encoding/json.
		if err := obj.Add(key, v); err != nil {
			v.Release()
			obj.Release()
			return nil, truncated(err)
		}
	}
	if _, err := dec.Token(); err != nil {
		obj.Release()
		return nil, truncated(err)
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*tree.Node, error) {
	arr := tree.NewArray()
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			arr.Release()
			return nil, truncated(err)
		}
		if err := arr.Append(v); err != nil {
			v.Release()
			arr.Release()
			return nil, truncated(err)
		}
	}
	if _, err := dec.Token(); err != nil {
		arr.Release()
		return nil, truncated(err)
	}
	return arr, nil
}

// truncated reports end of input inside a container as an unexpected EOF.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
