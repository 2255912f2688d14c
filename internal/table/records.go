// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"go.yaml.in/yaml/v3"
)

// Record is one row keyed by column name. It marshals to JSON and YAML with
// keys in column order.
type Record struct {
	Keys   []string
	Values []any
}

// Records returns the rows of f as records.
func (f *Frame) Records() []Record {
	names := f.Names()
	out := make([]Record, f.Height())
	for i := range out {
		out[i] = Record{Keys: names, Values: f.Row(i)}
	}
	return out
}

// MarshalJSON implements json.Marshaler. Non-finite floats are written as
// null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		v := r.Values[i]
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.Keys {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		if err := vn.Encode(r.Values[i]); err != nil {
			return nil, fmt.Errorf("column %s: %w", k, err)
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

// WriteJSON writes the rows of f as an indented JSON array.
func (f *Frame) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f.Records())
}

// WriteYAML writes the rows of f as a YAML sequence.
func (f *Frame) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f.Records()); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
