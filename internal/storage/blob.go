package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/user/watchstore/internal/model"
)

// gzipMagic is the two-byte gzip stream header, used to sniff
// compressed blobs on read.
var gzipMagic = []byte{0x1f, 0x8b}

// EncodeBlob serializes the tables as one JSON document whose top-level
// keys are table names and values are record arrays. Schema tables come
// first in declaration order; tables present in memory but absent from
// the schema (imported data) follow, sorted by json map rules is avoided
// by explicit assembly, so output is deterministic.
func EncodeBlob(schema *model.Schema, tables map[string][]model.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	names := schema.TableNames()
	for _, name := range tableNamesWithExtras(names, tables) {
		records := tables[name]
		if records == nil {
			records = []model.Record{}
		}

		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		arr, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal table %s: %w", name, err)
		}
		buf.Write(arr)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeBlob parses a store blob back into tables. Gzip-framed blobs
// are decompressed transparently. Unparsable content fails hard with
// model.ErrCorruptBlob; the caller aborts initialization.
func DecodeBlob(data []byte) (map[string][]model.Record, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		var err error
		data, err = gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrCorruptBlob, err)
		}
	}

	var tables map[string][]model.Record
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptBlob, err)
	}
	if tables == nil {
		return nil, fmt.Errorf("%w: blob is null", model.ErrCorruptBlob)
	}

	for name, records := range tables {
		if records == nil {
			tables[name] = []model.Record{}
		}
	}
	return tables, nil
}

// Gzip compresses a blob for backup slots.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to compress blob: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// tableNamesWithExtras returns schema names in order, then any extra
// in-memory tables sorted by name.
func tableNamesWithExtras(schemaNames []string, tables map[string][]model.Record) []string {
	known := make(map[string]bool, len(schemaNames))
	out := make([]string, 0, len(tables))
	for _, name := range schemaNames {
		known[name] = true
		out = append(out, name)
	}

	var extras []string
	for name := range tables {
		if !known[name] {
			extras = append(extras, name)
		}
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		out = append(out, extras...)
	}
	return out
}
