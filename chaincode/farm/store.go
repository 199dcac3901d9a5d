package farm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

var (
	ErrNotFound      = errors.New("does not exist")
	ErrAlreadyExists = errors.New("already exists")
)

// State is the subset of the chaincode stub the record store needs.
// Kept narrow so tests can run against an in-memory implementation.
type State interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	DelState(key string) error
	GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error)
}

// Doc is a record document as stored on the ledger.
type Doc map[string]interface{}

// Entry is one {key, document} pair from a range scan. Values that are
// not valid JSON are carried in Raw instead of being dropped.
type Entry struct {
	Key    string `json:"key"`
	Record Doc    `json:"record,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

func docExists(s State, key string) (bool, error) {
	data, err := s.GetState(key)
	if err != nil {
		return false, fmt.Errorf("read state %s: %w", key, err)
	}
	return data != nil, nil
}

func getDoc(s State, key string) (Doc, error) {
	data, err := s.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", key, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%s %w", key, ErrNotFound)
	}
	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func putDoc(s State, key string, doc Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.PutState(key, data)
}

// createDoc stores a new document at key. The docType discriminator is
// stamped and numeric fields are parsed before storing; the raw input
// string is never persisted for a numeric field.
func createDoc(s State, sc Schema, key string, fields map[string]string) (Doc, error) {
	exists, err := docExists(s, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s %w", key, ErrAlreadyExists)
	}
	doc, err := buildDoc(sc, key, fields)
	if err != nil {
		return nil, err
	}
	if err := putDoc(s, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// updateDoc overwrites every schema field of an existing document,
// preserving the key field and docType.
func updateDoc(s State, sc Schema, key string, fields map[string]string) (Doc, error) {
	exists, err := docExists(s, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s %w", key, ErrNotFound)
	}
	doc, err := buildDoc(sc, key, fields)
	if err != nil {
		return nil, err
	}
	if err := putDoc(s, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func deleteDoc(s State, key string) error {
	exists, err := docExists(s, key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %w", key, ErrNotFound)
	}
	return s.DelState(key)
}

// setField mutates a single field of an existing document in place.
// Read-modify-write: two concurrent callers on the same key race and
// the ledger commits last-write-wins, bounded only by Fabric's own
// read-set validation.
func setField(s State, sc Schema, key, field, raw string) (Doc, error) {
	doc, err := getDoc(s, key)
	if err != nil {
		return nil, err
	}
	value, err := coerce(sc, field, raw)
	if err != nil {
		return nil, err
	}
	doc[field] = value
	if err := putDoc(s, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// scanByDocType walks the whole keyspace in native store order and
// keeps documents whose docType matches. Undecodable values pass
// through as raw entries.
func scanByDocType(s State, docType string) ([]Entry, error) {
	iter, err := s.GetStateByRange("", "")
	if err != nil {
		return nil, fmt.Errorf("range scan: %w", err)
	}
	defer iter.Close()

	entries := []Entry{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("range scan next: %w", err)
		}
		var doc Doc
		if err := json.Unmarshal(kv.Value, &doc); err != nil {
			entries = append(entries, Entry{Key: kv.Key, Raw: string(kv.Value)})
			continue
		}
		if dt, _ := doc["docType"].(string); dt != docType {
			continue
		}
		entries = append(entries, Entry{Key: kv.Key, Record: doc})
	}
	return entries, nil
}

// filterByField is scanByDocType followed by an equality predicate on
// one decoded field. Evaluated here, not as an indexed query; fine at
// small record-set scale.
func filterByField(s State, sc Schema, field, value string) ([]Entry, error) {
	entries, err := scanByDocType(s, sc.DocType)
	if err != nil {
		return nil, err
	}
	want, err := coerce(sc, field, value)
	if err != nil {
		return nil, err
	}
	matched := []Entry{}
	for _, e := range entries {
		if e.Record == nil {
			continue
		}
		if fieldEquals(e.Record[field], want) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// fieldEquals compares a decoded JSON value against a coerced input.
// Decoded numbers are float64; int-kind inputs are widened to match.
func fieldEquals(have, want interface{}) bool {
	if i, ok := want.(int); ok {
		want = float64(i)
	}
	if f, ok := want.(float64); ok {
		h, ok := have.(float64)
		return ok && h == f
	}
	return have == want
}

func buildDoc(sc Schema, key string, fields map[string]string) (Doc, error) {
	doc := Doc{"docType": sc.DocType}
	doc[sc.KeyField] = key
	for name, raw := range fields {
		value, err := coerce(sc, name, raw)
		if err != nil {
			return nil, err
		}
		doc[name] = value
	}
	return doc, nil
}
