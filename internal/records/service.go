package records

import (
	"encoding/json"
	"fmt"

	"github.com/farmnet/farmledger/internal/ledger"
	"github.com/farmnet/farmledger/pkg/metrics"
)

// Entry is one {key, document} pair from a ledger scan. Stored values
// that are not valid JSON arrive in Raw.
type Entry struct {
	Key    string                 `json:"key"`
	Record map[string]interface{} `json:"record,omitempty"`
	Raw    string                 `json:"raw,omitempty"`
}

// Service runs record operations for one resource over a
// caller-provided session. One ledger operation per call; failures
// propagate unchanged.
type Service struct {
	res Resource
}

func NewService(res Resource) *Service {
	return &Service{res: res}
}

func (s *Service) Resource() Resource { return s.res }

func (s *Service) List(sess *ledger.Session) ([]Entry, error) {
	data, err := sess.Evaluate("GetAll" + s.res.Tx)
	if err != nil {
		return nil, s.counted("list", err)
	}
	return s.decodeEntries("list", data)
}

func (s *Service) Get(sess *ledger.Session, key string) (json.RawMessage, error) {
	data, err := sess.Evaluate("Get"+s.res.Tx, key)
	return json.RawMessage(data), s.counted("get", err)
}

// Create submits a new record. Field values are ordered by the
// resource descriptor, never by map iteration.
func (s *Service) Create(sess *ledger.Session, key string, fields map[string]string) (json.RawMessage, error) {
	data, err := sess.Submit("Create"+s.res.Tx, s.args(key, fields)...)
	return json.RawMessage(data), s.counted("create", err)
}

func (s *Service) Update(sess *ledger.Session, key string, fields map[string]string) (json.RawMessage, error) {
	data, err := sess.Submit("Update"+s.res.Tx, s.args(key, fields)...)
	return json.RawMessage(data), s.counted("update", err)
}

func (s *Service) Delete(sess *ledger.Session, key string) error {
	_, err := sess.Submit("Delete"+s.res.Tx, key)
	return s.counted("delete", err)
}

// Filter runs the equality query for one dimension of this resource.
func (s *Service) Filter(sess *ledger.Session, dimension, value string) ([]Entry, error) {
	field, ok := s.res.Dimensions[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown %s filter %q", s.res.Name, dimension)
	}
	data, err := sess.Evaluate("Query"+s.res.Tx, field, value)
	if err != nil {
		return nil, s.counted("filter", err)
	}
	return s.decodeEntries("filter", data)
}

// SetField submits the narrow single-field mutation behind a PATCH
// action.
func (s *Service) SetField(sess *ledger.Session, key, action, value string) (json.RawMessage, error) {
	field, ok := s.res.Actions[action]
	if !ok {
		return nil, fmt.Errorf("unknown %s action %q", s.res.Name, action)
	}
	data, err := sess.Submit("Set"+s.res.Tx+"Field", key, field, value)
	return json.RawMessage(data), s.counted("patch", err)
}

func (s *Service) args(key string, fields map[string]string) []string {
	args := make([]string, 0, len(s.res.Fields)+1)
	args = append(args, key)
	for _, f := range s.res.Fields {
		args = append(args, fields[f])
	}
	return args
}

func (s *Service) decodeEntries(op string, data []byte) ([]Entry, error) {
	entries := []Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, s.counted(op, fmt.Errorf("decode %s response: %w", op, err))
	}
	return entries, s.counted(op, nil)
}

func (s *Service) counted(op string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LedgerTransactions.WithLabelValues(s.res.Name, op, outcome).Inc()
	return err
}
