package records

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farmnet/farmledger/internal/ledger"
)

type call struct {
	name string
	args []string
}

type fakeInvoker struct {
	submits []call
	evals   []call
	payload []byte
	err     error
}

func (f *fakeInvoker) SubmitTransaction(name string, args ...string) ([]byte, error) {
	f.submits = append(f.submits, call{name, args})
	return f.payload, f.err
}

func (f *fakeInvoker) EvaluateTransaction(name string, args ...string) ([]byte, error) {
	f.evals = append(f.evals, call{name, args})
	return f.payload, f.err
}

func fakeSession(inv *fakeInvoker) *ledger.Session {
	return ledger.NewSession(inv, "appUser", "static", nil)
}

func TestCreateArgsFollowDescriptorOrder(t *testing.T) {
	inv := &fakeInvoker{payload: []byte(`{"maCay":"CT009"}`)}
	svc := NewService(CayTrong)

	out, err := svc.Create(fakeSession(inv), "CT009", map[string]string{
		"dienTich": "1.0", "tenCay": "Chè Shan Tuyết", "nangSuat": "0.9",
		"ngayTrong": "2023-02-02", "giaiDoan": "Cây con",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"maCay":"CT009"}`, string(out))

	require.Len(t, inv.submits, 1)
	require.Equal(t, "CreateCayTrong", inv.submits[0].name)
	require.Equal(t, []string{"CT009", "Chè Shan Tuyết", "2023-02-02", "Cây con", "0.9", "1.0"}, inv.submits[0].args)
}

func TestListDecodesEntriesWithRawPassthrough(t *testing.T) {
	inv := &fakeInvoker{payload: []byte(`[{"key":"CT001","record":{"maCay":"CT001","nangSuat":2.5}},{"key":"JUNK1","raw":"not json"}]`)}
	svc := NewService(CayTrong)

	entries, err := svc.List(fakeSession(inv))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "CT001", entries[0].Key)
	require.Equal(t, 2.5, entries[0].Record["nangSuat"])
	require.Equal(t, "not json", entries[1].Raw)
	require.Nil(t, entries[1].Record)

	require.Len(t, inv.evals, 1)
	require.Equal(t, "GetAllCayTrong", inv.evals[0].name)
}

func TestFilterMapsDimensionToField(t *testing.T) {
	inv := &fakeInvoker{payload: []byte(`[]`)}
	svc := NewService(Thuoc)

	_, err := svc.Filter(fakeSession(inv), "nhasanxuat", "Syngenta")
	require.NoError(t, err)
	require.Equal(t, "QueryThuoc", inv.evals[0].name)
	require.Equal(t, []string{"nhaSanXuat", "Syngenta"}, inv.evals[0].args)

	_, err = svc.Filter(fakeSession(inv), "hansudung", "2026")
	require.Error(t, err)
	require.Len(t, inv.evals, 1, "unknown dimension must not reach the ledger")
}

func TestSetFieldMapsActionToField(t *testing.T) {
	inv := &fakeInvoker{payload: []byte(`{"maHoSo":"HS001","luong":12.5}`)}
	svc := NewService(HoSo)

	out, err := svc.SetField(fakeSession(inv), "HS001", "luong", "12.5")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Equal(t, 12.5, doc["luong"])

	require.Equal(t, "SetHoSoField", inv.submits[0].name)
	require.Equal(t, []string{"HS001", "luong", "12.5"}, inv.submits[0].args)

	_, err = svc.SetField(fakeSession(inv), "HS001", "hoten", "x")
	require.Error(t, err)
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("CT404 does not exist")
	inv := &fakeInvoker{err: boom}
	svc := NewService(CayTrong)

	_, err := svc.Get(fakeSession(inv), "CT404")
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, svc.Delete(fakeSession(inv), "CT404"), boom)
}

func TestResourceDescriptors(t *testing.T) {
	for _, res := range All() {
		require.NotEmpty(t, res.Name)
		require.NotEmpty(t, res.Tx)
		require.NotEmpty(t, res.KeyField)
		require.NotEmpty(t, res.Fields)
		require.NotEmpty(t, res.Dimensions)
		require.Len(t, res.Actions, 2)
	}
}
