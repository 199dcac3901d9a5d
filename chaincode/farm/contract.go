package farm

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// FarmContract manages crop, personnel and medicine records plus user
// accounts on a single flat keyspace. Records are keyed by their own
// code (CT001, HS001, TH001); user accounts live under the USER_
// prefix and are told apart by docType on scans.
type FarmContract struct {
	contractapi.Contract
}

// InitLedger writes the fixed sample data set. Existing sample keys
// are overwritten, so re-running it resets the samples.
func (c *FarmContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	return initLedger(ctx.GetStub())
}

// ---- CayTrong ----

func (c *FarmContract) CreateCayTrong(ctx contractapi.TransactionContextInterface, maCay, tenCay, ngayTrong, giaiDoan, nangSuat, dienTich string) (*CayTrong, error) {
	doc, err := createDoc(ctx.GetStub(), cayTrongSchema, maCay, map[string]string{
		"tenCay": tenCay, "ngayTrong": ngayTrong, "giaiDoan": giaiDoan,
		"nangSuat": nangSuat, "dienTich": dienTich,
	})
	if err != nil {
		return nil, err
	}
	return docAs[CayTrong](doc)
}

func (c *FarmContract) GetCayTrong(ctx contractapi.TransactionContextInterface, maCay string) (*CayTrong, error) {
	doc, err := getDoc(ctx.GetStub(), maCay)
	if err != nil {
		return nil, err
	}
	return docAs[CayTrong](doc)
}

func (c *FarmContract) GetAllCayTrong(ctx contractapi.TransactionContextInterface) (string, error) {
	return marshalEntries(scanByDocType(ctx.GetStub(), cayTrongSchema.DocType))
}

func (c *FarmContract) UpdateCayTrong(ctx contractapi.TransactionContextInterface, maCay, tenCay, ngayTrong, giaiDoan, nangSuat, dienTich string) (*CayTrong, error) {
	doc, err := updateDoc(ctx.GetStub(), cayTrongSchema, maCay, map[string]string{
		"tenCay": tenCay, "ngayTrong": ngayTrong, "giaiDoan": giaiDoan,
		"nangSuat": nangSuat, "dienTich": dienTich,
	})
	if err != nil {
		return nil, err
	}
	return docAs[CayTrong](doc)
}

func (c *FarmContract) DeleteCayTrong(ctx contractapi.TransactionContextInterface, maCay string) error {
	return deleteDoc(ctx.GetStub(), maCay)
}

func (c *FarmContract) QueryCayTrong(ctx contractapi.TransactionContextInterface, field, value string) (string, error) {
	return marshalEntries(filterByField(ctx.GetStub(), cayTrongSchema, field, value))
}

func (c *FarmContract) SetCayTrongField(ctx contractapi.TransactionContextInterface, maCay, field, value string) (*CayTrong, error) {
	doc, err := setField(ctx.GetStub(), cayTrongSchema, maCay, field, value)
	if err != nil {
		return nil, err
	}
	return docAs[CayTrong](doc)
}

// ---- HoSo ----

func (c *FarmContract) CreateHoSo(ctx contractapi.TransactionContextInterface, maHoSo, hoTen, ngaySinh, chucVu, ngayVaoLam, luong, soNamKinhNghiem string) (*HoSo, error) {
	doc, err := createDoc(ctx.GetStub(), hoSoSchema, maHoSo, map[string]string{
		"hoTen": hoTen, "ngaySinh": ngaySinh, "chucVu": chucVu,
		"ngayVaoLam": ngayVaoLam, "luong": luong, "soNamKinhNghiem": soNamKinhNghiem,
	})
	if err != nil {
		return nil, err
	}
	return docAs[HoSo](doc)
}

func (c *FarmContract) GetHoSo(ctx contractapi.TransactionContextInterface, maHoSo string) (*HoSo, error) {
	doc, err := getDoc(ctx.GetStub(), maHoSo)
	if err != nil {
		return nil, err
	}
	return docAs[HoSo](doc)
}

func (c *FarmContract) GetAllHoSo(ctx contractapi.TransactionContextInterface) (string, error) {
	return marshalEntries(scanByDocType(ctx.GetStub(), hoSoSchema.DocType))
}

func (c *FarmContract) UpdateHoSo(ctx contractapi.TransactionContextInterface, maHoSo, hoTen, ngaySinh, chucVu, ngayVaoLam, luong, soNamKinhNghiem string) (*HoSo, error) {
	doc, err := updateDoc(ctx.GetStub(), hoSoSchema, maHoSo, map[string]string{
		"hoTen": hoTen, "ngaySinh": ngaySinh, "chucVu": chucVu,
		"ngayVaoLam": ngayVaoLam, "luong": luong, "soNamKinhNghiem": soNamKinhNghiem,
	})
	if err != nil {
		return nil, err
	}
	return docAs[HoSo](doc)
}

func (c *FarmContract) DeleteHoSo(ctx contractapi.TransactionContextInterface, maHoSo string) error {
	return deleteDoc(ctx.GetStub(), maHoSo)
}

func (c *FarmContract) QueryHoSo(ctx contractapi.TransactionContextInterface, field, value string) (string, error) {
	return marshalEntries(filterByField(ctx.GetStub(), hoSoSchema, field, value))
}

func (c *FarmContract) SetHoSoField(ctx contractapi.TransactionContextInterface, maHoSo, field, value string) (*HoSo, error) {
	doc, err := setField(ctx.GetStub(), hoSoSchema, maHoSo, field, value)
	if err != nil {
		return nil, err
	}
	return docAs[HoSo](doc)
}

// ---- Thuoc ----

func (c *FarmContract) CreateThuoc(ctx contractapi.TransactionContextInterface, maThuoc, tenThuoc, nhaSanXuat, hanSuDung, donGia, soLuong string) (*Thuoc, error) {
	doc, err := createDoc(ctx.GetStub(), thuocSchema, maThuoc, map[string]string{
		"tenThuoc": tenThuoc, "nhaSanXuat": nhaSanXuat, "hanSuDung": hanSuDung,
		"donGia": donGia, "soLuong": soLuong,
	})
	if err != nil {
		return nil, err
	}
	return docAs[Thuoc](doc)
}

func (c *FarmContract) GetThuoc(ctx contractapi.TransactionContextInterface, maThuoc string) (*Thuoc, error) {
	doc, err := getDoc(ctx.GetStub(), maThuoc)
	if err != nil {
		return nil, err
	}
	return docAs[Thuoc](doc)
}

func (c *FarmContract) GetAllThuoc(ctx contractapi.TransactionContextInterface) (string, error) {
	return marshalEntries(scanByDocType(ctx.GetStub(), thuocSchema.DocType))
}

func (c *FarmContract) UpdateThuoc(ctx contractapi.TransactionContextInterface, maThuoc, tenThuoc, nhaSanXuat, hanSuDung, donGia, soLuong string) (*Thuoc, error) {
	doc, err := updateDoc(ctx.GetStub(), thuocSchema, maThuoc, map[string]string{
		"tenThuoc": tenThuoc, "nhaSanXuat": nhaSanXuat, "hanSuDung": hanSuDung,
		"donGia": donGia, "soLuong": soLuong,
	})
	if err != nil {
		return nil, err
	}
	return docAs[Thuoc](doc)
}

func (c *FarmContract) DeleteThuoc(ctx contractapi.TransactionContextInterface, maThuoc string) error {
	return deleteDoc(ctx.GetStub(), maThuoc)
}

func (c *FarmContract) QueryThuoc(ctx contractapi.TransactionContextInterface, field, value string) (string, error) {
	return marshalEntries(filterByField(ctx.GetStub(), thuocSchema, field, value))
}

func (c *FarmContract) SetThuocField(ctx contractapi.TransactionContextInterface, maThuoc, field, value string) (*Thuoc, error) {
	doc, err := setField(ctx.GetStub(), thuocSchema, maThuoc, field, value)
	if err != nil {
		return nil, err
	}
	return docAs[Thuoc](doc)
}

// marshalEntries serializes scan results itself so raw (undecodable)
// entries survive the contract API boundary unchanged.
func marshalEntries(entries []Entry, err error) (string, error) {
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode entries: %w", err)
	}
	return string(data), nil
}
