package farm

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NumKind declares how a field's raw string input is parsed before it
// is stored.
type NumKind int

const (
	NumFloat NumKind = iota + 1
	NumInt
)

// Schema describes one record type: its docType discriminator, the
// field holding the record key, and which fields are numeric. The
// three record types share all store logic and differ only here.
type Schema struct {
	DocType  string
	KeyField string
	Numeric  map[string]NumKind
}

var (
	cayTrongSchema = Schema{
		DocType:  "caytrong",
		KeyField: "maCay",
		Numeric:  map[string]NumKind{"nangSuat": NumFloat, "dienTich": NumFloat},
	}
	hoSoSchema = Schema{
		DocType:  "hoso",
		KeyField: "maHoSo",
		Numeric:  map[string]NumKind{"luong": NumFloat, "soNamKinhNghiem": NumInt},
	}
	thuocSchema = Schema{
		DocType:  "thuoc",
		KeyField: "maThuoc",
		Numeric:  map[string]NumKind{"donGia": NumFloat, "soLuong": NumInt},
	}
)

// coerce parses raw into the field's declared representation. Non-numeric
// fields pass through as strings.
func coerce(sc Schema, field, raw string) (interface{}, error) {
	switch sc.Numeric[field] {
	case NumFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: invalid number %q", field, raw)
		}
		return f, nil
	case NumInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: invalid integer %q", field, raw)
		}
		return i, nil
	default:
		return raw, nil
	}
}

// CayTrong is a cultivated crop record.
type CayTrong struct {
	DocType   string  `json:"docType"`
	MaCay     string  `json:"maCay"`
	TenCay    string  `json:"tenCay"`
	NgayTrong string  `json:"ngayTrong"`
	GiaiDoan  string  `json:"giaiDoan"`
	NangSuat  float64 `json:"nangSuat"`
	DienTich  float64 `json:"dienTich"`
}

// HoSo is a personnel file.
type HoSo struct {
	DocType         string  `json:"docType"`
	MaHoSo          string  `json:"maHoSo"`
	HoTen           string  `json:"hoTen"`
	NgaySinh        string  `json:"ngaySinh"`
	ChucVu          string  `json:"chucVu"`
	NgayVaoLam      string  `json:"ngayVaoLam"`
	Luong           float64 `json:"luong"`
	SoNamKinhNghiem int     `json:"soNamKinhNghiem"`
}

// Thuoc is a plant-protection medicine record.
type Thuoc struct {
	DocType    string  `json:"docType"`
	MaThuoc    string  `json:"maThuoc"`
	TenThuoc   string  `json:"tenThuoc"`
	NhaSanXuat string  `json:"nhaSanXuat"`
	HanSuDung  string  `json:"hanSuDung"`
	DonGia     float64 `json:"donGia"`
	SoLuong    int     `json:"soLuong"`
}

// docAs round-trips a stored document into its typed form.
func docAs[T any](doc Doc) (*T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
