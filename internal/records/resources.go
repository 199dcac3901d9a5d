package records

// Resource describes one record type exposed over HTTP. The three
// record types share every code path; each resource is a value here,
// not a copy of the pipeline.
type Resource struct {
	Name     string   // URL segment
	Tx       string   // chaincode method suffix (CreateX, GetX, ...)
	KeyField string   // body/document key of the record code
	Fields   []string // non-key fields, in chaincode argument order

	// Dimensions maps a filter URL segment to the document field the
	// equality predicate runs on.
	Dimensions map[string]string

	// Actions maps a PATCH URL segment to the single document field it
	// mutates. The request body carries the field under its own name.
	Actions map[string]string
}

var (
	CayTrong = Resource{
		Name:       "caytrong",
		Tx:         "CayTrong",
		KeyField:   "maCay",
		Fields:     []string{"tenCay", "ngayTrong", "giaiDoan", "nangSuat", "dienTich"},
		Dimensions: map[string]string{"giaidoan": "giaiDoan"},
		Actions:    map[string]string{"giaidoan": "giaiDoan", "nangsuat": "nangSuat"},
	}

	HoSo = Resource{
		Name:       "hoso",
		Tx:         "HoSo",
		KeyField:   "maHoSo",
		Fields:     []string{"hoTen", "ngaySinh", "chucVu", "ngayVaoLam", "luong", "soNamKinhNghiem"},
		Dimensions: map[string]string{"chucvu": "chucVu"},
		Actions:    map[string]string{"chucvu": "chucVu", "luong": "luong"},
	}

	Thuoc = Resource{
		Name:       "thuoc",
		Tx:         "Thuoc",
		KeyField:   "maThuoc",
		Fields:     []string{"tenThuoc", "nhaSanXuat", "hanSuDung", "donGia", "soLuong"},
		Dimensions: map[string]string{"nhasanxuat": "nhaSanXuat"},
		Actions:    map[string]string{"soluong": "soLuong", "dongia": "donGia"},
	}
)

// All lists the resources the server registers routes for.
func All() []Resource {
	return []Resource{CayTrong, HoSo, Thuoc}
}
