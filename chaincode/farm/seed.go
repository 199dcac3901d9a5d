package farm

import (
	"encoding/json"
	"fmt"
)

// Sample data written by InitLedger. Sample keys are overwritten on
// every run so a redeployed network starts from a known state.
var (
	seedCayTrong = []CayTrong{
		{DocType: "caytrong", MaCay: "CT001", TenCay: "Cà phê Arabica", NgayTrong: "2021-03-15", GiaiDoan: "Trưởng thành", NangSuat: 2.5, DienTich: 1.2},
		{DocType: "caytrong", MaCay: "CT002", TenCay: "Hồ tiêu", NgayTrong: "2022-06-01", GiaiDoan: "Ra hoa", NangSuat: 1.8, DienTich: 0.8},
		{DocType: "caytrong", MaCay: "CT003", TenCay: "Sầu riêng Ri6", NgayTrong: "2020-01-20", GiaiDoan: "Thu hoạch", NangSuat: 12.0, DienTich: 2.5},
	}
	seedHoSo = []HoSo{
		{DocType: "hoso", MaHoSo: "HS001", HoTen: "Nguyễn Văn An", NgaySinh: "1985-04-12", ChucVu: "Quản lý", NgayVaoLam: "2015-08-01", Luong: 15.5, SoNamKinhNghiem: 10},
		{DocType: "hoso", MaHoSo: "HS002", HoTen: "Trần Thị Bình", NgaySinh: "1992-11-03", ChucVu: "Kỹ thuật viên", NgayVaoLam: "2019-02-15", Luong: 9.2, SoNamKinhNghiem: 5},
	}
	seedThuoc = []Thuoc{
		{DocType: "thuoc", MaThuoc: "TH001", TenThuoc: "Ridomil Gold 68WG", NhaSanXuat: "Syngenta", HanSuDung: "2026-12-31", DonGia: 125.5, SoLuong: 40},
		{DocType: "thuoc", MaThuoc: "TH002", TenThuoc: "Actara 25WG", NhaSanXuat: "Syngenta", HanSuDung: "2025-10-15", DonGia: 89.0, SoLuong: 120},
	}
)

func initLedger(s State) error {
	for _, ct := range seedCayTrong {
		if err := seedPut(s, ct.MaCay, ct); err != nil {
			return err
		}
	}
	for _, hs := range seedHoSo {
		if err := seedPut(s, hs.MaHoSo, hs); err != nil {
			return err
		}
	}
	for _, th := range seedThuoc {
		if err := seedPut(s, th.MaThuoc, th); err != nil {
			return err
		}
	}
	// default operator account, password "admin123"
	admin := User{
		DocType:  userDocType,
		Username: "admin",
		HoTen:    "Quản trị viên",
		Role:     "admin",
		MatKhau:  hashPassword("admin123"),
	}
	return seedPut(s, userPrefix+admin.Username, admin)
}

func seedPut(s State, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode seed %s: %w", key, err)
	}
	return s.PutState(key, data)
}
