package scanner

// Kategori kegagalan akses kamera. Nama error mengikuti yang dilempar
// browser dari getUserMedia; frontend mengirim apa adanya lalu menampilkan
// pesan dan langkah perbaikan dari sini.

type CameraIssue struct {
	Code    string   `json:"code"`
	Pesan   string   `json:"pesan"`
	Langkah []string `json:"langkah,omitempty"`
}

func ClassifyCameraError(name string) CameraIssue {
	switch name {
	case "NotAllowedError", "PermissionDeniedError":
		return CameraIssue{
			Code:  "izin-ditolak",
			Pesan: "Izin kamera ditolak. Klik ikon kamera di address bar browser untuk mengizinkan.",
			Langkah: []string{
				"Klik ikon kunci/kamera di address bar (kiri atas)",
				"Pilih 'Izinkan' untuk akses kamera",
				"Muat ulang halaman lalu coba scan lagi",
			},
		}
	case "NotFoundError", "DevicesNotFoundError":
		return CameraIssue{
			Code:  "kamera-tidak-ada",
			Pesan: "Kamera tidak ditemukan. Pastikan perangkat memiliki kamera.",
		}
	case "NotReadableError", "TrackStartError":
		return CameraIssue{
			Code:  "kamera-dipakai",
			Pesan: "Kamera sedang digunakan aplikasi lain. Tutup aplikasi tersebut dan coba lagi.",
		}
	case "SecurityError", "InsecureContext":
		return CameraIssue{
			Code:  "bukan-https",
			Pesan: "Akses kamera diblokir. Pastikan menggunakan HTTPS (https://).",
		}
	case "Unsupported":
		return CameraIssue{
			Code:  "browser-tidak-didukung",
			Pesan: "Browser tidak mendukung akses kamera. Gunakan browser modern seperti Chrome atau Firefox.",
		}
	default:
		return CameraIssue{
			Code:  "gagal",
			Pesan: "Gagal mengakses kamera. Muat ulang halaman dan coba lagi.",
		}
	}
}
