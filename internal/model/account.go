package model

import "time"

const DefaultIdleTimeout = 1200

// Account - 게스트 네트워크 계정
//
// Byte limits keep the portal UI's field names.
type Account struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Password           string    `json:"password"`
	MACAddress         *string   `json:"macAddress"`
	UploadLimitBytes   int64     `json:"uploadLimitBites"`
	DownloadLimitBytes int64     `json:"downloadLimitBites"`
	Timeout            int       `json:"timeout"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// AccountInput - 계정 생성/수정 요청 구조체
type AccountInput struct {
	Username           string `json:"username" binding:"required,max=64"`
	Password           string `json:"password" binding:"required,max=128"`
	MACAddress         string `json:"macAddress"`
	UploadLimitBytes   int64  `json:"uploadLimitBites" binding:"gte=0"`
	DownloadLimitBytes int64  `json:"downloadLimitBites" binding:"gte=0"`
	Timeout            *int   `json:"timeout" binding:"omitempty,gt=0"`
}

// HasMAC reports whether the account is bound to a MAC address.
func (a Account) HasMAC() bool {
	return a.MACAddress != nil && *a.MACAddress != ""
}
