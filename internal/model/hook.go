package model

const (
	EventAccountCreated = "account.created"
	EventAccountUpdated = "account.updated"
	EventAccountDeleted = "account.deleted"
)

// AccountEvent - 계정 변경 hook 기본 payload (password 제외)
type AccountEvent struct {
	Event   string        `json:"event"`
	Account AccountDigest `json:"account"`
}

// AccountDigest - 게이트웨이에 전달하는 계정 정보
type AccountDigest struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username,omitempty"`
	MACAddress         *string `json:"macAddress,omitempty"`
	UploadLimitBytes   int64   `json:"uploadLimitBites"`
	DownloadLimitBytes int64   `json:"downloadLimitBites"`
	Timeout            int     `json:"timeout,omitempty"`
}

// Digest drops the password.
func (a Account) Digest() AccountDigest {
	return AccountDigest{
		ID:                 a.ID,
		Username:           a.Username,
		MACAddress:         a.MACAddress,
		UploadLimitBytes:   a.UploadLimitBytes,
		DownloadLimitBytes: a.DownloadLimitBytes,
		Timeout:            a.Timeout,
	}
}
