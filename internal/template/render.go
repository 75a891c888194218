// Package template provides account hook body template rendering.
//
// 지원하는 변수 형식:
//
//	{{event}}
//
//	{{account.id}}, {{account.username}}, {{account.mac_address}},
//	{{account.upload_limit}}, {{account.download_limit}},
//	{{account.timeout}}, {{account.updated_at}}
//
// password는 변수로 제공하지 않는다.
package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/myadmincaptiva/backend/internal/model"
)

// AccountData - 템플릿 렌더링에 사용할 Account 데이터
type AccountData struct {
	ID            string
	Username      string
	MACAddress    string
	UploadLimit   int64
	DownloadLimit int64
	Timeout       int
	UpdatedAt     time.Time
}

// AccountDataFromModel - model.Account에서 AccountData 생성
func AccountDataFromModel(acc model.Account) AccountData {
	mac := ""
	if acc.HasMAC() {
		mac = *acc.MACAddress
	}
	return AccountData{
		ID:            acc.ID,
		Username:      acc.Username,
		MACAddress:    mac,
		UploadLimit:   acc.UploadLimitBytes,
		DownloadLimit: acc.DownloadLimitBytes,
		Timeout:       acc.Timeout,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// RenderBody - hook body 템플릿의 변수를 실제 값으로 치환
//
// account가 nil이면 account 변수는 빈 문자열로 치환됩니다.
func RenderBody(body, event string, account *AccountData) string {
	pairs := make([]string, 0, 16)
	pairs = append(pairs, "{{event}}", event)

	if account != nil {
		updatedAt := ""
		if !account.UpdatedAt.IsZero() {
			updatedAt = account.UpdatedAt.Format(time.RFC3339)
		}
		pairs = append(pairs,
			"{{account.id}}", account.ID,
			"{{account.username}}", account.Username,
			"{{account.mac_address}}", account.MACAddress,
			"{{account.upload_limit}}", strconv.FormatInt(account.UploadLimit, 10),
			"{{account.download_limit}}", strconv.FormatInt(account.DownloadLimit, 10),
			"{{account.timeout}}", strconv.Itoa(account.Timeout),
			"{{account.updated_at}}", updatedAt,
		)
	} else {
		pairs = append(pairs,
			"{{account.id}}", "",
			"{{account.username}}", "",
			"{{account.mac_address}}", "",
			"{{account.upload_limit}}", "",
			"{{account.download_limit}}", "",
			"{{account.timeout}}", "",
			"{{account.updated_at}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
