package template

import (
	"testing"
	"time"

	"github.com/myadmincaptiva/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderBody(t *testing.T) {
	mac := "00:11:22:33:44:55"
	data := AccountDataFromModel(model.Account{
		ID:                 "acc-1",
		Username:           "alice",
		Password:           "guest-pass",
		MACAddress:         &mac,
		UploadLimitBytes:   1024,
		DownloadLimitBytes: 2048,
		Timeout:            600,
		UpdatedAt:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	body := `{"e":"{{event}}","u":"{{account.username}}","m":"{{account.mac_address}}","up":{{account.upload_limit}},"down":{{account.download_limit}},"t":{{account.timeout}},"at":"{{account.updated_at}}"}`
	got := RenderBody(body, model.EventAccountCreated, &data)

	assert.Equal(t, `{"e":"account.created","u":"alice","m":"00:11:22:33:44:55","up":1024,"down":2048,"t":600,"at":"2024-05-01T12:00:00Z"}`, got)
}

func TestRenderBodyWithoutAccount(t *testing.T) {
	got := RenderBody("{{event}}:{{account.id}}:{{account.username}}", model.EventAccountDeleted, nil)
	assert.Equal(t, "account.deleted::", got)
}

func TestRenderBodyNoMAC(t *testing.T) {
	data := AccountDataFromModel(model.Account{ID: "acc-2", Username: "bob"})
	assert.Equal(t, "bob []", RenderBody("{{account.username}} [{{account.mac_address}}]", "x", &data))
}
