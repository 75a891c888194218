package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/myadmincaptiva/backend/internal/config"
	"github.com/myadmincaptiva/backend/internal/model"
	tmpl "github.com/myadmincaptiva/backend/internal/template"
)

const hookTimeout = 10 * time.Second

// AccountHookService - 계정 변경을 captive portal 게이트웨이에 HTTP로 알리는 서비스
//
// nil receiver는 아무것도 보내지 않는다.
type AccountHookService struct {
	url        string
	method     string
	body       string
	token      string
	httpClient *http.Client
}

// NewAccountHookService returns nil when no hook URL is configured.
func NewAccountHookService(cfg config.HookConfig) *AccountHookService {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil
	}
	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = http.MethodPost
	}
	return &AccountHookService{
		url:    cfg.URL,
		method: method,
		body:   cfg.Body,
		token:  cfg.Token,
		httpClient: &http.Client{
			Timeout: hookTimeout,
		},
	}
}

// Notify - 요청 처리를 막지 않도록 background에서 Deliver 실행
func (s *AccountHookService) Notify(event string, acc model.Account) {
	if s == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()
		if err := s.Deliver(ctx, event, acc); err != nil {
			log.Printf("[AccountHook] Failed to deliver %s (id=%s): %v", event, acc.ID, err)
			return
		}
		log.Printf("[AccountHook] Delivered %s (id=%s)", event, acc.ID)
	}()
}

// Deliver - 단일 이벤트를 렌더링 후 전송
//
// body 템플릿이 비어 있으면 model.AccountEvent JSON을 보낸다.
func (s *AccountHookService) Deliver(ctx context.Context, event string, acc model.Account) error {
	if s == nil {
		return nil
	}

	payload, err := s.render(event, acc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, s.method, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *AccountHookService) render(event string, acc model.Account) ([]byte, error) {
	if s.body == "" {
		return json.Marshal(model.AccountEvent{Event: event, Account: acc.Digest()})
	}
	data := tmpl.AccountDataFromModel(acc)
	return []byte(tmpl.RenderBody(s.body, event, &data)), nil
}
