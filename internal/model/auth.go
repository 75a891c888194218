package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleBypassed = "bypassed"
)

// LoginRequest - 로그인 요청 (bypassKey는 선택)
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	BypassKey string `json:"bypassKey"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Session - 검증된 토큰의 클레임
type Session struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
