package handler

import (
	"log"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Auth           *AuthHandler
	Accounts       *AccountHandler
	Verifier       tokenVerifier
	AllowedOrigins []string
	TrustedProxies []string
}

// NewRouter wires the public and bearer-guarded routes. Listing accounts is public.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	// ClientIP keys the login limiter; forwarded headers count only from these proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Ignoring TRUSTED_PROXIES: %v", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Logger(), gin.Recovery(), CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/openapi.json", OpenAPIDoc)

	api := router.Group("/api")
	api.POST("/auth/login", cfg.Auth.Login)
	api.GET("/users", cfg.Accounts.ListAccounts)

	protected := api.Group("", AuthMiddleware(cfg.Verifier))
	protected.GET("/auth/me", cfg.Auth.Me)
	protected.POST("/users", cfg.Accounts.CreateAccount)
	protected.PUT("/users/:id", cfg.Accounts.UpdateAccount)
	protected.DELETE("/users/:id", cfg.Accounts.DeleteAccount)

	return router
}
