package router

import (
	"net/http"

	"github.com/impapp/backend/internal/auth"
	"github.com/impapp/backend/internal/ledger"
	"github.com/impapp/backend/internal/middleware"
	"github.com/impapp/backend/internal/profile"
	"github.com/impapp/backend/internal/rewards"
)

// New returns an http.Handler serving the API under /api/v1. Everything
// except register/login requires a Bearer token.
func New(
	authHandler *auth.Handler,
	ledgerHandler *ledger.Handler,
	rewardsHandler *rewards.Handler,
	profileHandler *profile.Handler,
	authSvc auth.Service,
) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"
	authed := middleware.Auth(authSvc)

	mux.HandleFunc("POST "+base+"/auth/register", authHandler.Register)
	mux.HandleFunc("POST "+base+"/auth/login", authHandler.Login)

	mux.Handle("POST "+base+"/log", authed(http.HandlerFunc(ledgerHandler.LogEvent)))
	mux.Handle("GET "+base+"/me", authed(http.HandlerFunc(ledgerHandler.GetSnapshot)))
	mux.Handle("GET "+base+"/today", authed(http.HandlerFunc(ledgerHandler.GetToday)))
	mux.Handle("GET "+base+"/history", authed(http.HandlerFunc(ledgerHandler.GetHistory)))

	mux.Handle("PUT "+base+"/profile", authed(http.HandlerFunc(profileHandler.Update)))

	mux.Handle("GET "+base+"/rewards/options", authed(http.HandlerFunc(rewardsHandler.ListOptions)))
	mux.Handle("POST "+base+"/rewards/redeem", authed(http.HandlerFunc(rewardsHandler.Redeem)))
	mux.Handle("GET "+base+"/rewards/redemptions", authed(http.HandlerFunc(rewardsHandler.ListRedemptions)))

	return mux
}
