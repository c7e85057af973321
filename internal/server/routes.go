package server

import (
	"foh/internal/config"
	"foh/internal/domain/model"
	"foh/internal/handler"
	"foh/internal/middleware"
	"foh/internal/repository"
	"foh/internal/ws"

	"github.com/labstack/echo/v4"
)

// Handlersはルーティングに載せるハンドラ一式
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Table   *handler.TableHandler
	Waiter  *handler.WaiterOrderHandler
	Kitchen *handler.KitchenHandler
	Billing *handler.BillingHandler
	Report  *handler.ReportHandler
	Hub     *ws.Hub
}

// RegisterRoutesは全ルートを登録する
func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	// 認証不要
	h.Catalog.RegisterRoutes(e)

	auth := middleware.AuthJWT(cfg)
	resolve := middleware.RoleResolver(userRepo)

	// ログイン必須（役割は問わない）
	authed := e.Group("", auth, resolve)
	h.Auth.RegisterRoutes(e, authed)
	authed.GET("/ws", h.Hub.Handler())

	// テーブル一覧はスタッフ全員が見る
	staff := e.Group("", auth, resolve, middleware.RequireRole(model.RoleWaiter, model.RoleChef))
	h.Table.RegisterRoutes(staff)

	waiter := e.Group("/waiter", auth, resolve, middleware.RequireRole(model.RoleWaiter))
	h.Waiter.RegisterRoutes(waiter)

	kitchen := e.Group("/kitchen", auth, resolve, middleware.RequireRole(model.RoleChef))
	h.Kitchen.RegisterRoutes(kitchen)

	billing := e.Group("/billing", auth, resolve, middleware.RequireRole(model.RoleWaiter))
	h.Billing.RegisterRoutes(billing)

	// Adminのみ
	admin := e.Group("/admin", auth, resolve, middleware.RequireRole())
	h.Report.RegisterRoutes(admin)
}
