// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"drivelink/internal/delivery/http/middleware"
	"drivelink/internal/delivery/http/router/handler"
	"drivelink/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CarHandler     *handler.CarHandler
	FinanceHandler *handler.FinanceHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	carHandler     *handler.CarHandler
	financeHandler *handler.FinanceHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		carHandler:     params.CarHandler,
		financeHandler: params.FinanceHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session and account routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me)
	}

	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.PATCH("", r.authHandler.UpdateProfile)
	}

	// Fleet routes. Reads are open to any authenticated role; mutations need
	// manager level or above.
	carGroup := e.Group("/cars")
	carGroup.Use(r.authMiddleware.Authenticate)
	{
		carGroup.GET("", r.carHandler.ListCars)
		carGroup.GET("/:id", r.carHandler.GetCar)
	}

	carAdminGroup := e.Group("/cars")
	carAdminGroup.Use(r.authMiddleware.Authenticate)
	carAdminGroup.Use(r.authMiddleware.RequirePermission(entity.RoleManager))
	{
		carAdminGroup.POST("", r.carHandler.CreateCar)
		carAdminGroup.PATCH("/:id", r.carHandler.UpdateCar)
		carAdminGroup.DELETE("/:id", r.carHandler.DeleteCar)
		carAdminGroup.POST("/:id/driver", r.carHandler.AssignDriver)
		carAdminGroup.POST("/:id/manager", r.carHandler.AssignManager)
	}

	// Owner-scoped car listing
	ownerGroup := e.Group("/owners")
	ownerGroup.Use(r.authMiddleware.Authenticate)
	{
		ownerGroup.GET("/:userId/cars", r.carHandler.ListOwnerCars)
	}

	// Finance routes: reads for managers and above, writes for drivers too
	// (drivers log their own trips and fuel).
	financeGroup := e.Group("/finance")
	financeGroup.Use(r.authMiddleware.Authenticate)
	{
		financeGroup.POST("/revenue", r.financeHandler.CreateRevenue)
		financeGroup.POST("/expenses", r.financeHandler.CreateExpense)
	}

	financeManageGroup := e.Group("/finance")
	financeManageGroup.Use(r.authMiddleware.Authenticate)
	financeManageGroup.Use(r.authMiddleware.RequirePermission(entity.RoleManager))
	{
		financeManageGroup.GET("/revenue", r.financeHandler.ListRevenueByDateRange)
		financeManageGroup.GET("/revenue/recent", r.financeHandler.ListRecentRevenue)
		financeManageGroup.PATCH("/revenue/:id", r.financeHandler.UpdateRevenue)
		financeManageGroup.DELETE("/revenue/:id", r.financeHandler.DeleteRevenue)
		financeManageGroup.GET("/expenses", r.financeHandler.ListExpensesByDateRange)
		financeManageGroup.GET("/expenses/recent", r.financeHandler.ListRecentExpenses)
		financeManageGroup.PATCH("/expenses/:id", r.financeHandler.UpdateExpense)
		financeManageGroup.DELETE("/expenses/:id", r.financeHandler.DeleteExpense)

		financeManageGroup.GET("/cars/:carId/revenue", r.financeHandler.ListCarRevenue)
		financeManageGroup.GET("/cars/:carId/revenue/total", r.financeHandler.GetTotalRevenue)
		financeManageGroup.GET("/cars/:carId/expenses", r.financeHandler.ListCarExpenses)
		financeManageGroup.GET("/cars/:carId/expenses/total", r.financeHandler.GetTotalExpenses)
		financeManageGroup.GET("/cars/:carId/profit-loss", r.financeHandler.GetProfitLoss)
	}

	// People directory: managers and above.
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.RequirePermission(entity.RoleManager))
	{
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.GET("/drivers", r.userHandler.ListDrivers)
		userGroup.GET("/managers", r.userHandler.ListManagers)
		userGroup.GET("/owners", r.userHandler.ListOwners)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.GET("/:id/driver", r.userHandler.GetDriverWithCar)
		userGroup.GET("/:id/manager", r.userHandler.GetManagerWithCars)
	}

	// Drivers report their own position; managers and admins may correct a
	// driver's record. Owners have no dispatch duties, so the exact-role gate
	// keeps them out.
	locationGroup := e.Group("/users")
	locationGroup.Use(r.authMiddleware.Authenticate)
	locationGroup.Use(r.authMiddleware.RequireRole(entity.RoleDriver, entity.RoleManager, entity.RoleAdmin))
	{
		locationGroup.PUT("/:id/location", r.userHandler.UpdateDriverLocation)
	}
}
