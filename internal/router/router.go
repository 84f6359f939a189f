package router

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/promopilot/promopilot-api/internal/handler"
	"github.com/promopilot/promopilot-api/internal/middleware"
	"github.com/promopilot/promopilot-api/internal/model"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth            *handler.AuthHandler
	Campaign        *handler.CampaignHandler
	Budget          *handler.BudgetHandler
	Engagement      *handler.EngagementHandler
	ExecutionStatus *handler.ExecutionStatusHandler
	Sale            *handler.SaleHandler
	Product         *handler.ProductHandler
	Customer        *handler.CustomerHandler
	Report          *handler.ReportHandler
	Audit           *handler.AuditHandler
}

// New builds the echo instance with every route and its role guard.
func New(h Handlers, db *sql.DB, rdb *redis.Client, jwtSecret string, cacheTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	auth := middleware.JWTAuth(jwtSecret)
	cache := middleware.CacheResponse(rdb, cacheTTL)
	marketing := middleware.RequireRole(model.RoleMarketing)
	finance := middleware.RequireRole(model.RoleFinance)
	storeManager := middleware.RequireRole(model.RoleStoreManager)

	e.GET("/healthz", handler.Health(db))

	authGroup := e.Group("/api/Auth")
	authGroup.POST("/Register", h.Auth.Register)
	authGroup.POST("/Login", h.Auth.Login)
	authGroup.POST("/Refresh", h.Auth.Refresh)
	authGroup.POST("/Logout", h.Auth.Logout)

	campaign := e.Group("/api/Campaign", auth)
	campaign.POST("/PlanCampaign", h.Campaign.Plan, marketing)
	campaign.GET("/GetAllCampaigns", h.Campaign.GetAll,
		middleware.RequireRole(model.RoleMarketing, model.RoleStoreManager), cache)
	campaign.GET("/GetCampaignById/:id", h.Campaign.GetByID,
		middleware.RequireRole(model.RoleMarketing, model.RoleStoreManager))
	campaign.PUT("/UpdateCampaign/:id", h.Campaign.Update, marketing)
	campaign.DELETE("/CancelCampaign/:id", h.Campaign.Cancel, marketing)
	campaign.PUT("/ScheduleCampaign/:id", h.Campaign.Schedule, marketing)

	budget := e.Group("/api/Budget", auth)
	budget.GET("/ViewAllBudgets", h.Budget.ViewAll, finance, cache)
	budget.GET("/ViewBudgetById/:id", h.Budget.ViewByID,
		middleware.RequireRole(model.RoleFinance, model.RoleMarketing))
	budget.POST("/AllocateBudget", h.Budget.Allocate, finance)
	budget.PUT("/UpdateBudget/:id", h.Budget.Update, finance)
	budget.DELETE("/DeleteBudget/:id", h.Budget.Delete, finance)

	engagement := e.Group("/api/Engagement", auth)
	engagement.GET("/ViewAllEngagements", h.Engagement.ViewAll,
		middleware.RequireRole(model.RoleMarketing, model.RoleStoreManager), cache)
	engagement.GET("/ViewEngagementById/:id", h.Engagement.ViewByID, storeManager)
	engagement.POST("/TrackEngagement", h.Engagement.Track, storeManager)
	engagement.PUT("/UpdateEngagement/:id", h.Engagement.Update, storeManager)
	engagement.DELETE("/DeleteEngagement/:id", h.Engagement.Delete, storeManager)

	execution := e.Group("/api/ExecutionStatus", auth)
	execution.POST("/CreateExecutionStatus", h.ExecutionStatus.Create, storeManager)
	execution.GET("/ViewAllExecutionStatuses", h.ExecutionStatus.ViewAll, storeManager, cache)
	execution.GET("/ViewExecutionStatusById/:id", h.ExecutionStatus.ViewByID,
		middleware.RequireRole(model.RoleStoreManager, model.RoleMarketing))
	execution.PUT("/UpdateExecutionStatus/:id", h.ExecutionStatus.Update, storeManager)
	execution.DELETE("/DeleteExecutionStatus/:id", h.ExecutionStatus.Delete, storeManager)

	sale := e.Group("/api/Sale", auth)
	sale.POST("/ProcessSale", h.Sale.Process, storeManager)
	sale.GET("/ViewAllSales", h.Sale.ViewAll,
		middleware.RequireRole(model.RoleMarketing, model.RoleFinance), cache)
	sale.GET("/ViewSaleById/:id", h.Sale.ViewByID,
		middleware.RequireRole(model.RoleMarketing, model.RoleFinance))
	sale.PUT("/UpdateSale/:id", h.Sale.Update, storeManager)
	sale.DELETE("/DeleteSale/:id", h.Sale.Delete, storeManager)

	product := e.Group("/api/Product", auth, marketing)
	product.POST("/AddProduct", h.Product.Create)
	product.GET("/ViewAllProducts", h.Product.ViewAll, cache)
	product.GET("/ViewProductById/:id", h.Product.ViewByID)
	product.PUT("/UpdateProduct/:id", h.Product.Update)
	product.DELETE("/DeleteProduct/:id", h.Product.Delete)

	customer := e.Group("/api/Customer", auth, marketing)
	customer.POST("/AddCustomer", h.Customer.Create)
	customer.GET("/ViewAllCustomers", h.Customer.ViewAll, cache)
	customer.GET("/ViewCustomerById/:id", h.Customer.ViewByID)
	customer.PUT("/UpdateCustomer/:id", h.Customer.Update)
	customer.DELETE("/DeleteCustomer/:id", h.Customer.Delete)

	report := e.Group("/api/CampaignReport", auth)
	report.GET("/ViewAllCampaignReports", h.Report.ViewAll, marketing, cache)
	report.GET("/ViewCampaignReportById/:id", h.Report.ViewByID, marketing)
	report.GET("/CompareByRegion", h.Report.CompareByRegion, marketing)
	report.POST("/GenerateReport/:id", h.Report.Generate, storeManager)

	analytics := e.Group("/api/CampaignAnalytics", auth)
	analytics.GET("/RoiSummary", h.Report.RoiSummary, marketing)

	audit := e.Group("/api/AuditLogs", auth)
	audit.GET("/GetAll", h.Audit.GetAll)
	audit.GET("/ByEntity/:entityName", h.Audit.ByEntity)
	audit.GET("/ByUser/:userId", h.Audit.ByUser)

	return e
}
