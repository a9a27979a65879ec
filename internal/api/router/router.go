package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rosterhub/backend/config"
	"rosterhub/backend/internal/api/handler"
	"rosterhub/backend/internal/api/middleware"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/pkg/jwt"
	"rosterhub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户管理模块（无自助注册，账号由管理员创建）
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleManager, model.RoleAdmin), h.User.List)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.Create)
			}

			// 排班模块（读取放开到 manager，写入仅限 admin）
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/week", h.Schedule.GetWeek)
				schedules.GET("/global/:user_id", middleware.RoleAuth(model.RoleManager, model.RoleAdmin), h.Schedule.GetGlobal)
				schedules.PUT("/global/:user_id", middleware.RoleAuth(model.RoleAdmin), h.Schedule.UpdateGlobal)
				schedules.GET("/overrides/:user_id", middleware.RoleAuth(model.RoleManager, model.RoleAdmin), h.Schedule.ListOverrides)
				schedules.PUT("/overrides/:user_id", middleware.RoleAuth(model.RoleAdmin), h.Schedule.UpsertOverride)
				schedules.DELETE("/overrides/:user_id", middleware.RoleAuth(model.RoleAdmin), h.Schedule.DeleteOverride)
			}

			// 工时记录模块
			entries := authorized.Group("/entries")
			{
				entries.POST("", h.Entry.Create)
				entries.GET("/week", h.Entry.ListWeek)
				entries.GET("/week-status", h.Entry.WeekStatus)
				entries.GET("/holiday-check", h.Entry.HolidayCheck)
			}

			// 审批模块（周末工时审批）
			approvals := authorized.Group("/approvals")
			approvals.Use(middleware.RoleAuth(model.RoleManager, model.RoleAdmin))
			{
				approvals.GET("/pending", h.Approval.ListPending)
				approvals.POST("/:id", h.Approval.Decide)
			}

			// 薪资周期
			authorized.GET("/payroll/period", h.Schedule.GetPayPeriod)

			// 导出模块（本人随时可导，他人需 manager/admin，Handler 层鉴权）
			authorized.GET("/export/week", h.Export.ExportWeek)
		}
	}

	return r
}
