package router

import (
	"log"
	"net/http"
	"strings"
	"time"

	"cartroyal/config"
	"cartroyal/internal/handler"
	"cartroyal/internal/middleware"
	"cartroyal/internal/repository"
	"cartroyal/internal/service"
	"cartroyal/pkg/cloudinary"
	"cartroyal/pkg/gateway"
	"cartroyal/pkg/mailer"
	"cartroyal/pkg/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services, and handlers into the gin engine.
func Setup(cfg *config.Config, db *gorm.DB, cld cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// external clients
	fw := gateway.NewFlutterwaveClient(cfg.Flutterwave.BaseURL, cfg.Flutterwave.SecretKey)
	mail := mailer.NewResendClient(cfg.Resend.APIKey, cfg.Resend.From)
	var adminNotifier notify.AdminNotifier
	if cfg.Twilio.AccountSID != "" {
		adminNotifier = notify.NewTwilioWhatsApp(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken,
			cfg.Twilio.WhatsAppFrom, cfg.Twilio.WhatsAppTo)
	} else {
		log.Println("[router] Twilio not configured, admin order alerts disabled")
	}
	fcm := service.NewFCMService(cfg.Firebase.ServiceAccountPath)

	// services
	notifSvc := service.NewNotificationService(notifRepo, userRepo, fcm)
	tokenSvc := service.NewTokenService(tokenRepo)
	deliverySvc := service.NewDeliveryService(tokenSvc, orderRepo, cfg.App.BackendBaseURL)
	orderSvc := service.NewOrderService(orderRepo, userRepo, deliverySvc, mail, notifSvc, cfg.App.BrandName)
	reconcileSvc := service.NewReconcileService(
		service.ReconcileConfig{
			SuccessURL:     cfg.Flutterwave.SuccessURL,
			FailureURL:     cfg.Flutterwave.FailureURL,
			CurrencySymbol: cfg.Flutterwave.CurrencySymbol,
		},
		txRepo, orderRepo, userRepo, orderSvc, fw, adminNotifier,
	)
	checkoutSvc := service.NewCheckoutService(orderRepo, txRepo, userRepo, productRepo, fw,
		service.CheckoutConfig{
			Currency:    cfg.Flutterwave.Currency,
			CallbackURL: strings.TrimRight(cfg.App.BackendBaseURL, "/") + "/api/v1/webhooks/flutterwave/callback",
		})
	authSvc := service.NewAuthService(cfg, userRepo, tokenSvc, mail)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	orderH := handler.NewOrderHandler(orderRepo, orderSvc, checkoutSvc)
	txH := handler.NewTransactionHandler(txRepo, userRepo)
	productH := handler.NewProductHandler(productRepo, cld)
	adminH := handler.NewAdminHandler(userRepo)
	notifH := handler.NewNotificationHandler(notifRepo)
	webhookH := handler.NewPaymentWebhookHandler(reconcileSvc)

	authLimiter := middleware.NewInMemoryRateLimiter(20, time.Minute)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired(&cfg.JWT)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth", middleware.RateLimit(authLimiter))
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", authH.Login)
			auth.POST("/refresh", authH.Refresh)
			auth.POST("/forgotten-password", authH.ForgotPassword)
			auth.PATCH("/reset-password", authH.ResetPassword)
			auth.PUT("/change-password", authRequired, authH.ChangePassword)
		}

		// gateway redirect + tokenized confirmation link: both public, the
		// caller is a browser, not an authenticated client
		v1.GET("/webhooks/flutterwave/callback", webhookH.Callback)
		v1.GET("/order/confirm-received", orderH.ConfirmReceived)

		v1.GET("/products", productH.List)
		v1.GET("/products/:productId", productH.Get)

		orders := v1.Group("/orders", authRequired)
		{
			orders.GET("", middleware.AdminRequired(), orderH.List)
			orders.GET("/my-orders", orderH.MyOrders)
			orders.POST("/checkout", orderH.Checkout)
			orders.PUT("/:orderId/sent-for-delivery", middleware.AdminRequired(), orderH.SentForDelivery)
		}

		user := v1.Group("", authRequired)
		{
			user.GET("/transactions/id/:id", txH.GetByID)
			user.GET("/transactions/reference/:reference", txH.GetByReference)
			user.GET("/notifications", notifH.List)
			user.PATCH("/notifications/:id/read", notifH.MarkRead)
		}

		admin := v1.Group("/admin", authRequired, middleware.AdminRequired())
		{
			admin.GET("/users", adminH.ListUsers)
			admin.POST("/products", productH.Create)
			admin.PUT("/products/:productId", productH.Update)
		}
	}

	return r
}
