package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/booking"
	bookingHttp "github.com/peershare/item-sharing-backend/internal/booking/http"
	"github.com/peershare/item-sharing-backend/internal/comment"
	commentHttp "github.com/peershare/item-sharing-backend/internal/comment/http"
	"github.com/peershare/item-sharing-backend/internal/item"
	itemHttp "github.com/peershare/item-sharing-backend/internal/item/http"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	itemrequestHttp "github.com/peershare/item-sharing-backend/internal/itemrequest/http"
	"github.com/peershare/item-sharing-backend/internal/photo"
	photoHttp "github.com/peershare/item-sharing-backend/internal/photo/http"
	"github.com/peershare/item-sharing-backend/internal/user"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

// Config holds the services and settings required to assemble the router.
type Config struct {
	IsProduction       bool
	ProdOrigins        string
	UserService        user.Service
	ItemService        item.Service
	ItemRequestService itemrequest.Service
	BookingService     booking.Service
	CommentService     comment.Service
	PhotoService       photo.Service
	JWTManager         *auth.JWTManager
	Logger             *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: Logs request information via zap.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	itemRequestHandler := itemrequestHttp.NewHandler(cfg.ItemRequestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	commentHandler := commentHttp.NewHandler(cfg.CommentService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		itemHttp.RegisterRoutes(v1, itemHandler, authMiddleware)
		itemrequestHttp.RegisterRoutes(v1, itemRequestHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		commentHttp.RegisterRoutes(v1, commentHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
