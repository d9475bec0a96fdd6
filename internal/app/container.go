package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/peershare/item-sharing-backend/internal/api"
	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/booking"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	"github.com/peershare/item-sharing-backend/internal/photo"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
	"github.com/peershare/item-sharing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Storage      storage.Storage
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService)

	// ItemRequest Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, itemService, cfg.Logger)

	// Comment Module
	commentRepo := comment.NewPgxRepository(cfg.DBPool)
	commentService := comment.NewService(commentRepo, itemService, userService, bookingService)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, itemService, cfg.Storage)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		ItemService:        itemService,
		ItemRequestService: requestService,
		BookingService:     bookingService,
		CommentService:     commentService,
		PhotoService:       photoService,
		JWTManager:         jwtManager,
		Logger:             cfg.Logger,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
