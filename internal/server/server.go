package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/paulogil93/habitua-te-api/internal/auth"
	"github.com/paulogil93/habitua-te-api/internal/config"
	"github.com/paulogil93/habitua-te-api/internal/database"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// Options configures the HTTP server.
type Options struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	// KeyGenerator makes the API key of newly registered users.
	KeyGenerator auth.KeyGenerator
	// Redis enables the API key cache when set.
	Redis       *redis.Client
	KeyCacheTTL time.Duration
}

// OptionsFromConfig maps the service configuration onto server options.
// The redis client is left for the caller to attach.
func OptionsFromConfig(cfg *config.Config) Options {
	keys := auth.RandomKeys()
	if cfg.Keys.Mode == config.KeyModeDerived {
		keys = auth.DerivedKeys(cfg.Keys.Secret)
	}
	return Options{
		Addr:           cfg.Addr(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		KeyGenerator:   keys,
		KeyCacheTTL:    cfg.Redis.KeyCacheTTL,
	}
}

type Server struct {
	Server *http.Server
	log    *zerolog.Logger
	db     *database.Database
	gate   *auth.Gate

	users      *UserHandler
	events     *EventHandler
	catalog    *CatalogHandler
	likes      *LikeHandler
	attends    *AttendHandler
	favourites *FavouriteHandler
}

func New(opts Options, db *database.Database, log *zerolog.Logger) *Server {
	// Initialize repositories
	gdb := db.DB()
	userRepo := repository.NewUserRepository(gdb, *log)
	keyRepo := repository.NewAPIKeyRepository(gdb, *log)
	eventRepo := repository.NewEventRepository(gdb, *log)
	categoryRepo := repository.NewCategoryRepository(gdb, *log)
	productRepo := repository.NewProductRepository(gdb, *log)
	likeRepo := repository.NewLikeRepository(gdb, *log)
	attendRepo := repository.NewAttendRepository(gdb, *log)
	favouriteRepo := repository.NewFavouriteRepository(gdb, *log)

	var keyStore auth.KeyStore = auth.NewKeyStore(userRepo, keyRepo)
	if opts.Redis != nil {
		keyStore = auth.NewCachedKeyStore(keyStore, opts.Redis, opts.KeyCacheTTL, *log)
	}
	if opts.KeyGenerator == nil {
		opts.KeyGenerator = auth.RandomKeys()
	}

	s := &Server{
		Server: &http.Server{
			Addr:         opts.Addr,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		log:        log,
		db:         db,
		gate:       auth.NewGate(keyStore, log),
		users:      NewUserHandler(userRepo, opts.KeyGenerator, keyStore, log),
		events:     NewEventHandler(eventRepo, log),
		catalog:    NewCatalogHandler(categoryRepo, productRepo, log),
		likes:      NewLikeHandler(likeRepo, log),
		attends:    NewAttendHandler(attendRepo, log),
		favourites: NewFavouriteHandler(favouriteRepo, log),
	}

	// Setup routes
	r := mux.NewRouter()
	s.setupRoutes(r)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.Server.Handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", auth.HeaderName, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(r)

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

func (s *Server) setupRoutes(r *mux.Router) {
	r.Use(s.requestIDMiddleware, s.loggingMiddleware, s.recoveryMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint
	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()
	user := func(path string, h http.HandlerFunc, methods ...string) {
		api.Handle(path, s.gate.RequireUser(h)).Methods(methods...)
	}
	admin := func(path string, h http.HandlerFunc, methods ...string) {
		api.Handle(path, s.gate.RequireAdmin(h)).Methods(methods...)
	}

	// Users routes
	user("/users/", s.users.ListUsers, "GET")
	user("/users/", s.users.CreateUser, "POST")
	user("/users/{id:[0-9]+}/", s.users.GetUser, "GET")
	admin("/users/{id:[0-9]+}/", s.users.UpdateUser, "PUT")
	admin("/users/{id:[0-9]+}/", s.users.DeleteUser, "DELETE")

	// Events routes
	admin("/events/", s.events.ListEvents, "GET")
	admin("/events/", s.events.CreateEvent, "POST")
	user("/events/news/", s.events.ListNews, "GET")
	user("/events/event/", s.events.ListUpcoming, "GET")
	user("/events/event/all/", s.events.ListAllOfTypeEvent, "GET")
	user("/events/{id:[0-9]+}/", s.events.GetEvent, "GET")
	admin("/events/{id:[0-9]+}/", s.events.UpdateEvent, "PUT")
	admin("/events/{id:[0-9]+}/", s.events.DeleteEvent, "DELETE")

	// Products routes
	user("/products/", s.catalog.ListProducts, "GET")
	admin("/products/", s.catalog.CreateProduct, "POST")
	user("/products/category/{id:[0-9]+}", s.catalog.ListProductsByCategory, "GET")
	user("/products/category/{id:[0-9]+}/", s.catalog.ListProductsByCategory, "GET")
	user("/products/{id:[0-9]+}/", s.catalog.GetProduct, "GET")
	admin("/products/{id:[0-9]+}/", s.catalog.UpdateProduct, "PUT")
	admin("/products/{id:[0-9]+}/", s.catalog.DeleteProduct, "DELETE")

	// Categories routes
	user("/categories/", s.catalog.ListCategories, "GET")
	admin("/categories/", s.catalog.CreateCategory, "POST")
	user("/categories/{id:[0-9]+}/", s.catalog.GetCategory, "GET")
	admin("/categories/{id:[0-9]+}/", s.catalog.UpdateCategory, "PUT")
	admin("/categories/{id:[0-9]+}/", s.catalog.DeleteCategory, "DELETE")

	// Likes routes
	user("/likes/", s.likes.ListLikes, "GET")
	user("/likes/", s.likes.CreateLike, "POST")
	user("/likes/user/{id:[0-9]+}/", s.likes.ListByUser, "GET")
	user("/likes/event/{id:[0-9]+}/", s.likes.ListByEvent, "GET")
	user("/likes/{id:[0-9]+}/", s.likes.GetLike, "GET")
	user("/likes/{id:[0-9]+}/", s.likes.UpdateLike, "PUT")
	user("/likes/{id:[0-9]+}/", s.likes.DeleteLike, "DELETE")

	// Attendance routes
	user("/attends/", s.attends.ListAttends, "GET")
	user("/attends/", s.attends.CreateAttend, "PUT")
	user("/attends/all/", s.attends.ListAttendees, "GET")
	user("/attends/event/{id:[0-9]+}/all/", s.attends.ListEventAttendees, "GET")
	user("/attends/event/{id:[0-9]+}/{category}/", s.attends.ListEventAttendees, "GET")
	user("/attends/{id:[0-9]+}/", s.attends.UpsertAttend, "PUT")
	user("/attends/{id:[0-9]+}/", s.attends.DeleteAttend, "DELETE")
	user("/attends/{category}/", s.attends.ListAttendees, "GET")

	// Favourites routes
	user("/favourites/", s.favourites.ListFavourites, "GET")
	user("/favourites/top5/", s.favourites.TopFive, "GET")
	user("/favourites/user/{id:[0-9]+}/", s.favourites.ListByUser, "GET")
	user("/favourites/{id:[0-9]+}/", s.favourites.GetFavourite, "GET")
	user("/favourites/{id:[0-9]+}/", s.favourites.UpsertFavourite, "PUT")
	user("/favourites/{id:[0-9]+}/", s.favourites.DeleteFavourite, "DELETE")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.log.Error().Msg("Database is not initialized")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database not initialized",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
