package routes

import (
	"net/http"

	"bloghouse/app/controllers"
	"bloghouse/app/middleware"
	"bloghouse/app/repositories"
	"bloghouse/app/services"
	"bloghouse/app/sessions"
	"bloghouse/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps is everything the router needs to build controllers.
type Deps struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Sessions *sessions.Manager
	Logger   *zap.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) (*mux.Router, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	metrics, err := middleware.Metrics()
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(deps.Users)
	postService := services.NewPostService(deps.Posts, deps.Comments, deps.Users)
	commentService := services.NewCommentService(deps.Comments, deps.Posts)

	base := controllers.NewBase(renderer, logger)
	homeController := controllers.NewHomeController(base, postService)
	authController := controllers.NewAuthController(base, userService, deps.Sessions)
	postController := controllers.NewPostController(base, postService)
	commentController := controllers.NewCommentController(base, commentService, postService)

	gate := &middleware.Gate{Forbidden: http.HandlerFunc(base.Forbidden)}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(metrics)
	router.Use(middleware.NoCache)
	router.Use(middleware.LoadSession(deps.Sessions, deps.Users, logger))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static()))

	// Web routes
	router.HandleFunc("/", homeController.Index).Methods("GET", "POST")
	router.HandleFunc("/about", homeController.About).Methods("GET")
	router.HandleFunc("/contact", homeController.Contact).Methods("GET")

	router.HandleFunc("/register", authController.Register).Methods("GET", "POST")
	router.HandleFunc("/login", authController.Login).Methods("GET", "POST")
	router.Handle("/logout", gate.RequireAuth(http.HandlerFunc(authController.Logout))).Methods("GET")

	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", commentController.Create).Methods("POST")

	admin := router.NewRoute().Subrouter()
	admin.Use(gate.AdminOnly)
	admin.HandleFunc("/new-post", postController.New).Methods("GET", "POST")
	admin.HandleFunc("/edit-post/{id:[0-9]+}", postController.Edit).Methods("GET", "POST")
	admin.HandleFunc("/delete-post/{id:[0-9]+}", postController.Delete).Methods("GET", "POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.NotFoundHandler = http.HandlerFunc(base.NotFound)

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.APIIndex).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.APIShow).Methods("GET")

	return router, nil
}
