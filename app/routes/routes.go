package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"starlog/app/auth"
	"starlog/app/blobstore"
	"starlog/app/controllers"
	"starlog/app/middleware"
	"starlog/app/repositories"
	"starlog/app/services"
)

// Deps carries everything the router needs.
type Deps struct {
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Users    repositories.UserRepository
	Blobs    blobstore.Store
	Tokens   *auth.TokenIssuer
	Log      zerolog.Logger
}

// Setup defines the application's routes and returns a router.
func Setup(deps Deps) *mux.Router {
	postService := services.NewPostService(deps.Posts, deps.Comments, deps.Users)
	commentService := services.NewCommentService(deps.Comments, deps.Posts)
	authService := auth.NewService(deps.Users, deps.Tokens)

	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	authController := controllers.NewAuthController(authService)
	uploadController := controllers.NewUploadController(deps.Blobs)

	router := mux.NewRouter()
	router.Use(middleware.Logger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))
	router.Use(middleware.Authenticate(deps.Tokens))

	api := router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/register", authController.Register).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Posts endpoints. Fixed paths are registered before the {id} catch-all.
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/mine", postController.Mine).Methods("GET")
	posts.HandleFunc("/admin/pending", postController.Pending).Methods("GET")
	posts.HandleFunc("/admin/{id}/approve", postController.Approve).Methods("PATCH")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Comments endpoints
	posts.HandleFunc("/{postId}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{postId}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id}", commentController.Delete).Methods("DELETE")

	// Asset uploads
	api.HandleFunc("/uploads", uploadController.Create).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given
// router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
