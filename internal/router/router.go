package router

import (
	"blogicum/internal/config"
	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the route table onto the engine.
func RegisterRoutes(r *gin.Engine, s *store.Store, cfg *config.Config) {
	postHandler := handlers.NewPostHandler(s, cfg)
	categoryHandler := handlers.NewCategoryHandler(s)
	profileHandler := handlers.NewProfileHandler(s)
	authHandler := handlers.NewAuthHandler(s.Users)

	// Public routes
	r.GET("/", postHandler.Index)                         // paginated index of visible posts
	r.GET("/posts/:id/", postHandler.Detail)              // post detail + comments + comment form
	r.GET("/category/:slug/", categoryHandler.List)       // paginated posts in category
	r.GET("/profile/:username/", profileHandler.Profile)  // paginated posts by author

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/posts/create/", postHandler.ShowCreate)
		authorized.POST("/posts/create/", postHandler.Create)
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit/", postHandler.Update)
		authorized.GET("/posts/:id/delete/", postHandler.ShowDelete)   // confirmation view
		authorized.POST("/posts/:id/delete/", postHandler.Delete)      // performs the deletion

		authorized.POST("/posts/:id/comment/", postHandler.CreateComment)
		authorized.GET("/posts/:id/edit_comment/:cid/", postHandler.ShowEditComment)
		authorized.POST("/posts/:id/edit_comment/:cid/", postHandler.UpdateComment)
		authorized.GET("/posts/:id/delete_comment/:cid/", postHandler.ShowDeleteComment)
		authorized.POST("/posts/:id/delete_comment/:cid/", postHandler.DeleteComment)

		authorized.GET("/edit_profile/", profileHandler.ShowEdit)
		authorized.POST("/edit_profile/", profileHandler.Update)
	}
}
