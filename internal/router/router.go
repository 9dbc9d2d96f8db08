package router

import (
	"devconnect/internal/handlers"
	"devconnect/internal/middleware"
	"devconnect/internal/services"

	"github.com/gin-gonic/gin"
)

// Services 是路由所需的全部依赖，由 main 组装后注入
type Services struct {
	Tokens   *services.TokenService
	Users    *services.UserService
	Posts    *services.PostService
	Profiles *services.ProfileService
}

func RegisterRoutes(r *gin.Engine, s Services) {
	// Handlers
	authHandler := handlers.NewAuthHandler(s.Users)
	postHandler := handlers.NewPostHandler(s.Posts)
	profileHandler := handlers.NewProfileHandler(s.Profiles)

	authRequired := middleware.AuthRequired(s.Tokens)

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.POST("/users", authHandler.Register)                // 注册
	api.POST("/auth", authHandler.Login)                    // 登录
	api.GET("/profile", profileHandler.List)                // 所有 profile
	api.GET("/profile/user/:userId", profileHandler.ByUser) // 指定用户的 profile

	// 受保护路由 (Protected Routes)
	api.GET("/auth", authRequired, authHandler.Me)          // 当前用户
	api.GET("/profile/me", authRequired, profileHandler.Me) // 我的 profile
	api.POST("/profile", authRequired, profileHandler.Save) // 创建/更新 profile

	posts := api.Group("/posts")
	posts.Use(authRequired)
	{
		posts.POST("", postHandler.Create)                                     // 发帖
		posts.GET("", postHandler.List)                                        // 帖子列表
		posts.GET("/:postId", postHandler.Get)                                 // 帖子详情
		posts.DELETE("/:postId", postHandler.Delete)                           // 删除帖子
		posts.PUT("/like/:postId", postHandler.Like)                           // 点赞
		posts.PUT("/unlike/:postId", postHandler.Unlike)                       // 取消点赞
		posts.POST("/comment/:postId", postHandler.CreateComment)              // 发表评论
		posts.DELETE("/comment/:postId/:commentId", postHandler.DeleteComment) // 删除评论
	}
}
