// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	amenityhandler "rental_backend/internal/feature/amenities/transport/handler"
	authhandler "rental_backend/internal/feature/auth/transport/handler"
	photohandler "rental_backend/internal/feature/photoinsights/transport/handler"
	placehandler "rental_backend/internal/feature/places/transport/handler"
	reviewhandler "rental_backend/internal/feature/reviews/transport/handler"
	userhandler "rental_backend/internal/feature/users/transport/handler"
	jwtmw "rental_backend/internal/platform/jwt"
)

// Handlers はルーターに登録する全フィーチャーのハンドラーを束ねます。
// PhotoInsightsはVision/Gemini未設定の環境ではnilになり、ルートごと省略されます。
type Handlers struct {
	Auth          *authhandler.AuthHandler
	Users         *userhandler.UserHandler
	Amenities     *amenityhandler.AmenityHandler
	Places        *placehandler.PlaceHandler
	Reviews       *reviewhandler.ReviewHandler
	PhotoInsights *photohandler.PhotoInsightsHandler
}

// NewRouter は全ルートを登録したgin.Engineを生成します。
// 読み取り系は認証不要、書き込み系はJWT必須です。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health)

	v1 := r.Group("/api/v1")

	// 認証不要
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.POST("/auth/logout", h.Auth.Logout)

	v1.GET("/users", h.Users.List)
	v1.GET("/users/:id", h.Users.Get)
	v1.GET("/amenities", h.Amenities.List)
	v1.GET("/amenities/:id", h.Amenities.Get)
	v1.GET("/places", h.Places.List)
	v1.GET("/places/:id", h.Places.Get)
	v1.GET("/places/:id/reviews", h.Reviews.ListByPlace)
	v1.GET("/reviews", h.Reviews.List)
	v1.GET("/reviews/:id", h.Reviews.Get)

	// 認証必須のルート
	auth := v1.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/users", h.Users.Create)
		auth.PUT("/users/:id", h.Users.Update)

		auth.POST("/amenities", h.Amenities.Create)
		auth.PUT("/amenities/:id", h.Amenities.Update)

		auth.POST("/places", h.Places.Create)
		auth.PUT("/places/:id", h.Places.Update)
		auth.DELETE("/places/:id", h.Places.Delete)

		auth.POST("/reviews", h.Reviews.Create)
		auth.PUT("/reviews/:id", h.Reviews.Update)
		auth.DELETE("/reviews/:id", h.Reviews.Delete)

		if h.PhotoInsights != nil {
			auth.POST("/places/:id/photo-insights", h.PhotoInsights.Analyze)
		}
	}

	return r
}
