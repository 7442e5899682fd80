package main

import (
	"context"
	"log"
	"os"
	"time"

	"rental_backend/internal/app/router"
	amenityadapters "rental_backend/internal/feature/amenities/adapters"
	amenityhandler "rental_backend/internal/feature/amenities/transport/handler"
	amenityusecase "rental_backend/internal/feature/amenities/usecase"
	authhandler "rental_backend/internal/feature/auth/transport/handler"
	authusecase "rental_backend/internal/feature/auth/usecase"
	"rental_backend/internal/feature/photoinsights/adapters/gemini"
	"rental_backend/internal/feature/photoinsights/adapters/vision"
	photohandler "rental_backend/internal/feature/photoinsights/transport/handler"
	photousecase "rental_backend/internal/feature/photoinsights/usecase"
	placeadapters "rental_backend/internal/feature/places/adapters"
	placehandler "rental_backend/internal/feature/places/transport/handler"
	placeusecase "rental_backend/internal/feature/places/usecase"
	reviewadapters "rental_backend/internal/feature/reviews/adapters"
	reviewhandler "rental_backend/internal/feature/reviews/transport/handler"
	reviewusecase "rental_backend/internal/feature/reviews/usecase"
	useradapters "rental_backend/internal/feature/users/adapters"
	userhandler "rental_backend/internal/feature/users/transport/handler"
	userusecase "rental_backend/internal/feature/users/usecase"
	platformdb "rental_backend/internal/platform/db"
	jwtmw "rental_backend/internal/platform/jwt"
	platformredis "rental_backend/internal/platform/redis"
	"rental_backend/internal/platform/session"
	"rental_backend/internal/shared/ratelimiter"
)

func main() {
	// db
	db := platformdb.OpenDB()

	// Redis（リフレッシュトークンセッションの保存先）
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("[ERROR] Redis is required for session storage: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// Repository
	userRepo := useradapters.NewUserPostgres(db)
	amenityRepo := amenityadapters.NewAmenityPostgres(db)
	placeRepo := placeadapters.NewPlacePostgres(db)
	reviewRepo := reviewadapters.NewReviewPostgres(db)
	sessionRepo := session.NewSessionRedis(rdb, "session")

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, authusecase.AccessTokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	userUC := userusecase.NewUserUsecase(userRepo)
	amenityUC := amenityusecase.NewAmenityUsecase(amenityRepo)
	placeUC := placeusecase.NewPlaceUsecase(placeRepo, userRepo, amenityRepo)
	reviewUC := reviewusecase.NewReviewUsecase(reviewRepo, userRepo, placeRepo)

	// Handler
	h := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Users:     userhandler.NewUserHandler(userUC),
		Amenities: amenityhandler.NewAmenityHandler(amenityUC),
		Places:    placehandler.NewPlaceHandler(placeUC),
		Reviews:   reviewhandler.NewReviewHandler(reviewUC),
	}

	// 写真解析（Vision/Gemini）。認証情報がない環境では無効化して起動を続行する
	ctx := context.Background()
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)
	detector, err := vision.NewVisionLabelDetector(ctx, limiter)
	if err != nil {
		log.Println("[WARN] Vision API unavailable. Photo insights disabled:", err)
	} else {
		drafter, err := gemini.NewGeminiDrafter(ctx, limiter)
		if err != nil {
			log.Println("[WARN] Gemini API unavailable. Photo insights disabled:", err)
		} else {
			photoUC := photousecase.NewPhotoInsightsUsecase(detector, drafter, placeRepo, amenityRepo)
			h.PhotoInsights = photohandler.NewPhotoInsightsHandler(photoUC)
		}
	}

	r := router.NewRouter(h)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
