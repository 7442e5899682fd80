package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	placeentity "rental_backend/internal/feature/places/domain/entity"
	reviewentity "rental_backend/internal/feature/reviews/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, pass, host, port, name)

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("invalid database config: %v", err)
	}

	var (
		gdb   *gorm.DB
		sqlDB *sql.DB
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		sqlDB = stdlib.OpenDB(*cfg)
		gdb, err = gorm.Open(gpostgres.New(gpostgres.Config{Conn: sqlDB}), &gorm.Config{
			TranslateError: true,
		})
		if err == nil {
			err = sqlDB.Ping()
		}
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Amenity, Place, Review）
		if err := gdb.AutoMigrate(
			&userentity.User{},
			&amenityentity.Amenity{},
			&placeentity.Place{},
			&reviewentity.Review{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return gdb
}
