package dto

import (
	"time"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/places/domain/entity"
	reviewentity "rental_backend/internal/feature/reviews/domain/entity"
)

// PlaceRes は物件一覧用のレスポンスDTOです。関連エンティティは含まれません。
type PlaceRes struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerRes は物件詳細に埋め込まれるオーナーの要約です。
type OwnerRes struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PlaceAmenityRes は物件詳細に埋め込まれるアメニティの要約です。
type PlaceAmenityRes struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaceReviewRes は物件詳細に埋め込まれるレビューの要約です。
type PlaceReviewRes struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

// PlaceDetailRes は物件詳細のレスポンスDTOです。オーナー、アメニティ、
// レビューを埋め込みます。
type PlaceDetailRes struct {
	PlaceRes
	Owner     OwnerRes          `json:"owner"`
	Amenities []PlaceAmenityRes `json:"amenities"`
	Reviews   []PlaceReviewRes  `json:"reviews"`
}

// NewPlaceRes はエンティティから一覧用DTOを生成します。
func NewPlaceRes(p *entity.Place) PlaceRes {
	return PlaceRes{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPlaceDetailRes はエンティティから詳細DTOを生成します。
func NewPlaceDetailRes(p *entity.Place) PlaceDetailRes {
	return PlaceDetailRes{
		PlaceRes: NewPlaceRes(p),
		Owner: OwnerRes{
			ID:        p.Owner.ID,
			FirstName: p.Owner.FirstName,
			LastName:  p.Owner.LastName,
			Email:     p.Owner.Email,
		},
		Amenities: newPlaceAmenities(p.Amenities),
		Reviews:   newPlaceReviews(p.Reviews),
	}
}

func newPlaceAmenities(amenities []amenityentity.Amenity) []PlaceAmenityRes {
	out := make([]PlaceAmenityRes, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, PlaceAmenityRes{ID: a.ID, Name: a.Name})
	}
	return out
}

func newPlaceReviews(reviews []reviewentity.Review) []PlaceReviewRes {
	out := make([]PlaceReviewRes, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, PlaceReviewRes{ID: r.ID, Text: r.Text, Rating: r.Rating, UserID: r.UserID})
	}
	return out
}
