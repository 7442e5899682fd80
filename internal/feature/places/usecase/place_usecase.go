// Package usecase はplacesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/places/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

// PlaceRepository は物件エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PlaceRepository interface {
	// Create は新しい物件をアメニティ関連とともに永続化します。
	Create(ctx context.Context, place *entity.Place) error

	// FindByID はオーナー・アメニティ・レビューを含む物件を取得します。
	// 存在しない場合はapperr.NotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Place, error)

	// FindAll は全物件を関連とともに登録順で取得します。
	FindAll(ctx context.Context) ([]*entity.Place, error)

	// Update は変更済み物件を保存し、UpdatedAtを更新します。
	Update(ctx context.Context, place *entity.Place) error

	// ReplaceAmenities は物件のアメニティ集合を全置換します（マージではない）。
	ReplaceAmenities(ctx context.Context, place *entity.Place, amenities []amenityentity.Amenity) error

	// Delete は物件と所有するレビューを削除します。共有アメニティは残ります。
	// 存在しない場合はapperr.NotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// OwnerLookup は物件オーナーの参照整合性チェックに使用するユーザー検索です。
type OwnerLookup interface {
	FindByID(ctx context.Context, id string) (*userentity.User, error)
}

// AmenityLookup はアメニティ参照の解決に使用するカタログ検索です。
type AmenityLookup interface {
	FindByID(ctx context.Context, id string) (*amenityentity.Amenity, error)
}

// CreateInput は物件作成の入力です。オーナーは常にプリンシパルに固定されるため
// 入力には含まれません。
type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	AmenityIDs  []string
}

// UpdateInput は物件部分更新の入力です。nilのフィールドは変更されません。
// AmenityIDsが指定された場合、アメニティ集合は全置換されます。
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     *string
	AmenityIDs  *[]string
}

// placeUsecase は物件管理のビジネスロジックを実装します。
type placeUsecase struct {
	places    PlaceRepository
	owners    OwnerLookup
	amenities AmenityLookup
}

// NewPlaceUsecase はplaceUsecaseの新しいインスタンスを生成します。
func NewPlaceUsecase(places PlaceRepository, owners OwnerLookup, amenities AmenityLookup) *placeUsecase {
	return &placeUsecase{places: places, owners: owners, amenities: amenities}
}

// Create は認証済みユーザーが新しい物件を登録します。
// 座標・価格のバリデーションはオーナー解決より先に行われるため、両方が不正な
// ペイロードでもジオメトリエラーが先に報告されます。オーナーはプリンシパルに
// 固定され、クライアント指定のowner_idは無視されます。
func (u *placeUsecase) Create(ctx context.Context, principal *authz.Principal, in CreateInput) (*entity.Place, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if !authz.Allow(principal, authz.ActionCreate, authz.Resource{Kind: authz.ResourcePlace}) {
		return nil, apperr.Denied("authentication required to create a place")
	}

	// フィールド検証が先。オーナー解決はこの後。
	place, err := entity.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, principal.ID)
	if err != nil {
		return nil, err
	}

	owner, err := u.owners.FindByID(ctx, principal.ID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Reference("owner not found")
		}
		return nil, err
	}
	place.Owner = *owner

	place.Amenities = u.resolveAmenities(ctx, in.AmenityIDs)

	if err := u.places.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Get はIDで物件を取得します。読み取りは誰でも可能です。
func (u *placeUsecase) Get(ctx context.Context, id string) (*entity.Place, error) {
	return u.places.FindByID(ctx, id)
}

// List は全物件を取得します。読み取りは誰でも可能です。
func (u *placeUsecase) List(ctx context.Context) ([]*entity.Place, error) {
	return u.places.FindAll(ctx)
}

// Update は物件を部分更新します。オーナーまたは管理者のみ実行できます。
// 指定されたフィールドのみ再検証され、owner_idの変更は新オーナーの解決を
// 必要とし、amenitiesは作成時と同じ黙殺スキップで全置換されます。
func (u *placeUsecase) Update(ctx context.Context, principal *authz.Principal, id string, in UpdateInput) (*entity.Place, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	// 対象を先に解決する。存在しないIDは権限に関わらずnot foundを返す。
	place, err := u.places.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Allow(principal, authz.ActionUpdate, authz.Resource{Kind: authz.ResourcePlace, OwnerID: place.OwnerID}) {
		return nil, apperr.Denied("only the owner or an admin may update this place")
	}

	if err := place.ApplyPatch(entity.Patch{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}); err != nil {
		return nil, err
	}

	// オーナー移転は新オーナーの実在が条件。
	if in.OwnerID != nil {
		owner, err := u.owners.FindByID(ctx, *in.OwnerID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return nil, apperr.Reference("owner not found")
			}
			return nil, err
		}
		place.OwnerID = owner.ID
		place.Owner = *owner
	}

	if in.AmenityIDs != nil {
		resolved := u.resolveAmenities(ctx, *in.AmenityIDs)
		if err := u.places.ReplaceAmenities(ctx, place, resolved); err != nil {
			return nil, err
		}
		place.Amenities = resolved
	}

	if err := u.places.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Delete は物件を削除します。オーナーまたは管理者のみ実行できます。
// 所有するレビューは連鎖削除され、共有アメニティは削除されません。
func (u *placeUsecase) Delete(ctx context.Context, principal *authz.Principal, id string) error {
	if principal == nil {
		return apperr.Unauthenticated("authentication required")
	}

	place, err := u.places.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.Allow(principal, authz.ActionDelete, authz.Resource{Kind: authz.ResourcePlace, OwnerID: place.OwnerID}) {
		return apperr.Denied("only the owner or an admin may delete this place")
	}

	return u.places.Delete(ctx, id)
}

// resolveAmenities はアメニティIDを解決します。解決できないIDはエラーに
// せず黙ってスキップします。呼び出し側には通知されません（ログには残します）。
func (u *placeUsecase) resolveAmenities(ctx context.Context, ids []string) []amenityentity.Amenity {
	resolved := make([]amenityentity.Amenity, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		amenity, err := u.amenities.FindByID(ctx, id)
		if err != nil {
			slog.Warn("skipping unresolved amenity id", "amenity_id", id, "error", err)
			continue
		}
		resolved = append(resolved, *amenity)
	}
	return resolved
}
