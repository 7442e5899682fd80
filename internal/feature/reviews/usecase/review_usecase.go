// Package usecase はreviewsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	placeentity "rental_backend/internal/feature/places/domain/entity"
	"rental_backend/internal/feature/reviews/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

// ReviewRepository はレビューエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ReviewRepository interface {
	// Create は新しいレビューを永続化します。place_idを持つため、
	// 保存と同時に物件のレビューコレクションに加わります。
	Create(ctx context.Context, review *entity.Review) error

	// FindByID はIDでレビューを取得します。存在しない場合はapperr.NotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Review, error)

	// FindAll は全レビューを登録順で取得します。
	FindAll(ctx context.Context) ([]*entity.Review, error)

	// FindByPlaceID は指定物件のレビューを登録順で取得します。
	FindByPlaceID(ctx context.Context, placeID string) ([]*entity.Review, error)

	// Update は変更済みレビューを保存し、UpdatedAtを更新します。
	Update(ctx context.Context, review *entity.Review) error

	// Delete はレビューを削除します。存在しない場合はapperr.NotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// UserLookup はレビュー著者の参照整合性チェックに使用するユーザー検索です。
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*userentity.User, error)
}

// PlaceLookup はレビュー対象物件の参照整合性チェックに使用する物件検索です。
type PlaceLookup interface {
	FindByID(ctx context.Context, id string) (*placeentity.Place, error)
}

// CreateInput はレビュー作成の入力です。著者は常にプリンシパルに固定される
// ため入力には含まれません。
type CreateInput struct {
	Text    string
	Rating  int
	PlaceID string
}

// reviewUsecase はレビュー管理のビジネスロジックを実装します。
type reviewUsecase struct {
	reviews ReviewRepository
	users   UserLookup
	places  PlaceLookup
}

// NewReviewUsecase はreviewUsecaseの新しいインスタンスを生成します。
func NewReviewUsecase(reviews ReviewRepository, users UserLookup, places PlaceLookup) *reviewUsecase {
	return &reviewUsecase{reviews: reviews, users: users, places: places}
}

// Create は認証済みユーザーが物件にレビューを投稿します。
// 著者と物件の双方が解決できなければ失敗し、書き込みは行われません。
// 著者はプリンシパルに固定され、クライアント指定のuser_idは無視されます。
func (u *reviewUsecase) Create(ctx context.Context, principal *authz.Principal, in CreateInput) (*entity.Review, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if !authz.Allow(principal, authz.ActionCreate, authz.Resource{Kind: authz.ResourceReview}) {
		return nil, apperr.Denied("authentication required to create a review")
	}

	review, err := entity.NewReview(in.Text, in.Rating, principal.ID, in.PlaceID)
	if err != nil {
		return nil, err
	}

	// 参照整合性: 著者と物件の両方が存在しなければ書き込まない。
	if _, err := u.users.FindByID(ctx, principal.ID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Reference("user not found")
		}
		return nil, err
	}
	if _, err := u.places.FindByID(ctx, in.PlaceID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Reference("place not found")
		}
		return nil, err
	}

	if err := u.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Get はIDでレビューを取得します。読み取りは誰でも可能です。
func (u *reviewUsecase) Get(ctx context.Context, id string) (*entity.Review, error) {
	return u.reviews.FindByID(ctx, id)
}

// List は全レビューを取得します。読み取りは誰でも可能です。
func (u *reviewUsecase) List(ctx context.Context) ([]*entity.Review, error) {
	return u.reviews.FindAll(ctx)
}

// ListByPlace は物件のレビュー一覧を取得します。物件が存在しなければ
// not foundを返します。
func (u *reviewUsecase) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	if _, err := u.places.FindByID(ctx, placeID); err != nil {
		return nil, err
	}
	return u.reviews.FindByPlaceID(ctx, placeID)
}

// Update はレビューを部分更新します。著者または管理者のみ実行できます。
// 著者と対象物件は作成後に変更できません。
func (u *reviewUsecase) Update(ctx context.Context, principal *authz.Principal, id string, patch entity.Patch) (*entity.Review, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	// 対象を先に解決する。存在しないIDは権限に関わらずnot foundを返す。
	review, err := u.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Allow(principal, authz.ActionUpdate, authz.Resource{Kind: authz.ResourceReview, OwnerID: review.UserID}) {
		return nil, apperr.Denied("only the author or an admin may update this review")
	}

	if err := review.ApplyPatch(patch); err != nil {
		return nil, err
	}
	if err := u.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete はレビューを削除します。著者または管理者のみ実行できます。
func (u *reviewUsecase) Delete(ctx context.Context, principal *authz.Principal, id string) error {
	if principal == nil {
		return apperr.Unauthenticated("authentication required")
	}

	review, err := u.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.Allow(principal, authz.ActionDelete, authz.Resource{Kind: authz.ResourceReview, OwnerID: review.UserID}) {
		return apperr.Denied("only the author or an admin may delete this review")
	}

	return u.reviews.Delete(ctx, id)
}
