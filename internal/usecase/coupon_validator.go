package usecase

import (
	"context"
	"errors"
	"time"

	repo "app/internal/repository"
)

// ResolveCoupon はチェックアウト時のクーポン解決。
//
// 存在しない・期限切れのコードはエラーにせず「割引0・コード記録なし」として
// 注文を通す（fail-open）。返ってきたcodeがnilでないときだけ注文に記録する。
func ResolveCoupon(ctx context.Context, coupons repo.CouponRepository, code *string, now time.Time) (float64, *string, error) {
	if code == nil || *code == "" {
		return 0, nil, nil
	}

	c, err := coupons.FindByCode(ctx, *code)
	if errors.Is(err, repo.ErrNotFound) {
		//未知のコードは無視する
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}

	if !c.IsValidAt(now) {
		//期限切れも無視する
		return 0, nil, nil
	}

	applied := c.Code
	return c.DiscountPercentage, &applied, nil
}
