package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tuishare_backend/internal/app/router"
	"tuishare_backend/internal/feature/account/domain/entity"
	accounthandler "tuishare_backend/internal/feature/account/transport/handler"
	"tuishare_backend/internal/feature/account/transport/http/dto"
	"tuishare_backend/internal/platform/config"
	httphandler "tuishare_backend/internal/platform/http/handler"
	jwtmw "tuishare_backend/internal/platform/jwt"
	"tuishare_backend/internal/platform/password"
	"tuishare_backend/internal/shared/ratelimiter"
)

// NewHandlers builds the account stores for every kind and the handlers serving them.
func NewHandlers(ctx context.Context, cfg config.Config, b *Backend, rdb *redis.Client) (router.Handlers, error) {
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)

	students, err := NewAccountStore[*entity.Student](ctx, b, rdb, cfg, hasher)
	if err != nil {
		return router.Handlers{}, err
	}
	schools, err := NewAccountStore[*entity.School](ctx, b, rdb, cfg, hasher)
	if err != nil {
		return router.Handlers{}, err
	}
	supporters, err := NewAccountStore[*entity.Supporter](ctx, b, rdb, cfg, hasher)
	if err != nil {
		return router.Handlers{}, err
	}

	return router.Handlers{
		Students:   accounthandler.NewAccountHandler[*entity.Student, dto.StudentSignupReq](students, tokens, dto.NewStudentView),
		Schools:    accounthandler.NewAccountHandler[*entity.School, dto.SchoolSignupReq](schools, tokens, dto.NewSchoolView),
		Supporters: accounthandler.NewAccountHandler[*entity.Supporter, dto.SupporterSignupReq](supporters, tokens, dto.NewSupporterView),
		Health:     httphandler.NewHealthHandler(b.Name, NewHealthChecks(b, rdb)),
		LoginLimit: ratelimiter.NewRateLimiter(cfg.LoginRateLimit, time.Minute).Middleware(),
	}, nil
}
