package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RangeBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
)

// Заголовки, которые выставляет auth-прокси перед сервисом
const (
	HeaderUserID        = "X-User-ID"
	HeaderUserName      = "X-User-Name"
	HeaderUserEmail     = "X-User-Email"
	HeaderUserBaseClass = "X-User-Base-Class"
	HeaderUserClasses   = "X-User-Classes"
	HeaderUserAdmin     = "X-User-Admin"
)

const (
	msgUnauthorized   = "требуется аутентификация"
	msgInvalidClasses = "некорректные классы пользователя"
)

type actorKey struct{}

// WithActor кладет участника в контекст
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext возвращает участника запроса, nil для анонимного
func ActorFromContext(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorKey{}).(*domain.Actor)
	return actor
}

// ActorFromHeaders собирает участника из заголовков. Без X-User-ID участник анонимный.
func ActorFromHeaders(r *http.Request) (*domain.Actor, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return nil, nil
	}

	actor := &domain.Actor{
		ID:        id,
		Name:      strings.TrimSpace(r.Header.Get(HeaderUserName)),
		Email:     strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		BaseClass: domain.Class(strings.TrimSpace(r.Header.Get(HeaderUserBaseClass))),
		Classes:   domain.ParseClasses(r.Header.Get(HeaderUserClasses)),
	}
	actor.IsAdmin, _ = strconv.ParseBool(r.Header.Get(HeaderUserAdmin))

	// Участник без базового класса допустим, но специальные классы должны быть из таксономии
	if actor.BaseClass != "" {
		if err := domain.ValidateEligibilitySet(actor.BaseClass, actor.Classes); err != nil {
			return nil, err
		}
	} else if err := domain.ValidateClasses(actor.Classes); err != nil {
		return nil, err
	}

	return actor, nil
}

// Actor определяет участника, если он есть. Используется на публичных маршрутах.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromHeaders(r)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidClasses)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Auth требует аутентифицированного участника
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromHeaders(r)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidClasses)
			return
		}
		if !actor.IsAuthenticated() {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
