package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

// StaticVerifier maps fixed tokens to principals for local runs where
// no auth gateway is reachable. Never configured in production.
type StaticVerifier struct {
	principals map[string]user.Principal
}

func NewStaticVerifier(tokens map[string]user.Principal) *StaticVerifier {
	principals := make(map[string]user.Principal, len(tokens))
	for token, principal := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		principals[token] = principal
	}

	return &StaticVerifier{principals: principals}
}

func (v *StaticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[strings.TrimSpace(token)]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}
