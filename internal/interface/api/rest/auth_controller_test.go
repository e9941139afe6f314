package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	domain "file-storage-api/internal/domain/user"
	"file-storage-api/internal/interface/api/rest/dto/auth"
)

type fakeAuthService struct {
	GenerateTokenFunc func(u *domain.User, password string) (string, error)
}

func (f *fakeAuthService) GenerateToken(u *domain.User, password string) (string, error) {
	return f.GenerateTokenFunc(u, password)
}

func newRouterWithAuthController(t *testing.T, us ports.UserService, as ports.Auth) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	ac := &AuthController{
		logger:      zap.NewNop(),
		userService: us,
		linkService: &FakeLinkService{},
		authService: as,
	}
	r.POST(RouteLogin, ac.LoginHandler)
	return r
}

func validLogin() auth.LoginRequest {
	return auth.LoginRequest{
		Username: "alice42",
		Password: "VeryStrongPassw0rd!",
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	type fields struct {
		findByUsername func(ctx context.Context, username string) (*domain.User, error)
		generateToken  func(u *domain.User, password string) (string, error)
	}
	type want struct {
		code        int
		jsonEq      map[string]any
		jsonHasKeys []string
	}

	tests := []struct {
		name   string
		body   any
		fields fields
		want   want
	}{
		{
			name: "invalid JSON",
			body: "{bad json",
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) { return nil, nil },
				generateToken:  func(u *domain.User, password string) (string, error) { return "", nil },
			},
			want: want{
				code:        http.StatusBadRequest,
				jsonEq:      map[string]any{"error": "invalid json"},
				jsonHasKeys: []string{"error"},
			},
		},
		{
			name: "validation error",
			body: auth.LoginRequest{Username: "alice42", Password: ""},
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) { return nil, nil },
				generateToken:  func(u *domain.User, password string) (string, error) { return "", nil },
			},
			want: want{
				code:        http.StatusBadRequest,
				jsonHasKeys: []string{"error", "details"},
			},
		},
		{
			name: "FindUserByUsername error -> 500",
			body: validLogin(),
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) {
					return nil, errors.New("db error")
				},
				generateToken: func(u *domain.User, password string) (string, error) { return "", nil },
			},
			want: want{
				code:        http.StatusInternalServerError,
				jsonEq:      map[string]any{"error": "failed to get a user"},
				jsonHasKeys: []string{"error"},
			},
		},
		{
			// unknown usernames answer exactly like wrong passwords
			name: "user not found -> 401",
			body: validLogin(),
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) { return nil, nil },
				generateToken:  func(u *domain.User, password string) (string, error) { return "", nil },
			},
			want: want{
				code:        http.StatusUnauthorized,
				jsonEq:      map[string]any{"error": "invalid credentials"},
				jsonHasKeys: []string{"error"},
			},
		},
		{
			name: "GenerateToken ErrInvalidCredentials -> 401",
			body: validLogin(),
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{}, nil
				},
				generateToken: func(u *domain.User, password string) (string, error) {
					return "", services.ErrInvalidCredentials
				},
			},
			want: want{
				code:        http.StatusUnauthorized,
				jsonEq:      map[string]any{"error": "invalid credentials"},
				jsonHasKeys: []string{"error"},
			},
		},
		{
			name: "GenerateToken ErrFailedToGenerateToken -> 500",
			body: validLogin(),
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{}, nil
				},
				generateToken: func(u *domain.User, password string) (string, error) {
					return "", services.ErrFailedToGenerateToken
				},
			},
			want: want{
				code:        http.StatusInternalServerError,
				jsonHasKeys: []string{"error"},
			},
		},
		{
			name: "success",
			body: validLogin(),
			fields: fields{
				findByUsername: func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{Username: username}, nil
				},
				generateToken: func(u *domain.User, password string) (string, error) {
					return "tok_123", nil
				},
			},
			want: want{
				code:        http.StatusOK,
				jsonEq:      map[string]any{"access_token": "tok_123", "token_type": "Bearer"},
				jsonHasKeys: []string{"access_token", "token_type", "user"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{FindUserByUsernameFunc: tt.fields.findByUsername}
			as := &fakeAuthService{GenerateTokenFunc: tt.fields.generateToken}

			r := newRouterWithAuthController(t, us, as)
			rr := doReq(t, r, http.MethodPost, RouteLogin, tt.body, nil)

			require.Equal(t, tt.want.code, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			for k, v := range tt.want.jsonEq {
				assert.Equal(t, v, resp[k], "field %q mismatch", k)
			}
			for _, k := range tt.want.jsonHasKeys {
				assert.Contains(t, resp, k, "expected key %q", k)
			}
		})
	}
}
