package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mailer"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	tokenPurposeSession = "session"
	tokenPurposeVerify  = "email-verify"

	googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// tokenClaims are the JWT claims this service issues. Purpose scopes a
// token to either API sessions or email verification, never both.
type tokenClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// authService is the concrete implementation of AuthService
type authService struct {
	users repository.UserRepository
	cfg   *config.AuthConfig
	mail  mailer.Mailer
	log   zerolog.Logger
}

func newAuthService(users repository.UserRepository, cfg *config.AuthConfig, mail mailer.Mailer, log zerolog.Logger) AuthService {
	return &authService{
		users: users,
		cfg:   cfg,
		mail:  mail,
		log:   log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new unverified account and sends a verification
// mail. There is no auto sign-in; the user logs in after verifying.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validation.ValidateRegistration(req.Name, req.Email, req.Password); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user, tokenPurposeVerify, s.cfg.VerifyTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.cfg.AppURL, url.QueryEscape(token))
	if err := s.mail.SendVerificationEmail(ctx, user.Email, verifyURL); err != nil {
		return nil, apperr.Internal("failed to send verification mail", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

// VerifyEmail consumes a verification token, marks the account as
// verified and signs the user in.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*LoginResponse, error) {
	claims, err := s.parseClaims(token, tokenPurposeVerify)
	if err != nil {
		return nil, err
	}

	if err := s.users.MarkEmailVerified(ctx, claims.Subject); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	s.log.Info().Str("user_id", user.ID).Msg("Email verified")
	return s.signIn(user)
}

// Login checks the credentials and issues a session token. Unknown
// email, wrong password and social-only accounts all produce the same
// error so nothing about the account leaks.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !user.EmailVerified {
		return nil, apperr.Unauthorized("email is not verified")
	}
	if user.Status != models.UserStatusActive {
		return nil, apperr.Unauthorized("account is not active")
	}

	return s.signIn(user)
}

// GoogleAuthURL returns the consent-screen URL for the social login flow
func (s *authService) GoogleAuthURL(state string) (string, error) {
	cfg := s.googleConfig()
	if cfg.ClientID == "" {
		return "", apperr.Validation("google login is not configured")
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account consent"),
	), nil
}

// GoogleCallback exchanges the authorization code, resolves the Google
// account and signs in an existing or freshly created user. Social
// accounts arrive verified and carry no password.
func (s *authService) GoogleCallback(ctx context.Context, code string) (*LoginResponse, error) {
	cfg := s.googleConfig()
	if cfg.ClientID == "" {
		return nil, apperr.Validation("google login is not configured")
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Unauthorized("google code exchange failed")
	}

	resp, err := cfg.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, apperr.Internal("failed to fetch google profile", err)
	}
	defer resp.Body.Close()

	var profile struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, apperr.Internal("failed to decode google profile", err)
	}
	if profile.Email == "" || !profile.VerifiedEmail {
		return nil, apperr.Unauthorized("google account has no verified email")
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		user = &models.User{
			Email:         profile.Email,
			Name:          profile.Name,
			Role:          models.RoleUser,
			Status:        models.UserStatusActive,
			EmailVerified: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.Info().Str("user_id", user.ID).Msg("User created via google login")
	}
	if user.Status != models.UserStatusActive {
		return nil, apperr.Unauthorized("account is not active")
	}

	return s.signIn(user)
}

// ParseToken validates a session token and returns the caller identity
func (s *authService) ParseToken(token string) (*Identity, error) {
	claims, err := s.parseClaims(token, tokenPurposeSession)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   models.Role(claims.Role),
	}, nil
}

func (s *authService) signIn(user *models.User) (*LoginResponse, error) {
	token, err := s.issueToken(user, tokenPurposeSession, s.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.TokenTTL).Unix(),
		User:      user,
	}, nil
}

func (s *authService) issueToken(user *models.User, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email:   user.Email,
		Role:    string(user.Role),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    "blog-platform-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) parseClaims(token, purpose string) (*tokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	if claims.Purpose != purpose {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return &claims, nil
}

func (s *authService) googleConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}
