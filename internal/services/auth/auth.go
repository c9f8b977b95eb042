package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UsersStorage interface {
	InsertUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id string, passwordHash []byte) error
}

type AuthService struct {
	log      *slog.Logger
	storage  UsersStorage
	secret   []byte
	tokenTTL time.Duration

	googleTokenInfoURL string
	httpClient         *http.Client
}

func New(log *slog.Logger, storage UsersStorage, secret string, tokenTTL time.Duration, googleTokenInfoURL string) *AuthService {
	return &AuthService{
		log:                log,
		storage:            storage,
		secret:             []byte(secret),
		tokenTTL:           tokenTTL,
		googleTokenInfoURL: googleTokenInfoURL,
		httpClient:         &http.Client{Timeout: 10 * time.Second},
	}
}

type SignupParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate string
}

// Signup creates a password account with its profile document. A duplicate
// email maps to ErrEmailTaken, which is safe to show inline.
func (a *AuthService) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", params.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, err
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		BirthDate:    params.BirthDate,
		Provider:     "password",
	}
	if err := a.storage.InsertUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already registered")
			return nil, ErrEmailTaken
		}
		log.Error("Error inserting user", "errMsg", err.Error())
		return nil, err
	}
	return user, nil
}

// dummyHash keeps the login path doing a bcrypt comparison even when the
// email is unknown, so response timing does not leak account existence.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// Login verifies the credentials and issues a signed token. Any mismatch
// maps to ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)

	user, err := a.storage.GetUserByEmail(ctx, email)
	hashToCheck := dummyHash
	if err == nil && len(user.PasswordHash) > 0 {
		hashToCheck = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword(hashToCheck, []byte(password))
	if err != nil || compareErr != nil {
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Error("Error getting user", "errMsg", err.Error())
			return "", nil, err
		}
		log.Info("invalid credentials")
		return "", nil, ErrInvalidCredentials
	}
	token, err := a.issueToken(user)
	if err != nil {
		log.Error("Error signing token", "errMsg", err.Error())
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword requires re-authentication with the current password
// before the new hash is stored.
func (a *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	const op = "auth.AuthService.ChangePassword"
	log := a.log.With("op", op, "user_id", userID)

	user, err := a.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("Error getting user", "errMsg", err.Error())
		return err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(currentPassword)) != nil {
		log.Info("reauthentication failed")
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := a.storage.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		log.Error("Error updating password", "errMsg", err.Error())
		return err
	}
	return nil
}

type googleTokenInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleSignIn exchanges a Google ID token for a session token, creating
// the profile document on first sign-in. Provider failures map to
// ErrSocialSignIn: the UI shows one inline message, details go to the log.
func (a *AuthService) GoogleSignIn(ctx context.Context, idToken string) (string, *models.User, error) {
	const op = "auth.AuthService.GoogleSignIn"
	log := a.log.With("op", op)

	info, err := a.exchangeGoogleToken(ctx, idToken)
	if err != nil {
		log.Error("Error exchanging provider token", "errMsg", err.Error())
		return "", nil, ErrSocialSignIn
	}

	user, err := a.storage.GetUserByEmail(ctx, info.Email)
	if errors.Is(err, storage.ErrNotFound) {
		user = &models.User{
			ID:        uuid.NewString(),
			Email:     info.Email,
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
			Provider:  "google",
		}
		if insertErr := a.storage.InsertUser(ctx, user); insertErr != nil && !errors.Is(insertErr, storage.ErrConflict) {
			log.Error("Error inserting user", "errMsg", insertErr.Error())
			return "", nil, insertErr
		}
	} else if err != nil {
		log.Error("Error getting user", "errMsg", err.Error())
		return "", nil, err
	}

	token, err := a.issueToken(user)
	if err != nil {
		log.Error("Error signing token", "errMsg", err.Error())
		return "", nil, err
	}
	return token, user, nil
}

func (a *AuthService) exchangeGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	reqURL := a.googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned HTTP %d", resp.StatusCode)
	}
	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("tokeninfo response has no email")
	}
	return &info, nil
}

// GetUser loads the user behind an id, for the authenticate middleware.
func (a *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := a.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ParseToken validates the signature and expiry and returns the user id
// claim.
func (a *AuthService) ParseToken(tokenString string) (userID string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}
