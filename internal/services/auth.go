package services

import (
  "context"
  "errors"
  "fmt"
  "strconv"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/normalization"
  pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/requestdata"
  "github.com/yungbote/ecohabit-backend/internal/types"
  "github.com/yungbote/ecohabit-backend/internal/utils"
)

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User, password string) error
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
  refreshTTL   time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
    refreshTTL:   refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User, password string) error {
  utils.NormalizeUserFields(user)
  if vErr := utils.ValidateRegistration(user, password); vErr != nil {
    return vErr
  }
  emailExists, eErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if eErr != nil {
    return fmt.Errorf("Failed to check user email: %w", eErr)
  }
  if emailExists {
    return pkgerrors.ErrEmailInUse
  }
  if hErr := utils.HashPassword(ctx, user, password); hErr != nil {
    return hErr
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
      return fmt.Errorf("Failed to create user: %w", cErr)
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  email = normalization.ParseInputString(email)
  if vErr := utils.ValidateLogin(email, password); vErr != nil {
    return "", "", vErr
  }

  user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
  if uErr != nil {
    if errors.Is(uErr, gorm.ErrRecordNotFound) {
      return "", "", pkgerrors.ErrInvalidCredentials
    }
    return "", "", fmt.Errorf("Error retrieving user by email: %w", uErr)
  }

  if cErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); cErr != nil {
    return "", "", pkgerrors.ErrInvalidCredentials
  }

  accessToken, atErr := as.generateToken(user.ID, "access", as.accessTTL)
  if atErr != nil {
    return "", "", fmt.Errorf("Failed to generate access token: %w", atErr)
  }
  refreshToken, rtErr := as.generateToken(user.ID, "refresh", as.refreshTTL)
  if rtErr != nil {
    return "", "", fmt.Errorf("Failed to generate refresh token: %w", rtErr)
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
  userID, typ, pErr := as.parseToken(refreshToken)
  if pErr != nil {
    return "", "", pErr
  }
  if typ != "refresh" {
    return "", "", fmt.Errorf("Token is not a refresh token")
  }
  if _, uErr := as.userRepo.GetByID(ctx, nil, userID); uErr != nil {
    if errors.Is(uErr, gorm.ErrRecordNotFound) {
      return "", "", pkgerrors.ErrUserNotFound
    }
    return "", "", fmt.Errorf("Error retrieving user: %w", uErr)
  }
  accessToken, atErr := as.generateToken(userID, "access", as.accessTTL)
  if atErr != nil {
    return "", "", fmt.Errorf("Failed to generate access token: %w", atErr)
  }
  newRefreshToken, rtErr := as.generateToken(userID, "refresh", as.refreshTTL)
  if rtErr != nil {
    return "", "", fmt.Errorf("Failed to generate refresh token: %w", rtErr)
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  userID, typ, pErr := as.parseToken(tokenString)
  if pErr != nil {
    return ctx, pErr
  }
  if typ != "access" {
    return ctx, fmt.Errorf("Token is not an access token")
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) generateToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub": strconv.FormatUint(uint64(userID), 10),
    "typ": tokenType,
    "jti": uuid.NewString(),
    "iat": now.Unix(),
    "exp": now.Add(ttl).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseToken(tokenString string) (uint, string, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("Unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return 0, "", fmt.Errorf("Invalid token: %w", err)
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok || !token.Valid {
    return 0, "", fmt.Errorf("Invalid token claims")
  }
  sub, _ := claims["sub"].(string)
  userID, sErr := strconv.ParseUint(sub, 10, 64)
  if sErr != nil {
    return 0, "", fmt.Errorf("Invalid token subject")
  }
  typ, _ := claims["typ"].(string)
  return uint(userID), typ, nil
}
