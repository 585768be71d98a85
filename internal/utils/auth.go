package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/yungbote/ecohabit-backend/internal/normalization"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

func ValidateRegistration(user *types.User, password string) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with registration")
  }
  if user.Email == "" {
    return fmt.Errorf("An email is required to register")
  }
  if user.Name == "" {
    return fmt.Errorf("A name is required to register")
  }
  if password == "" {
    return fmt.Errorf("A password is required to register")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return fmt.Errorf("Email is required to login")
  }
  if password == "" {
    return fmt.Errorf("Password is required to login")
  }
  return nil
}

func HashPassword(ctx context.Context, user *types.User, password string) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.PasswordHash = string(hashedPassword)
  return nil
}

func NormalizeUserFields(user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Name = normalization.TrimInputString(user.Name)
}
