package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/logger"
	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/utils"
)

const resetCodeTTL = 15 * time.Minute

// ResetMailer delivers password-reset codes.
type ResetMailer interface {
	SendResetEmail(ctx context.Context, to, code string) error
}

// AuthService handles user credentials: registration, login, password
// reset and profile data. It is plumbing around the core, kept separate
// from the intake logic.
type AuthService struct {
	db     *gorm.DB
	secret string
	mailer ResetMailer
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, mailer ResetMailer) *AuthService {
	return &AuthService{db: db, secret: secret, mailer: mailer, now: time.Now}
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
}

func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr("check email", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
		Goals:    models.DefaultGoals(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, storeErr("insert user", err)
	}
	return &user, nil
}

// Login checks credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrForbidden
	}
	token, err := utils.GenerateJWT(user.ID, user.Email, s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateCredentials checks an email/password pair without issuing a token.
func (s *AuthService) ValidateCredentials(email, password string) error {
	user, err := s.findByEmail(email)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return ErrForbidden
	}
	return nil
}

// ForgotPassword stores a short-lived 6-digit code and mails it. Whether
// the email exists is not revealed to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := utils.GenerateResetCode()
	user.ResetCode = code
	user.ResetCodeExp = s.now().Add(resetCodeTTL)
	if err := s.db.Save(user).Error; err != nil {
		return storeErr("save reset code", err)
	}

	if s.mailer == nil {
		logger.L().Warn("mailer not configured, reset code not delivered", zap.String("email", email))
		return nil
	}
	return s.mailer.SendResetEmail(ctx, user.Email, code)
}

// ResetPassword consumes a valid, unexpired code and sets a new password.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	user, err := s.findByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return validationErr("Invalid or expired reset code")
	}
	if err != nil {
		return err
	}

	if user.ResetCode == "" || user.ResetCode != code || s.now().After(user.ResetCodeExp) {
		return validationErr("Invalid or expired reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetCode = ""
	user.ResetCodeExp = time.Time{}
	if err := s.db.Save(user).Error; err != nil {
		return storeErr("save new password", err)
	}
	return nil
}

func (s *AuthService) Profile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("load user", err)
	}
	return &user, nil
}

type UpdateProfileRequest struct {
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Age    int           `json:"age"`
	Weight float64       `json:"weight"`
	Height float64       `json:"height"`
	Goals  *models.Goals `json:"goals"`
}

func (s *AuthService) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Age != 0 {
		user.Age = req.Age
	}
	if req.Weight != 0 {
		user.Weight = req.Weight
	}
	if req.Height != 0 {
		user.Height = req.Height
	}
	if req.Goals != nil {
		user.Goals = *req.Goals
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, storeErr("save user", err)
	}
	return user, nil
}

func (s *AuthService) findByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("load user", err)
	}
	return &user, nil
}
