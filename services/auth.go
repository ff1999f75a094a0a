package services

import (
	"fmt"
	"strings"
	"time"

	"foodnow-api/models"
	"foodnow-api/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	db          *gorm.DB
	users       *repository.UserRepository
	tokens      *repository.TokenRepository
	issuer      TokenIssuer
	notifier    Notifier
	log         logrus.FieldLogger
	frontendURL string
	now         func() time.Time
}

func NewAuthService(db *gorm.DB, issuer TokenIssuer, notifier Notifier, log logrus.FieldLogger, frontendURL string) *AuthService {
	return &AuthService{
		db:          db,
		users:       repository.NewUserRepository(db),
		tokens:      repository.NewTokenRepository(db),
		issuer:      issuer,
		notifier:    notifier,
		log:         log,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate checks credentials and returns a signed token
func (s *AuthService) Authenticate(email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(normalizeEmail(email))
	if repository.IsNotFound(err) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Register creates a CUSTOMER account
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	return s.register(in, models.RoleCustomer, nil)
}

// RegisterDeliveryPersonnel creates a courier account that starts ONLINE
func (s *AuthService) RegisterDeliveryPersonnel(in RegisterInput) (*models.User, error) {
	online := models.DeliveryOnline
	return s.register(in, models.RoleDeliveryPersonnel, &online)
}

func (s *AuthService) register(in RegisterInput, role models.UserRole, status *models.DeliveryStatus) (*models.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %s is already registered: %w", email, ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		PasswordHash:   string(hash),
		Role:           role,
		DeliveryStatus: status,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user registered")
	return user, nil
}

// GeneratePasswordResetToken replaces any previous token of the user and
// emails a link valid for one hour. The link is also returned.
func (s *AuthService) GeneratePasswordResetToken(email string) (string, error) {
	user, err := s.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		return "", notFound(err, "user")
	}

	token := uuid.NewString()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.tokens.WithTx(tx).Replace(user.ID, token, s.now().Add(resetTokenTTL))
		return err
	})
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	s.notifier.PasswordReset(user.Email, user.Name, link)
	return link, nil
}

// ResetPassword consumes a reset token. Expired tokens are removed.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	var expired bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tokens := s.tokens.WithTx(tx)
		t, err := tokens.FindByToken(token)
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}

		if t.Expired(s.now()) {
			expired = true
			return tokens.Delete(t.ID)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.WithTx(tx).UpdatePassword(t.UserID, string(hash)); err != nil {
			return err
		}
		return tokens.Delete(t.ID)
	})
	if err != nil {
		return err
	}
	if expired {
		return ErrTokenExpired
	}
	return nil
}

func (s *AuthService) Profile(userID uint) (*models.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(userID uint, name, phone string) (*models.User, error) {
	if _, err := s.Profile(userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(userID, strings.TrimSpace(name), strings.TrimSpace(phone)); err != nil {
		return nil, err
	}
	return s.Profile(userID)
}

// ── Admin views ──

func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.users.List()
}

func (s *AuthService) ListDeliveryPersonnel() ([]models.User, error) {
	return s.users.ListByRole(models.RoleDeliveryPersonnel)
}
