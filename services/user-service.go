package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectdesk/logging"
	"projectdesk/models"
	"projectdesk/repositories"

	"golang.org/x/crypto/bcrypt"
)

const verificationWindow = 7 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrEmailNotVerified   = errors.New("email is not verified")
)

// Registration outcome messages. Mail delivery trouble never fails the
// registration itself, the account is just left unverified.
const (
	MsgRegistered           = "Registered Successfully, Verification mail has been sent successfully"
	MsgRegisteredNoMailConf = "Registered Successfully (Email verification not configured)"
	MsgRegisteredMailFailed = "Registered Successfully (Email verification failed)"
)

// EmailSender delivers a verification mail. Nil means mail is not configured.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

type UserService struct {
	Repo       repositories.UserRepository
	JWTService *JWTService
	Mailer     EmailSender
	ClientURL  string
}

func NewUserService(repo repositories.UserRepository, jwtService *JWTService, mailer EmailSender, clientURL string) *UserService {
	return &UserService{
		Repo:       repo,
		JWTService: jwtService,
		Mailer:     mailer,
		ClientURL:  clientURL,
	}
}

// Register creates an unverified account and tries to send the verification
// link. Returns the new user's ID and the message describing what happened
// with the mail.
func (s *UserService) Register(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	if err := models.ValidateEmail(email); err != nil {
		return "", "", err
	}
	if len(password) < 6 {
		return "", "", models.NewValidationError("password must be at least 6 characters long")
	}

	if _, err := s.Repo.FindByEmail(ctx, email); err == nil {
		return "", "", models.NewValidationError("User already exist")
	} else if !models.IsNotFound(err) {
		return "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:              email,
		Password:           string(hash),
		Verified:           false,
		VerificationExpiry: time.Now().Add(verificationWindow),
		Projects:           []models.Project{},
	}
	id, err := s.Repo.Insert(ctx, user)
	if err != nil {
		return "", "", fmt.Errorf("failed to save user: %w", err)
	}

	if s.Mailer == nil || s.ClientURL == "" {
		return id.Hex(), MsgRegisteredNoMailConf, nil
	}

	token, err := s.JWTService.GenerateEmailVerificationToken(id.Hex())
	if err != nil {
		logging.Logger.Warnf("Verification token for %s could not be generated: %v", email, err)
		return id.Hex(), MsgRegisteredMailFailed, nil
	}
	verifyURL := fmt.Sprintf("%s/verify-email/%s", strings.TrimRight(s.ClientURL, "/"), token)
	if err := s.Mailer.Send(email, "Verify Your Email", verificationMailBody(verifyURL)); err != nil {
		logging.Logger.Warnf("Verification mail to %s failed: %v", email, err)
		return id.Hex(), MsgRegisteredMailFailed, nil
	}

	logging.Logger.Infof("Verification mail sent to %s", email)
	return id.Hex(), MsgRegistered, nil
}

// VerifyEmail marks the account the token was issued for as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.JWTService.ValidateToken(token)
	if err != nil {
		return err
	}
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return err
	}
	user.Verified = true
	return s.Repo.Save(ctx, user)
}

// Login checks credentials and verification state and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if models.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	if !user.Verified {
		return "", ErrEmailNotVerified
	}
	return s.JWTService.GenerateAuthToken(user.ID.Hex())
}

// GetUserByID returns the user document minus the password hash.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// PurgeExpiredUnverified drops accounts whose verification window has lapsed.
// Run from the hourly janitor.
func (s *UserService) PurgeExpiredUnverified(ctx context.Context) {
	deleted, err := s.Repo.DeleteExpiredUnverified(ctx, time.Now())
	if err != nil {
		logging.Logger.Errorf("Purging expired unverified users failed: %v", err)
		return
	}
	if deleted > 0 {
		logging.Logger.Infof("Purged %d expired unverified users", deleted)
	}
}

func verificationMailBody(verifyURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333; text-align: center;">Email Verification</h2>
  <p style="color: #666; font-size: 16px; line-height: 1.6;">
    Thank you for signing up! Please click the button below to verify your email address.
  </p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%s" style="display: inline-block; background-color: #007bff; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">
      Verify Email Address
    </a>
  </div>
  <p style="color: #999; font-size: 14px; text-align: center;">
    If the button doesn't work, copy and paste this link into your browser:<br>
    <a href="%s" style="color: #007bff;">%s</a>
  </p>
</div>`, verifyURL, verifyURL, verifyURL)
}
