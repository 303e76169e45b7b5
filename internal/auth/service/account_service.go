package service

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/WooodHead/everpost-backend/internal/auth/domain"
	authrepo "github.com/WooodHead/everpost-backend/internal/auth/repository"
	commoncrypto "github.com/WooodHead/everpost-backend/internal/common/crypto"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	userdomain "github.com/WooodHead/everpost-backend/internal/user/domain"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
)

type AccountService struct {
	users       userrepo.Repository
	credentials authrepo.CredentialRepository
	txManager   authrepo.AccountTxManager
	hasher      commoncrypto.PasswordHasher
	tokens      *TokenIssuer
	log         *logger.Logger
}

func NewAccountService(
	users userrepo.Repository,
	credentials authrepo.CredentialRepository,
	txManager authrepo.AccountTxManager,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	log *logger.Logger,
) *AccountService {
	return &AccountService{
		users:       users,
		credentials: credentials,
		txManager:   txManager,
		hasher:      hasher,
		tokens:      tokens,
		log:         log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates the user and its credential in one transaction. If the
// credential cannot be stored the user row is rolled back with it.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	input.Email = normalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegistration(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		recordRegistration("invalid")
		return userdomain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		recordRegistration("error")
		return userdomain.User{}, fmt.Errorf("hash password: %w", err)
	}

	var user userdomain.User
	err = s.txManager.WithTx(ctx, func(ctx context.Context, tx authrepo.AccountTx) error {
		created, err := tx.Users().Create(ctx, input.Email, input.Username)
		if err != nil {
			return err
		}
		if _, err := tx.Credentials().Create(ctx, created.ID, hash); err != nil {
			return fmt.Errorf("create credential for user %d: %w", created.ID, err)
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already exists")
			recordRegistration("conflict")
			return userdomain.User{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		recordRegistration("error")
		return userdomain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": user.ID,
		"action":  "register_success",
	}).Info("register success")
	recordRegistration("success")

	return user, nil
}

func (s *AccountService) Authenticate(ctx context.Context, email, password string) (authdomain.Token, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_unknown_email",
			}).Warn("login failed: no account for email")
			recordLogin("unknown_email")
			return authdomain.Token{}, ErrAccountNotFound
		}
		recordLogin("error")
		return authdomain.Token{}, err
	}

	cred, err := s.credentials.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, authrepo.ErrCredentialNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": user.ID,
				"action":  "login_no_credential",
			}).Warn("login failed: account has no credential")
			recordLogin("no_credential")
			return authdomain.Token{}, ErrCredentialNotFound
		}
		recordLogin("error")
		return authdomain.Token{}, err
	}

	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		if errors.Is(err, commoncrypto.ErrMismatchedHash) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": user.ID,
				"action":  "login_invalid_password",
			}).Warn("login failed: invalid password")
			recordLogin("invalid_password")
			return authdomain.Token{}, ErrInvalidCredentials
		}
		recordLogin("error")
		return authdomain.Token{}, fmt.Errorf("compare password hash: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		recordLogin("error")
		return authdomain.Token{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": user.ID,
		"action":  "login_success",
	}).Info("login success")
	recordLogin("success")

	return token, nil
}
