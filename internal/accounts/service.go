package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-generator/internal/shared/auth"
	"resume-generator/internal/shared/telemetry"
)

// Service contains account administration and sign-in logic.
type Service struct {
	Repo      Repo
	JWTSecret string
}

// NewService constructs a Service.
func NewService(repo Repo, jwtSecret string) *Service {
	return &Service{Repo: repo, JWTSecret: jwtSecret}
}

// SignIn verifies credentials and issues a token carrying id and role.
func (s *Service) SignIn(ctx context.Context, username, password string) (string, Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", Account{}, ErrInvalidInput
	}

	account, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", Account{}, ErrUnauthorized
		}
		return "", Account{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", Account{}, ErrUnauthorized
	}

	token, err := auth.Sign(s.JWTSecret, account.ID, string(account.Role))
	if err != nil {
		return "", Account{}, err
	}
	return token, account, nil
}

// Create provisions a new account. Admin only. A bidder must name a
// developer as supervisor; other roles must not.
func (s *Service) Create(ctx context.Context, actor Actor, username, password string, role Role, supervisorID string) (Account, error) {
	if actor.Role != RoleAdmin {
		return Account{}, ErrUnauthorized
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.Valid() {
		return Account{}, ErrInvalidInput
	}

	if role == RoleBidder {
		if supervisorID == "" {
			return Account{}, ErrInvalidInput
		}
		supervisor, err := s.Repo.GetByID(ctx, supervisorID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Account{}, ErrInvalidInput
			}
			return Account{}, err
		}
		if supervisor.Role != RoleDeveloper {
			return Account{}, ErrInvalidInput
		}
	} else {
		supervisorID = ""
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		SupervisorID: supervisorID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return Account{}, err
	}

	telemetry.Info("account.created", map[string]any{
		"account_id": account.ID,
		"username":   account.Username,
		"role":       account.Role,
	})
	return account, nil
}

// List returns all accounts. Admin only.
func (s *Service) List(ctx context.Context, actor Actor) ([]Account, error) {
	if actor.Role != RoleAdmin {
		return nil, ErrUnauthorized
	}
	return s.Repo.List(ctx)
}

// Delete removes an account. Admin only. Ledger rows for the account's
// artifacts cascade with it, but its on-disk files are NOT removed — the
// metadata-only cascade is long-standing behavior; callers wanting disk
// reclamation must sweep the artifact root separately.
func (s *Service) Delete(ctx context.Context, actor Actor, accountID string) error {
	if actor.Role != RoleAdmin {
		return ErrUnauthorized
	}
	if err := s.Repo.Delete(ctx, accountID); err != nil {
		return err
	}
	telemetry.Info("account.deleted", map[string]any{"account_id": accountID})
	return nil
}

// ChangeRole updates an account's role. Admin only. A bidder promoted out
// of the bidder role keeps no supervisor.
func (s *Service) ChangeRole(ctx context.Context, actor Actor, accountID string, role Role) (Account, error) {
	if actor.Role != RoleAdmin {
		return Account{}, ErrUnauthorized
	}
	if !role.Valid() {
		return Account{}, ErrInvalidInput
	}

	account, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return Account{}, err
	}
	account.Role = role
	if role != RoleBidder {
		account.SupervisorID = ""
	}
	account.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// SetPassword resets an account's password. Admin only.
func (s *Service) SetPassword(ctx context.Context, actor Actor, accountID, password string) error {
	if actor.Role != RoleAdmin {
		return ErrUnauthorized
	}
	if password == "" {
		return ErrInvalidInput
	}

	account, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	account.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, account)
}

// AssignSupervisor attaches a bidder to a developer. Admin only.
func (s *Service) AssignSupervisor(ctx context.Context, actor Actor, bidderID, developerID string) (Account, error) {
	if actor.Role != RoleAdmin {
		return Account{}, ErrUnauthorized
	}

	bidder, err := s.Repo.GetByID(ctx, bidderID)
	if err != nil {
		return Account{}, err
	}
	if bidder.Role != RoleBidder {
		return Account{}, ErrInvalidInput
	}
	supervisor, err := s.Repo.GetByID(ctx, developerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidInput
		}
		return Account{}, err
	}
	if supervisor.Role != RoleDeveloper {
		return Account{}, ErrInvalidInput
	}

	bidder.SupervisorID = developerID
	bidder.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, bidder); err != nil {
		return Account{}, err
	}
	return bidder, nil
}

// Bidders returns the bidders supervised by the given developer. A
// developer may only list its own bidders; admin may list anyone's.
func (s *Service) Bidders(ctx context.Context, actor Actor, developerID string) ([]Account, error) {
	if actor.Role != RoleAdmin && (actor.Role != RoleDeveloper || actor.ID != developerID) {
		return nil, ErrUnauthorized
	}
	return s.Repo.ListBySupervisor(ctx, developerID)
}

// SetLLMCredentials stores a developer's LLM token and/or prompt. Self only.
func (s *Service) SetLLMCredentials(ctx context.Context, actor Actor, token, prompt *string) error {
	if actor.Role != RoleDeveloper {
		return ErrUnauthorized
	}
	account, err := s.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if token != nil {
		account.LLMToken = *token
	}
	if prompt != nil {
		account.LLMPrompt = *prompt
	}
	account.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, account)
}

// GetLLMCredentials returns a developer's stored LLM token and prompt.
// Self only.
func (s *Service) GetLLMCredentials(ctx context.Context, actor Actor) (token, prompt string, err error) {
	if actor.Role != RoleDeveloper {
		return "", "", ErrUnauthorized
	}
	account, err := s.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		return "", "", err
	}
	return account.LLMToken, account.LLMPrompt, nil
}
