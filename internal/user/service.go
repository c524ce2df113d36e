package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kwanza-pay/kwanza_pay/internal/credential"
	"github.com/kwanza-pay/kwanza_pay/internal/fault"
	"github.com/kwanza-pay/kwanza_pay/internal/keypair"
)

const (
	// dobLayout is the external DD-MM-YYYY date format accepted on input.
	dobLayout = "02-01-2006"
	// dobViewLayout is how dates of birth are rendered in responses.
	dobViewLayout = "2006-01-02"
)

// KeyGenerator produces a wallet address and its private key.
type KeyGenerator func() (address, privateKey string, err error)

// Service orchestrates registration: uniqueness check, key-pair generation,
// credential hashing and persistence. A request either completes with one
// fully-formed record persisted or fails with nothing persisted.
type Service struct {
	repo   Repository
	hasher credential.Hasher
	keys   KeyGenerator
}

// NewService creates a user service backed by the given repository and hasher.
func NewService(repo Repository, hasher credential.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher, keys: keypair.Generate}
}

// CreateInput captures a registration request.
type CreateInput struct {
	Username     string
	Email        string
	Password     string
	DateOfBirth  string
	MobileNumber string
}

// CreateUser registers a new user and issues a wallet key pair. Validation
// happens before any side effect; a uniqueness race past the advisory check
// is reported as the same conflict as a pre-check hit.
func (s *Service) CreateUser(ctx context.Context, input CreateInput) (View, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.MobileNumber == "" {
		return View{}, fault.New(fault.KindValidation, "username, email, password and mobile number are required")
	}

	dob, err := time.Parse(dobLayout, input.DateOfBirth)
	if err != nil {
		return View{}, fault.New(fault.KindValidation, "invalid date format, use DD-MM-YYYY")
	}

	exists, err := s.repo.ExistsAny(ctx, input.Username, input.Email, input.MobileNumber)
	if err != nil {
		return View{}, fault.Wrap(fault.KindInternal, "conflict check failed", err)
	}
	if exists {
		return View{}, fault.New(fault.KindConflict, "username, email or mobile number already exists")
	}

	address, privateKey, err := s.keys()
	if err != nil {
		return View{}, fault.Wrap(fault.KindInternal, "wallet key generation failed", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return View{}, fault.Wrap(fault.KindInternal, "credential hashing failed", err)
	}

	record := User{
		ID:               uuid.New().String(),
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     hash,
		DateOfBirth:      dob,
		MobileNumber:     input.MobileNumber,
		WalletAddress:    address,
		WalletPrivateKey: privateKey,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return View{}, fault.Wrap(fault.KindConflict, "username, email or mobile number already exists", err)
		}
		return View{}, fault.Wrap(fault.KindInternal, "persist user failed", err)
	}

	return view(record, "User created with ID "+record.ID), nil
}

// GetUser fetches a registered user by identifier.
func (s *Service) GetUser(ctx context.Context, id string) (View, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return View{}, fault.New(fault.KindValidation, "invalid user id")
	}

	record, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, fault.Wrap(fault.KindNotFound, "user not found", err)
		}
		return View{}, fault.Wrap(fault.KindInternal, "find user failed", err)
	}

	return view(record, "User found"), nil
}

func view(record User, message string) View {
	return View{
		ID:            record.ID,
		Username:      record.Username,
		Email:         record.Email,
		PasswordHash:  record.PasswordHash,
		DateOfBirth:   record.DateOfBirth.Format(dobViewLayout),
		MobileNumber:  record.MobileNumber,
		WalletAddress: record.WalletAddress,
		Message:       message,
	}
}
