package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kwanza-pay/kwanza_pay/internal/credential"
	"github.com/kwanza-pay/kwanza_pay/internal/fault"
)

func newTestService() (*Service, Repository) {
	repo := NewMemoryRepository()
	return NewService(repo, credential.NewBcryptHasher()), repo
}

func validInput() CreateInput {
	return CreateInput{
		Username:     "amina",
		Email:        "amina@example.com",
		Password:     "s3cret-pin",
		DateOfBirth:  "21-03-1994",
		MobileNumber: "+244923000111",
	}
}

func TestCreateAndGetUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, validInput())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := uuid.Parse(created.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", created.ID)
	}
	if created.DateOfBirth != "1994-03-21" {
		t.Fatalf("expected rendered dob 1994-03-21, got %q", created.DateOfBirth)
	}
	if created.PasswordHash == "s3cret-pin" {
		t.Fatalf("stored credential must not equal plaintext")
	}
	if created.WalletAddress == "" {
		t.Fatalf("expected wallet address")
	}
	if created.Message != "User created with ID "+created.ID {
		t.Fatalf("unexpected message %q", created.Message)
	}

	fetched, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	fetched.Message = created.Message
	if fetched != created {
		t.Fatalf("fetched view differs from created view:\n%+v\n%+v", fetched, created)
	}
}

func TestCreateUserConflictOnAnyField(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, validInput()); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	cases := map[string]CreateInput{
		"username": {Username: "amina", Email: "other@example.com", Password: "x", DateOfBirth: "01-01-2000", MobileNumber: "+244000000001"},
		"email":    {Username: "other", Email: "amina@example.com", Password: "x", DateOfBirth: "01-01-2000", MobileNumber: "+244000000002"},
		"mobile":   {Username: "another", Email: "another@example.com", Password: "x", DateOfBirth: "01-01-2000", MobileNumber: "+244923000111"},
	}
	for name, input := range cases {
		if _, err := svc.CreateUser(ctx, input); fault.KindOf(err) != fault.KindConflict {
			t.Fatalf("%s collision: expected conflict, got %v", name, err)
		}
	}

	// No overlap on the three unique fields never conflicts, even when other
	// fields resemble an existing record.
	clean := CreateInput{Username: "amina2", Email: "amina2@example.com", Password: "s3cret-pin", DateOfBirth: "21-03-1994", MobileNumber: "+244923000112"}
	if _, err := svc.CreateUser(ctx, clean); err != nil {
		t.Fatalf("non-colliding input must succeed: %v", err)
	}
}

func TestCreateUserInvalidDateLeavesNoRecord(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	input := validInput()
	input.DateOfBirth = "2020-13-40"

	_, err := svc.CreateUser(ctx, input)
	if fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	exists, err := repo.ExistsAny(ctx, input.Username, input.Email, input.MobileNumber)
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if exists {
		t.Fatalf("validation failure must not persist a record")
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	svc, _ := newTestService()

	input := validInput()
	input.Email = ""
	if _, err := svc.CreateUser(context.Background(), input); fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUserKeyGenerationFailure(t *testing.T) {
	svc, repo := newTestService()
	svc.keys = func() (string, string, error) {
		return "", "", errors.New("entropy exhausted")
	}

	input := validInput()
	_, err := svc.CreateUser(context.Background(), input)
	if fault.KindOf(err) != fault.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}

	exists, _ := repo.ExistsAny(context.Background(), input.Username, input.Email, input.MobileNumber)
	if exists {
		t.Fatalf("failed generation must not persist a record")
	}
}

func TestGetUserBadIdentifier(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetUser(context.Background(), "not-a-uuid"); fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.GetUser(context.Background(), uuid.NewString()); fault.KindOf(err) != fault.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestConcurrentIdenticalCreates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateUser(ctx, validInput())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case fault.KindOf(err) == fault.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 created and %d conflicts, got %d/%d", n-1, created, conflicts)
	}
}
