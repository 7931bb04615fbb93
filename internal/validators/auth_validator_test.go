package validators

import (
	"testing"

	"github.com/Amala4/Chat-App/internal/models"
)

func TestValidateUserAcceptsCompleteUser(t *testing.T) {
	user := &models.User{
		FirstName: "Alice",
		LastName:  "Tester",
		Email:     "alice@example.com",
		Password:  "s3cretPass!",
	}
	if errList := ValidateUser(user); len(errList) > 0 {
		t.Fatalf("expected no errors, got %v", errList)
	}
}

func TestValidateUserRejectsBadInput(t *testing.T) {
	cases := []*models.User{
		nil,
		{FirstName: "A", LastName: "Tester", Email: "alice@example.com", Password: "s3cretPass!"},
		{FirstName: "Alice", LastName: "Tester", Email: "not-an-email", Password: "s3cretPass!"},
		{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com", Password: "short"},
	}
	for i, user := range cases {
		if errList := ValidateUser(user); len(errList) == 0 {
			t.Fatalf("case %d: expected validation errors", i)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("bob@example.com") {
		t.Fatalf("expected valid email")
	}
	if ValidateEmail("bob@@example") {
		t.Fatalf("expected invalid email")
	}
}
