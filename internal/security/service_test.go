package security

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/utils/crypto"
)

func initTestKeys(t *testing.T) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	crypto.SetKeys(key)
}

func TestCheckAccess(t *testing.T) {
	svc := NewService()

	if err := svc.CheckAccess(models.RoleAdmin, models.OperationAdd, models.ResourceWarehouse); err != nil {
		t.Fatalf("admin add warehouse: %v", err)
	}

	err := svc.CheckAccess(models.RoleWarehouseOperator, models.OperationModify, models.ResourceWarehouseOperation)
	if !apperr.IsKind(err, apperr.KindAccessDenied) {
		t.Fatalf("got %v, want ACCESS_DENIED", err)
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	svc := NewService()

	hashed, err := svc.EncodePassword("s3cretpass")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hashed == "s3cretpass" {
		t.Fatal("password not hashed")
	}

	ok, err := svc.CheckPassword("s3cretpass", hashed)
	if err != nil || !ok {
		t.Fatalf("check correct password: ok=%v err=%v", ok, err)
	}
	ok, err = svc.CheckPassword("wrong", hashed)
	if err != nil || ok {
		t.Fatalf("check wrong password: ok=%v err=%v", ok, err)
	}
	if _, err := svc.CheckPassword("", hashed); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("empty password: got %v, want INVALID_INPUT", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	initTestKeys(t)
	svc := NewService()
	employee := &models.Employee{
		Base:     models.Base{ID: 7},
		Username: "alice",
		Role:     models.RoleBusinessOwner,
	}

	for _, tc := range []struct {
		name    string
		wantUse string
		issue   func() (string, error)
	}{
		{"access", TokenUseAccess, func() (string, error) { s, _, err := svc.GenerateAccessToken(employee); return s, err }},
		{"refresh", TokenUseRefresh, func() (string, error) { s, _, err := svc.GenerateRefreshToken(employee); return s, err }},
		{"activation", TokenUseActivation, func() (string, error) { s, _, err := svc.GenerateActivationToken(employee); return s, err }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			token, err := tc.issue()
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			claims, err := svc.VerifyToken(token)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if claims.EmployeeID != 7 || claims.Username != "alice" || claims.Role != string(models.RoleBusinessOwner) {
				t.Errorf("claims = %+v", claims)
			}
			if claims.TokenUse != tc.wantUse {
				t.Errorf("token use = %q, want %q", claims.TokenUse, tc.wantUse)
			}
		})
	}
}

func TestVerifyTokenRejectsForeignKey(t *testing.T) {
	initTestKeys(t)
	svc := NewService()
	employee := &models.Employee{Base: models.Base{ID: 1}, Username: "alice", Role: models.RoleAdmin}

	token, _, err := svc.GenerateAccessToken(employee)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A token signed under a different key pair must not verify.
	initTestKeys(t)
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("token verified under the wrong key")
	}
}
