package auth

import (
	"testing"
	"time"

	"food-order-system/internal/config"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

func testTokenManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTTLMins:   15,
		RefreshTTLHours: 168,
	})
}

func testUser() *models.User {
	return &models.User{ID: 7, Email: "alice@example.com", Role: models.RoleCustomer}
}

func TestAccessToken_Roundtrip(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	token, err := tm.NewAccessToken(user)
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}

	claims, err := tm.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess returned error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != models.RoleCustomer {
		t.Errorf("expected role CUSTOMER, got %s", claims.Role)
	}
}

func TestRefreshToken_CarriesJTI(t *testing.T) {
	tm := testTokenManager()

	token, jti, err := tm.NewRefreshToken(testUser())
	if err != nil {
		t.Fatalf("NewRefreshToken returned error: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty jti")
	}

	claims, err := tm.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh returned error: %v", err)
	}
	if claims.ID != jti {
		t.Errorf("claims jti %q does not match returned jti %q", claims.ID, jti)
	}
}

func TestTokens_SecretsNotInterchangeable(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	access, err := tm.NewAccessToken(user)
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}
	refresh, _, err := tm.NewRefreshToken(user)
	if err != nil {
		t.Fatalf("NewRefreshToken returned error: %v", err)
	}

	if _, err := tm.VerifyRefresh(access); errs.KindOf(err) != errs.Unauthorized {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
	if _, err := tm.VerifyAccess(refresh); errs.KindOf(err) != errs.Unauthorized {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	tm := testTokenManager()

	token, err := tm.NewAccessToken(testUser())
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}

	other := NewTokenManager(config.AuthConfig{
		AccessSecret:    "a-different-secret",
		RefreshSecret:   "refresh-secret",
		AccessTTLMins:   15,
		RefreshTTLHours: 168,
	})
	if _, err := other.VerifyAccess(token); errs.KindOf(err) != errs.Unauthorized {
		t.Errorf("token signed with another secret was accepted: %v", err)
	}
}

func TestVerifyAccess_Expired(t *testing.T) {
	tm := testTokenManager()
	tm.accessTTL = -time.Minute

	token, err := tm.NewAccessToken(testUser())
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}

	if _, err := tm.VerifyAccess(token); errs.KindOf(err) != errs.Unauthorized {
		t.Errorf("expired token was accepted: %v", err)
	}
}

func TestVerifyAccess_Garbage(t *testing.T) {
	tm := testTokenManager()

	if _, err := tm.VerifyAccess("not.a.token"); errs.KindOf(err) != errs.Unauthorized {
		t.Errorf("garbage token was accepted: %v", err)
	}
}
