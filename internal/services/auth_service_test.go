package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"zarika/internal/apperr"
	"zarika/internal/repos"
	"zarika/internal/services"
)

func TestRegisterValidation(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	cases := []struct {
		name string
		in   services.RegisterInput
	}{
		{"short name", services.RegisterInput{Name: "K", Email: "k@zarika.test", Password: "secret1"}},
		{"bad email", services.RegisterInput{Name: "Kala", Email: "not-an-email", Password: "secret1"}},
		{"bad phone", services.RegisterInput{Name: "Kala", Email: "k@zarika.test", Phone: "12345", Password: "secret1"}},
		{"short password", services.RegisterInput{Name: "Kala", Email: "k@zarika.test", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.in)
			require.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	u, err := svc.Register(services.RegisterInput{Name: "Kala", Email: "kala@zarika.test", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "CUSTOMER", u.Role, "self-registration never grants admin")

	_, err = svc.Register(services.RegisterInput{Name: "Kala Again", Email: "KALA@zarika.test", Password: "secret1"})
	require.True(t, apperr.Is(err, apperr.CodeConflict), "email match is case-insensitive, got %v", err)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}
	_, err := svc.Register(services.RegisterInput{Name: "Kala", Email: "kala@zarika.test", Password: "secret1"})
	require.NoError(t, err)

	u, err := svc.Login("sid-1", "kala@zarika.test", "secret1")
	require.NoError(t, err)

	got, err := svc.CurrentUser("sid-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	// Wrong password and unknown email fail the same way.
	_, err = svc.Login("sid-2", "kala@zarika.test", "wrong")
	require.ErrorIs(t, err, services.ErrBadCreds)
	_, err = svc.Login("sid-2", "ghost@zarika.test", "secret1")
	require.ErrorIs(t, err, services.ErrBadCreds)

	require.NoError(t, svc.Logout("sid-1"))
	_, err = svc.CurrentUser("sid-1")
	require.Error(t, err, "unbound session no longer resolves")
}
