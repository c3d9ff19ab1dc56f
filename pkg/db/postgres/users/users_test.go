package users_test

import (
	"context"
	"errors"
	"testing"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/pool/testenv"
	kpguser "github.com/bearnovel/bearnovel/pkg/db/postgres/users"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/utils/try"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	poolBroaker := testenv.NewPoolBroaker(ctx, t)

	register := func(t *testing.T, p domain.RegisterParam) *domain.RegisterSpec {
		t.Helper()
		return try.To(p.Validate()).OrFatal(t)
	}

	t.Run("created user can be found by name, email and nickname", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		created := try.To(testee.Create(ctx, register(t, domain.RegisterParam{
			UserName: "alice", Email: "Alice@example.com", Password: "secret-pass", NickName: "Ally",
		}), "hash")).OrFatal(t)

		if created.Role != domain.RoleUser {
			t.Errorf("role: %v", created.Role)
		}
		if created.PasswordHash != "hash" {
			t.Errorf("password hash: %s", created.PasswordHash)
		}

		for name, find := range map[string]func() (domain.User, error){
			"by id":       func() (domain.User, error) { return testee.Get(ctx, created.Id) },
			"by name":     func() (domain.User, error) { return testee.FindByName(ctx, "alice") },
			"by email":    func() (domain.User, error) { return testee.FindByEmail(ctx, "alice@EXAMPLE.com") },
			"by nickname": func() (domain.User, error) { return testee.FindByNickName(ctx, "Ally") },
		} {
			got, err := find()
			if err != nil {
				t.Errorf("%s: %v", name, err)
				continue
			}
			if got.Id != created.Id {
				t.Errorf("%s: got user %d, want %d", name, got.Id, created.Id)
			}
		}
	})

	t.Run("duplicated user name or email conflicts", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		try.To(testee.Create(ctx, register(t, domain.RegisterParam{
			UserName: "bob", Email: "bob@example.com", Password: "secret-pass",
		}), "hash")).OrFatal(t)

		for name, p := range map[string]domain.RegisterParam{
			"same name":  {UserName: "bob", Email: "other@example.com", Password: "secret-pass"},
			"same email": {UserName: "bobby", Email: "BOB@example.com", Password: "secret-pass"},
		} {
			_, err := testee.Create(ctx, register(t, p), "hash")
			if !errors.Is(err, kdb.ErrConflict) {
				t.Errorf("%s: expected ErrConflict, but %v", name, err)
			}
		}
	})

	t.Run("missing user", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		if _, err := testee.FindByName(ctx, "nobody"); !errors.Is(err, kdb.ErrMissing) {
			t.Errorf("FindByName: expected ErrMissing, but %v", err)
		}
		if err := testee.UpdateProfilePicture(ctx, 404, "image/png", []byte{1}); !errors.Is(err, kdb.ErrMissing) {
			t.Errorf("UpdateProfilePicture: expected ErrMissing, but %v", err)
		}
	})

	t.Run("profile picture is updated", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		created := try.To(testee.Create(ctx, register(t, domain.RegisterParam{
			UserName: "carol", Email: "carol@example.com", Password: "secret-pass",
		}), "hash")).OrFatal(t)

		if err := testee.UpdateProfilePicture(ctx, created.Id, "image/png", []byte{0x89, 0x50}); err != nil {
			t.Fatal(err)
		}
		got := try.To(testee.Get(ctx, created.Id)).OrFatal(t)
		if got.ProfilePictureContentType != "image/png" || string(got.ProfilePicture) != "\x89\x50" {
			t.Errorf("picture: %s %v", got.ProfilePictureContentType, got.ProfilePicture)
		}
	})
}
