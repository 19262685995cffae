package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testdb"
	"foodgram/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) (UserService, jwt.JWTService) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewUserService(NewUserRepository(db), jwtService), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	db := testdb.New(t)
	svc, jwtService := newService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Email:     "Chef@Example.com",
		Username:  "chef",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", registered.Email)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "chef@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	userID, err := jwtService.GetUserIDByToken(res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "chef", me.Username)
}

func TestRegisterDuplicates(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateUser(t, db, "chef")
	svc, _ := newService(db)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email: "chef@example.com", Username: "someone", FirstName: "a", LastName: "b", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Email: "new@example.com", Username: "chef", FirstName: "a", LastName: "b", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

// The existence checks in Register pass, but the insert loses to a row
// written in between; the unique index decides.
func TestCreateUserUniqueIndexRace(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateUser(t, db, "chef")
	repo := NewUserRepository(db)
	ctx := context.Background()

	err := repo.CreateUser(ctx, &entities.User{
		Email: "chef@example.com", Username: "someone", FirstName: "a", LastName: "b", Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	err = repo.CreateUser(ctx, &entities.User{
		Email: "new@example.com", Username: "chef", FirstName: "a", LastName: "b", Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateUser(t, db, "chef")
	svc, _ := newService(db)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSubscribe(t *testing.T) {
	db := testdb.New(t)
	follower := testdb.CreateUser(t, db, "follower")
	author := testdb.CreateUser(t, db, "author")
	for _, name := range []string{"soup", "stew", "pie"} {
		testdb.CreateRecipe(t, db, author, name, nil)
	}
	svc, _ := newService(db)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, follower.ID.String(), author.ID.String(), 2)
	require.NoError(t, err)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, int64(3), sub.RecipesCount)
	assert.Len(t, sub.Recipes, 2)

	_, err = svc.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&entities.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	profile, err := svc.GetUser(ctx, author.ID.String(), follower.ID.String())
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	anonymous, err := svc.GetUser(ctx, author.ID.String(), "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)

	subs, total, err := svc.GetSubscriptions(ctx, follower.ID.String(), 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, 3)
}

func TestSubscribeToSelf(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "narcissus")
	svc, _ := newService(db)

	_, err := svc.Subscribe(context.Background(), u.ID.String(), u.ID.String(), 0)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, domain.CodeSelfSubscribe, vErr.Code)
}

func TestSubscribeToMissingUser(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "follower")
	svc, _ := newService(db)

	_, err := svc.Subscribe(context.Background(), u.ID.String(), uuid.NewString(), 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUnsubscribe(t *testing.T) {
	db := testdb.New(t)
	follower := testdb.CreateUser(t, db, "follower")
	author := testdb.CreateUser(t, db, "author")
	svc, _ := newService(db)
	ctx := context.Background()

	err := svc.Unsubscribe(ctx, follower.ID.String(), author.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)

	_, err = svc.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, follower.ID.String(), author.ID.String()))
}

func TestGetUsersMarksSubscriptions(t *testing.T) {
	db := testdb.New(t)
	viewer := testdb.CreateUser(t, db, "viewer")
	alice := testdb.CreateUser(t, db, "alice")
	testdb.CreateUser(t, db, "bob")
	svc, _ := newService(db)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, viewer.ID.String(), alice.ID.String(), 0)
	require.NoError(t, err)

	users, total, err := svc.GetUsers(ctx, 1, 2, viewer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.True(t, users[0].IsSubscribed)
	assert.Equal(t, "bob", users[1].Username)
	assert.False(t, users[1].IsSubscribed)
}
