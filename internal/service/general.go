package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
)

const bcryptCost = 12

type General struct {
	db     *gorm.DB
	tokens *auth.Tokens
	logger *zap.SugaredLogger
	cost   int
}

func NewGeneral(gdb *gorm.DB, tokens *auth.Tokens, l *zap.SugaredLogger) *General {
	return &General{
		db:     gdb,
		tokens: tokens,
		logger: l,
		cost:   bcryptCost,
	}
}

type ProfileFields struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

func (s *General) Register(ctx context.Context, email, pass, firstName, lastName string) (*db.User, string, error) {
	hash, err := s.bcryptGen(pass)
	if err != nil {
		return nil, "", errors.Wrap(err, "bcryptGen")
	}

	user := db.User{
		Email:     email,
		Password:  hash,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
	res := s.db.WithContext(ctx).Create(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", errors.Wrap(res.Error, "create user")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *General) Login(ctx context.Context, email, pass string) (*db.User, string, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("email = ?", email).Take(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, "", ErrLoginUserNotFound
		}
		return nil, "", res.Error
	}

	if err := s.bcryptCheck(user.Password, pass); err != nil {
		return nil, "", ErrLoginPasswordDoesNotMatch
	}
	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	now := time.Now().UTC()
	res = s.db.WithContext(ctx).Model(&user).UpdateColumn("last_login", now)
	if res.Error != nil {
		return nil, "", errors.Wrap(res.Error, "update last login")
	}
	user.LastLogin = &now

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *General) Authenticate(ctx context.Context, token string) (*db.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *General) User(ctx context.Context, userID uint64) (*db.User, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(res.Error, "get user")
	}
	return &user, nil
}

func (s *General) UpdateProfile(ctx context.Context, userID uint64, fields ProfileFields) (*db.User, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if fields.FirstName != nil {
		updates["first_name"] = *fields.FirstName
	}
	if fields.LastName != nil {
		updates["last_name"] = *fields.LastName
	}
	if fields.AvatarURL != nil {
		updates["avatar_url"] = *fields.AvatarURL
	}

	res := s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", userID).UpdateColumns(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return s.User(ctx, userID)
}

func (s *General) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	user, err := s.User(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.bcryptCheck(user.Password, current); err != nil {
		return ErrLoginPasswordDoesNotMatch
	}

	hash, err := s.bcryptGen(next)
	if err != nil {
		return errors.Wrap(err, "bcryptGen")
	}
	res := s.db.WithContext(ctx).Model(user).UpdateColumns(map[string]interface{}{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update password")
	}
	return nil
}

// DeleteAccount removes the user; contacts and their links cascade.
func (s *General) DeleteAccount(ctx context.Context, userID uint64) error {
	res := s.db.WithContext(ctx).Where("id = ?", userID).Delete(&db.User{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	s.logger.Infow("account deleted", "user_id", userID)
	return nil
}

func (s *General) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.cost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *General) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
