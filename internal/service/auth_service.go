/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tandem/internal/apperr"
	"tandem/internal/avatar"
	"tandem/internal/entity"
	"tandem/internal/mirror"
	"tandem/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OnboardInput is the profile completion payload. Every field is required.
type OnboardInput struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}

// ProfileUpdate carries the editable profile fields. ProfilePic is applied
// only when present so older clients keep working.
type ProfileUpdate struct {
	FullName         string  `json:"fullName"`
	Bio              string  `json:"bio"`
	NativeLanguage   string  `json:"nativeLanguage"`
	LearningLanguage string  `json:"learningLanguage"`
	Location         string  `json:"location"`
	ProfilePic       *string `json:"profilePic"`
}

// Service used for account lifecycle: registration, authentication and
// profile maintenance. Mirror syncs are best-effort and never fail the
// primary mutation.
type AuthService interface {
	Signup(ctx context.Context, email, password, fullName string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetAccount(uuid string) (*entity.User, error)
	Onboard(ctx context.Context, userUUID string, in OnboardInput) (*entity.User, error)
	UpdateProfile(ctx context.Context, userUUID string, in ProfileUpdate) (*entity.User, error)
}

type authService struct {
	users  repository.UserRepository
	mirror mirror.Client
}

func NewAuthService(users repository.UserRepository, mirror mirror.Client) AuthService {
	return &authService{users: users, mirror: mirror}
}

func (s *authService) Signup(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	if email == "" || password == "" || fullName == "" {
		return nil, apperr.Validationf("All fields are required")
	}
	if len(password) < 6 {
		return nil, apperr.Validationf("Password must be at least 6 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validationf("Invalid email format")
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, apperr.Conflictf("Email already exists, please use a different one")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	randomAvatar := avatar.Generate()
	user := &entity.User{
		UUID:            uuid.New().String(),
		FullName:        fullName,
		Email:           email,
		ProfilePic:      randomAvatar, // kept in sync for older clients
		RandomAvatarURL: randomAvatar,
		CreatedAt:       time.Now(),
	}
	secret := &entity.UserSecret{UserUUID: user.UUID, Hash: string(hash)}

	if err := s.users.Create(user, secret); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	s.syncMirror(ctx, user)
	jww.INFO.Printf("user %s registered", user.UUID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validationf("All fields are required")
	}

	// The same message covers a missing account and a wrong password.
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, apperr.Unauthenticatedf("Invalid email or password")
	}
	secret, err := s.users.GetSecret(user.UUID)
	if err != nil {
		return nil, apperr.Unauthenticatedf("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(secret.Hash), []byte(password)) != nil {
		return nil, apperr.Unauthenticatedf("Invalid email or password")
	}
	return user, nil
}

func (s *authService) GetAccount(uuid string) (*entity.User, error) {
	user, err := s.users.GetByUUID(uuid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return user, nil
}

func (s *authService) Onboard(ctx context.Context, userUUID string, in OnboardInput) (*entity.User, error) {
	if in.FullName == "" || in.Bio == "" || in.NativeLanguage == "" || in.LearningLanguage == "" || in.Location == "" {
		return nil, apperr.Validationf("All fields are required")
	}

	user, err := s.GetAccount(userUUID)
	if err != nil {
		return nil, err
	}

	user.FullName = in.FullName
	user.Bio = in.Bio
	user.NativeLanguage = in.NativeLanguage
	user.LearningLanguage = in.LearningLanguage
	user.Location = in.Location
	user.IsOnboarded = true

	if err := s.users.Update(user); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	s.syncMirror(ctx, user)
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userUUID string, in ProfileUpdate) (*entity.User, error) {
	if in.FullName == "" {
		return nil, apperr.Validationf("Full name is required")
	}

	user, err := s.GetAccount(userUUID)
	if err != nil {
		return nil, err
	}

	user.FullName = in.FullName
	user.Bio = in.Bio
	user.NativeLanguage = in.NativeLanguage
	user.LearningLanguage = in.LearningLanguage
	user.Location = in.Location
	if in.ProfilePic != nil {
		user.ProfilePic = *in.ProfilePic
		if avatar.IsGenerated(*in.ProfilePic) {
			user.RandomAvatarURL = *in.ProfilePic
		}
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	s.syncMirror(ctx, user)
	return user, nil
}

func (s *authService) syncMirror(ctx context.Context, user *entity.User) {
	apperr.BestEffort("mirror profile upsert", func() error {
		return s.mirror.UpsertProfile(ctx, mirror.Profile{
			ID:        user.UUID,
			Name:      user.FullName,
			AvatarURL: avatar.Resolve(user),
		})
	})
}

// normalizeQuery trims a free-text search term; empty means "no filter".
func normalizeQuery(q string) string {
	return strings.TrimSpace(q)
}
