package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/linguamate/core/internal/models"
	"github.com/linguamate/core/internal/pkg/assets"
	"github.com/linguamate/core/internal/pkg/chatdir"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	assets    assets.Store
	directory *chatdir.Client
	logger    *zap.Logger
}

func NewService(db *gorm.DB, store assets.Store, directory *chatdir.Client, logger *zap.Logger) *Service {
	return &Service{db: db, assets: store, directory: directory, logger: logger}
}

// UserByID implements middleware.UserSource. Returns (nil, nil) when the user
// no longer exists so gates can map it to unauthorized.
func (s *Service) UserByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Signup(ctx context.Context, dto *SignupDTO) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Email:    email,
		Password: string(hash),
		FullName: strings.TrimSpace(dto.FullName),
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}

	s.syncDirectory(ctx, &u)
	return &u, nil
}

// dummyHash keeps the compare cost identical whether or not the email exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("login-timing-pad"), bcrypt.DefaultCost)

func (s *Service) Login(ctx context.Context, email, password string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &u, nil
}

func (s *Service) Onboard(ctx context.Context, userID string, dto *OnboardDTO) (*models.UserModel, error) {
	dob, err := parseDOB(dto.DOB)
	if err != nil {
		return nil, err
	}

	u, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	u.FullName = strings.TrimSpace(dto.FullName)
	u.Bio = dto.Bio
	u.Gender = dto.Gender
	u.Sexuality = dto.Sexuality
	u.Age = dto.Age
	u.DateOfBirth = dob
	u.Hobbies = dto.Hobbies
	u.NativeLanguages = dto.NativeLanguages
	u.Location = dto.Location
	u.IsOnboarded = true

	if pic := s.resolveProfilePic(ctx, dto.ProfilePic); pic != "" {
		u.ProfilePic = pic
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}

	s.syncDirectory(ctx, u)
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	if dto.Bio != nil {
		u.Bio = *dto.Bio
	}
	if dto.Gender != nil {
		u.Gender = *dto.Gender
	}
	if dto.Sexuality != nil {
		u.Sexuality = *dto.Sexuality
	}
	if dto.Hobbies != nil {
		u.Hobbies = dto.Hobbies
	}
	if dto.NativeLanguages != nil {
		u.NativeLanguages = dto.NativeLanguages
	}
	if dto.Location != nil {
		u.Location = *dto.Location
	}
	if dto.ProfilePic != nil {
		if pic := s.resolveProfilePic(ctx, *dto.ProfilePic); pic != "" {
			u.ProfilePic = pic
		}
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// resolveProfilePic uploads data-URI payloads to the asset host; plain URLs
// pass through. Upload failures are logged and recovered by dropping the
// picture, never by failing the request.
func (s *Service) resolveProfilePic(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "data:") {
		return raw
	}
	url, err := s.assets.UploadDataURI(ctx, "profile_pics", raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("profile pic upload failed", zap.Error(err))
		}
		return ""
	}
	return url
}

// syncDirectory pushes the profile to the chat directory. Failures are logged
// and discarded by policy.
func (s *Service) syncDirectory(ctx context.Context, u *models.UserModel) {
	if err := s.directory.UpsertUser(ctx, u); err != nil && s.logger != nil {
		s.logger.Warn("chat directory sync failed",
			zap.String("user", u.ID),
			zap.Error(err),
		)
	}
}
