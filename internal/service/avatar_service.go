package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxAvatarSize      = 2 * 1024 * 1024 // 2MB
	MinAvatarDimension = 50
	AvatarDimension    = 128
	AvatarJPEGQuality  = 85
	AvatarURLExpiry    = 7 * 24 * time.Hour
)

var (
	ErrAvatarTooLarge             = errors.New("file too large. Maximum size is 2MB")
	ErrAvatarInvalidFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrAvatarTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrAvatarInvalidData          = errors.New("invalid image data")
	ErrAvatarStorageNotConfigured = errors.New("avatar storage not configured")
)

// AllowedAvatarExtensions maps accepted file extensions to content types
var AllowedAvatarExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var subjectPathReplacer = strings.NewReplacer("|", "_", "/", "_", "\\", "_")

// AvatarService crops uploaded pictures into square avatars and publishes the
// new image URL on the owner's authentication-state stream
type AvatarService struct {
	storage  storage.AvatarRepository
	accounts *AccountService
}

// NewAvatarService creates a new AvatarService. A nil storage disables uploads.
func NewAvatarService(storage storage.AvatarRepository, accounts *AccountService) *AvatarService {
	return &AvatarService{storage: storage, accounts: accounts}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *AvatarService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidateAvatar checks size, extension and dimensions of an upload
func (s *AvatarService) ValidateAvatar(data []byte, filename string) error {
	_, err := s.validateAndDecode(data, filename)
	return err
}

func (s *AvatarService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedAvatarExtensions[ext]; !ok {
		return nil, ErrAvatarInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrAvatarInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinAvatarDimension || bounds.Dy() < MinAvatarDimension {
		return nil, ErrAvatarTooSmall
	}

	return img, nil
}

// Upload crops the picture to a square avatar, stores it and pushes the
// updated account to the subject's subscribers
func (s *AvatarService) Upload(ctx context.Context, subject string, data []byte, filename string) (*domain.Account, error) {
	if !s.IsEnabled() {
		return nil, ErrAvatarStorageNotConfigured
	}
	if s.accounts.Current(subject) == nil {
		return nil, domain.ErrUnauthorized
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	avatar := imaging.Fill(img, AvatarDimension, AvatarDimension, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, avatar, &jpeg.Options{Quality: AvatarJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	objectPath := fmt.Sprintf("avatars/%s/%s.jpg", subjectPathReplacer.Replace(subject), uuid.New().String())
	path, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, path, AvatarURLExpiry)
	if err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			log.Warn().Err(delErr).Str("object_path", path).Msg("Failed to clean up avatar")
		}
		return nil, err
	}

	account, err := s.accounts.UpdateImage(subject, url)
	if err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			log.Warn().Err(delErr).Str("object_path", path).Msg("Failed to clean up avatar")
		}
		return nil, err
	}

	log.Info().Str("subject", subject).Str("object_path", path).Msg("Avatar updated")
	return account, nil
}
