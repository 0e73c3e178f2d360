package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 59, G: 130, B: 246, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func createTestJPEG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	return buf.Bytes()
}

// logoutOnSignStorage logs the subject out while the avatar URL is being signed
type logoutOnSignStorage struct {
	*testutil.MockAvatarStorage
	accounts *AccountService
	subject  string
}

func (s *logoutOnSignStorage) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	s.accounts.Logout(s.subject)
	return s.MockAvatarStorage.GeneratePresignedURL(ctx, objectPath, expiry)
}

func TestAvatarService_ValidateAvatar(t *testing.T) {
	svc := NewAvatarService(testutil.NewMockAvatarStorage(), NewAccountService(nil))

	tests := []struct {
		name     string
		data     []byte
		filename string
		wantErr  error
	}{
		{"valid png", createTestPNG(200, 100), "me.png", nil},
		{"valid jpeg", createTestJPEG(64, 64), "me.JPG", nil},
		{"unsupported extension", createTestPNG(100, 100), "me.gif", ErrAvatarInvalidFormat},
		{"too small", createTestPNG(40, 80), "me.png", ErrAvatarTooSmall},
		{"garbage", []byte("not an image"), "me.png", ErrAvatarInvalidData},
		{"too large", make([]byte, MaxAvatarSize+1), "me.png", ErrAvatarTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateAvatar(tt.data, tt.filename)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAvatarService_IsEnabled(t *testing.T) {
	assert.True(t, NewAvatarService(testutil.NewMockAvatarStorage(), nil).IsEnabled())
	assert.False(t, NewAvatarService(nil, nil).IsEnabled())

	var nilSvc *AvatarService
	assert.False(t, nilSvc.IsEnabled())
}

func TestAvatarService_Upload(t *testing.T) {
	accounts := NewAccountService(nil)
	store := testutil.NewMockAvatarStorage()
	svc := NewAvatarService(store, accounts)
	require.NoError(t, accounts.Authenticate(testSubject, testAccount("cashier")))

	rec := &accountRecorder{}
	sub, err := accounts.Subscribe(testSubject, rec.listen)
	require.NoError(t, err)
	defer sub.Close()

	account, err := svc.Upload(context.Background(), testSubject, createTestPNG(300, 200), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, 1, store.Count())
	assert.True(t, strings.HasPrefix(account.ImageURL, "https://storage.test/avatars/auth0_cashier/"))
	assert.Equal(t, account.ImageURL, accounts.Current(testSubject).ImageURL)

	got := rec.get()
	require.Len(t, got, 2, "replay plus the avatar push")
	assert.Equal(t, account.ImageURL, got[1].ImageURL)

	for path, data := range store.Objects {
		assert.True(t, strings.HasSuffix(path, ".jpg"))
		img, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, AvatarDimension, img.Bounds().Dx())
		assert.Equal(t, AvatarDimension, img.Bounds().Dy())
	}
}

func TestAvatarService_Upload_Errors(t *testing.T) {
	t.Run("storage not configured", func(t *testing.T) {
		svc := NewAvatarService(nil, NewAccountService(nil))
		_, err := svc.Upload(context.Background(), testSubject, createTestPNG(100, 100), "a.png")
		assert.ErrorIs(t, err, ErrAvatarStorageNotConfigured)
	})

	t.Run("not logged in", func(t *testing.T) {
		store := testutil.NewMockAvatarStorage()
		svc := NewAvatarService(store, NewAccountService(nil))
		_, err := svc.Upload(context.Background(), testSubject, createTestPNG(100, 100), "a.png")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, 0, store.Count())
	})

	t.Run("upload failure", func(t *testing.T) {
		accounts := NewAccountService(nil)
		require.NoError(t, accounts.Authenticate(testSubject, testAccount("cashier")))
		store := testutil.NewMockAvatarStorage()
		store.UploadErr = errors.New("bucket unavailable")
		svc := NewAvatarService(store, accounts)

		_, err := svc.Upload(context.Background(), testSubject, createTestPNG(100, 100), "a.png")
		assert.Error(t, err)
		assert.Empty(t, accounts.Current(testSubject).ImageURL)
	})
}

func TestAvatarService_Upload_LogoutDuringUpload(t *testing.T) {
	accounts := NewAccountService(nil)
	require.NoError(t, accounts.Authenticate(testSubject, testAccount("cashier")))
	store := &logoutOnSignStorage{
		MockAvatarStorage: testutil.NewMockAvatarStorage(),
		accounts:          accounts,
		subject:           testSubject,
	}
	svc := NewAvatarService(store, accounts)

	_, err := svc.Upload(context.Background(), testSubject, createTestPNG(100, 100), "a.png")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, accounts.Current(testSubject), "logout stays in effect")
	assert.Equal(t, 0, store.Count(), "uploaded object is removed")
}
