package member

import (
	"context"
	"fmt"
	"io"
	"strings"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/storage"
	"member-api/core/utils"
	"member-api/feature/member/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MemberFields are the selectable top-level fields of a member document.
var MemberFields = []string{
	"userId", "handle", "handleLower", "email", "firstName", "lastName",
	"description", "otherLangName", "status", "photoURL", "homeCountryCode",
	"competitionCountryCode", "verified", "maxRating", "addresses",
	"createdAt", "updatedAt", "createdBy", "updatedBy",
}

// MaxPhotoBytes bounds the size of uploaded photos.
const MaxPhotoBytes = 2 * 1024 * 1024

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// Lookup resolves members by handle.
type Lookup interface {
	GetByHandle(ctx context.Context, handle string) (*models.Member, error)
}

// Photo is an uploaded image.
type Photo struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// Service handles member profile operations.
type Service struct {
	repo         *Repository
	store        storage.Client
	storageCfg   storage.Config
	secureFields []string
	logger       *zap.Logger
}

// NewService creates a new member service.
func NewService(repo *Repository, store storage.Client, storageCfg storage.Config, secureFields []string, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		store:        store,
		storageCfg:   storageCfg,
		secureFields: secureFields,
		logger:       logger,
	}
}

// GetMember returns the member document, restricted to the requested fields.
func (s *Service) GetMember(ctx context.Context, identity *authz.Identity, handle, fields string) (map[string]any, error) {
	selected, err := utils.ParseCommaSeparated(fields, MemberFields)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	doc := BuildMemberResponse(member, authz.CanManageMember(identity, member.HandleLower), s.secureFields)
	if selected == nil {
		return doc, nil
	}
	picked := make(map[string]any, len(selected))
	for _, f := range selected {
		if v, ok := doc[f]; ok {
			picked[f] = v
		}
	}
	return picked, nil
}

// UploadPhoto stores a new member photo and returns its public URL.
func (s *Service) UploadPhoto(ctx context.Context, identity *authz.Identity, handle string, photo Photo) (string, error) {
	member, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return "", err
	}
	if !authz.CanManageMember(identity, member.HandleLower) {
		return "", apperror.Forbidden("You are not allowed to upload photo for the member.")
	}
	if s.store == nil {
		return "", apperror.Internal("photo storage is not configured", nil)
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(photo.ContentType, ";", 2)[0]))
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", apperror.BadRequest("Photo must be a JPEG, PNG or GIF image")
	}
	if photo.Size <= 0 {
		return "", apperror.BadRequest("Photo is empty")
	}
	if photo.Size > MaxPhotoBytes {
		return "", apperror.BadRequest("Photo must not exceed %d bytes", MaxPhotoBytes)
	}

	key := fmt.Sprintf("%s-%s.%s", member.HandleLower, uuid.NewString(), ext)
	_, err = s.store.PutObject(ctx, s.storageCfg.Bucket, key, photo.Body, photo.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"fileName": key},
	})
	if err != nil {
		return "", apperror.Internal("failed to upload photo", err)
	}

	url := s.storageCfg.PhotoURL(key)
	if err := s.repo.UpdatePhotoURL(ctx, member.UserID, url, identity.Actor()); err != nil {
		// Drop the orphaned object; the stored URL still points at the old photo.
		if rmErr := s.store.RemoveObject(ctx, s.storageCfg.Bucket, key, minio.RemoveObjectOptions{}); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned photo", zap.String("key", key), zap.Error(rmErr))
		}
		return "", err
	}

	s.logger.Info("Member photo updated",
		zap.String("handle", member.Handle),
		zap.String("key", key),
		zap.String("actor", identity.Actor()),
	)
	return url, nil
}
