// Package lifecycle keeps food records and their image files consistent.
//
// Every mutating operation is a short saga: the record write is the
// authoritative step, file deletions before it are compensations for a staged
// upload and file deletions after it are post-commit cleanup. File deletions
// never fail an operation; they are logged and counted.
package lifecycle

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/logger"
)

// Repository is the record store used by the Manager.
type Repository interface {
	Create(ctx context.Context, rec *food.Food) (*food.Food, error)
	FindByID(ctx context.Context, id string) (*food.Food, error)
	Update(ctx context.Context, id string, patch food.Patch) (*food.Food, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore is the image file store used by the Manager.
type ImageStore interface {
	// URLFor builds the reference stored in a record for a staged filename.
	URLFor(filename string) string
	// Delete removes a file and reports whether anything was removed. It never fails.
	Delete(ctx context.Context, filename string) bool
	// DeleteReference deletes the file an image URL points to. It never fails.
	DeleteReference(ctx context.Context, imageURL string) bool
	// ResolveReference maps an image URL back to its stored filename.
	ResolveReference(imageURL string) (string, bool)
}

// Manager implements create, update and delete of food records.
type Manager struct {
	repo   Repository
	images ImageStore
	log    logger.Logger
}

// New creates a Manager.
func New(repo Repository, images ImageStore) *Manager {
	return &Manager{
		repo:   repo,
		images: images,
		log:    logger.Named("food.lifecycle"),
	}
}

// Create validates the input and stores a new record referencing the staged
// image, if any. On any failure the staged file is deleted.
func (m *Manager) Create(ctx context.Context, in food.CreateInput, staged *food.StagedFile) (*food.Food, error) {
	rec, err := in.ToFood()
	if err != nil {
		m.discardStaged(ctx, staged, reasonValidation)
		return nil, errx.Wrap(err)
	}

	if staged != nil {
		url := m.images.URLFor(staged.Filename)
		rec.ImageURL = &url
	}

	created, err := m.repo.Create(ctx, rec)
	if err != nil {
		m.discardStaged(ctx, staged, reasonStoreError)
		return nil, errx.Wrap(err)
	}

	return created, nil
}

// Update applies the fields present in the input. A staged image replaces the
// current one; the old file is deleted only after the record update succeeded.
func (m *Manager) Update(ctx context.Context, in food.UpdateInput, staged *food.StagedFile) (*food.Food, error) {
	existing, err := m.repo.FindByID(ctx, in.ID)
	if err != nil {
		reason := reasonStoreError
		if food.IsNotFound(err) {
			reason = reasonNotFound
		}
		m.discardStaged(ctx, staged, reason)
		return nil, errx.Wrap(err)
	}

	patch, err := in.ToPatch()
	if err != nil {
		m.discardStaged(ctx, staged, reasonValidation)
		return nil, errx.Wrap(err)
	}

	var oldImageURL string
	if staged != nil {
		newImageURL := m.images.URLFor(staged.Filename)
		patch.SetImageURL(&newImageURL)
		if existing.HasImage() {
			oldImageURL = *existing.ImageURL
		}
	}

	updated, err := m.repo.Update(ctx, in.ID, patch)
	if err != nil {
		reason := reasonStoreError
		if food.IsNotFound(err) {
			reason = reasonNotFound
		}
		m.discardStaged(ctx, staged, reason)
		return nil, errx.Wrap(err)
	}

	if oldImageURL != "" && !m.sameFile(oldImageURL, staged.Filename) {
		m.cleanup(ctx, oldImageURL, reasonReplaced)
	}

	return updated, nil
}

// Delete removes the record and then its image file. A failed file deletion
// leaves an orphaned file but does not fail the operation.
func (m *Manager) Delete(ctx context.Context, id string) error {
	existing, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errx.Wrap(err)
	}

	err = m.repo.Delete(ctx, id)
	if err != nil {
		return errx.Wrap(err)
	}

	if existing.HasImage() {
		m.cleanup(ctx, *existing.ImageURL, reasonDeleted)
	}

	return nil
}

// sameFile reports whether imageURL points at filename under any accepted prefix.
func (m *Manager) sameFile(imageURL, filename string) bool {
	name, ok := m.images.ResolveReference(imageURL)
	return ok && name == filename
}

// discardStaged deletes a staged upload that no record will reference.
// Deletion outlives the request deadline.
func (m *Manager) discardStaged(ctx context.Context, staged *food.StagedFile, reason string) {
	if staged == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	removed := m.images.Delete(ctx, staged.Filename)
	observeCleanup(kindCompensation, reason, removed)

	m.log.WithContext(ctx).
		With("filename", staged.Filename, "reason", reason, "removed", removed).
		Warn("staged image discarded")
}

// cleanup deletes a file the committed record no longer references.
func (m *Manager) cleanup(ctx context.Context, imageURL, reason string) {
	ctx = context.WithoutCancel(ctx)
	removed := m.images.DeleteReference(ctx, imageURL)
	observeCleanup(kindPostCommit, reason, removed)

	log := m.log.WithContext(ctx).With("image_url", imageURL, "reason", reason)
	if !removed {
		log.Warn("superseded image was not removed, file may be orphaned")
		return
	}
	log.Info("superseded image removed")
}
