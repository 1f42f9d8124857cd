package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// QueueGormStore serializes writers of one salon by locking the salon row
// for the duration of each transaction.
type QueueGormStore struct {
	db *gorm.DB
}

func NewQueueGormStore(db *gorm.DB) *QueueGormStore {
	return &QueueGormStore{db: db}
}

const waiting = string(domain.StatusWaiting)

// --------------------------------------------------
// Locking helpers
// --------------------------------------------------

func lockSalon(tx *gorm.DB, salonID string) error {
	var s models.Salon
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", salonID).
		First(&s).Error
	return translate(err, "lock salon", httperr.ErrSalonNotFound)
}

// lockEntry locks the salon of entryID, then the entry itself.
func lockEntry(tx *gorm.DB, entryID string) (*models.QueueEntry, error) {
	var probe models.QueueEntry
	if err := tx.Select("salon_id").Where("id = ?", entryID).First(&probe).Error; err != nil {
		return nil, translate(err, "find queue entry", httperr.ErrQueueEntryNotFound)
	}

	if err := lockSalon(tx, probe.SalonID); err != nil {
		return nil, err
	}

	var e models.QueueEntry
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", entryID).
		First(&e).Error
	if err != nil {
		return nil, translate(err, "lock queue entry", httperr.ErrQueueEntryNotFound)
	}
	return &e, nil
}

// repack closes the gap left at position vacated.
func repack(tx *gorm.DB, salonID string, vacated int) error {
	err := tx.Model(&models.QueueEntry{}).
		Where("salon_id = ? AND status = ? AND position > ?", salonID, waiting, vacated).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
	return translate(err, "repack queue", nil)
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *QueueGormStore) Join(ctx context.Context, e *models.QueueEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSalon(tx, e.SalonID); err != nil {
			return err
		}

		if e.UserID != nil {
			var dup int64
			if err := tx.Model(&models.QueueEntry{}).
				Where("salon_id = ? AND user_id = ? AND status = ?", e.SalonID, *e.UserID, waiting).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return httperr.ErrDuplicateEntry
			}
		}

		var n int64
		if err := tx.Model(&models.QueueEntry{}).
			Where("salon_id = ? AND status = ?", e.SalonID, waiting).
			Count(&n).Error; err != nil {
			return err
		}

		e.Position = int(n) + 1
		return tx.Create(e).Error
	})
	return translate(err, "join queue", nil)
}

func (r *QueueGormStore) Advance(
	ctx context.Context,
	entryID string,
	target domain.Status,
	now time.Time,
) (*domain.Advanced, error) {

	out := &domain.Advanced{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}

		oldPos := e.Position
		leftWaiting, err := domain.Advance(e, target, now)
		if err != nil {
			return err
		}

		if err := tx.Model(e).
			Select("status", "called_at", "completed_at").
			Updates(e).Error; err != nil {
			return err
		}

		if leftWaiting {
			if err := repack(tx, e.SalonID, oldPos); err != nil {
				return err
			}
		}

		if target == domain.StatusCompleted {
			v, credited, err := recordVisit(tx, e, now)
			if err != nil {
				return err
			}
			out.Visit = v
			out.Credited = credited
		}

		out.Entry = *e
		return nil
	})
	if err != nil {
		return nil, translate(err, "advance queue entry", httperr.ErrQueueEntryNotFound)
	}
	return out, nil
}

// recordVisit writes the visit and credits the points inside the caller's tx.
func recordVisit(tx *gorm.DB, e *models.QueueEntry, now time.Time) (*models.Visit, bool, error) {
	var svc *models.Service
	var found models.Service
	err := tx.Where("id = ? AND salon_id = ?", e.ServiceID, e.SalonID).First(&found).Error
	switch {
	case err == nil:
		svc = &found
	case errorsIsNotFound(err):
	default:
		return nil, false, err
	}

	v := visit.FromCompletedEntry(e, svc, now)
	if err := tx.Create(&v).Error; err != nil {
		return nil, false, err
	}

	if e.UserID == nil {
		return &v, false, nil
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", *e.UserID).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", v.PointsEarned))
	if res.Error != nil {
		return nil, false, res.Error
	}

	return &v, res.RowsAffected > 0, nil
}

func (r *QueueGormStore) Remove(ctx context.Context, entryID string) (bool, error) {
	removed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.QueueEntry{}, "id = ?", e.ID).Error; err != nil {
			return err
		}
		removed = true

		if e.Status == waiting {
			return repack(tx, e.SalonID, e.Position)
		}
		return nil
	})

	if httperr.IsBusiness(err, httperr.CodeQueueEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, translate(err, "remove queue entry", nil)
	}
	return removed, nil
}

func (r *QueueGormStore) ExpireWaiting(ctx context.Context, cutoff time.Time, now time.Time) ([]models.QueueEntry, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("status = ? AND joined_at < ?", waiting, cutoff).
		Order("salon_id, position").
		Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, "find stale entries", nil)
	}

	var expired []models.QueueEntry
	for _, id := range ids {
		res, err := r.Advance(ctx, id, domain.StatusNoShow, now)
		if err != nil {
			if _, ok := httperr.CodeOf(err); ok && !httperr.IsBusiness(err, httperr.CodeStoreUnavailable) {
				// removed or called in the meantime
				continue
			}
			return expired, err
		}
		expired = append(expired, res.Entry)
	}
	return expired, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *QueueGormStore) Get(ctx context.Context, entryID string) (*models.QueueEntry, error) {
	var e models.QueueEntry
	if err := r.db.WithContext(ctx).Where("id = ?", entryID).First(&e).Error; err != nil {
		return nil, translate(err, "get queue entry", httperr.ErrQueueEntryNotFound)
	}
	return &e, nil
}

func (r *QueueGormStore) PositionOf(ctx context.Context, userID, salonID string) (*models.QueueEntry, error) {
	var e models.QueueEntry
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND user_id = ? AND status = ?", salonID, userID, waiting).
		First(&e).Error
	if errorsIsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "position of", nil)
	}
	return &e, nil
}

func (r *QueueGormStore) ListBySalon(ctx context.Context, salonID string) ([]models.QueueEntry, error) {
	var list []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("position ASC, joined_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list queue", nil)
	}

	domain.SortForDisplay(list)
	return list, nil
}

func (r *QueueGormStore) CountWaiting(ctx context.Context, salonID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("salon_id = ? AND status = ?", salonID, waiting).
		Count(&n).Error; err != nil {
		return 0, translate(err, "count waiting", nil)
	}
	return int(n), nil
}

// Compile-time check
var _ domain.Store = (*QueueGormStore)(nil)
