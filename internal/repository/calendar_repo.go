package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// CalendarFilter narrows event listings to a school and time window.
type CalendarFilter struct {
	SchoolID uint
	From     *time.Time
	To       *time.Time
}

// CalendarRepository provides access to school calendar events.
type CalendarRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	GetByID(ctx context.Context, id uint) (models.CalendarEvent, error)
	List(ctx context.Context, filter CalendarFilter) ([]models.CalendarEvent, error)
	Update(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id uint) error
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository constructs a calendar repository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) GetByID(ctx context.Context, id uint) (models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return models.CalendarEvent{}, err
	}

	return event, nil
}

func (r *calendarRepository) List(ctx context.Context, filter CalendarFilter) ([]models.CalendarEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.CalendarEvent{}).
		Where("school_id = ?", filter.SchoolID)

	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	var events []models.CalendarEvent
	if err := query.Order("starts_at asc").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (r *calendarRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *calendarRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
