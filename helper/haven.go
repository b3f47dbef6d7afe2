package helper

import (
	"context"
	"errors"
	"fmt"
	"log"

	"haven_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// HavenManager owns the rentable units and their image/blocked-date children.
type HavenManager struct {
	db     *gorm.DB
	images ImageUploader
}

func NewHavenManager(db *gorm.DB, images ImageUploader) *HavenManager {
	return &HavenManager{db: db, images: images}
}

func (m *HavenManager) Create(ctx context.Context, input model.CreateHavenInput) (*model.Haven, error) {
	var existing int64
	if err := m.db.WithContext(ctx).Model(&model.Haven{}).
		Where("name = ?", input.Name).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: haven %s", ErrConflict, input.Name)
	}

	// Uploads happen before the transaction; a failed upload aborts the
	// whole creation, an orphaned remote image does not.
	uploads := make([]UploadResult, 0, len(input.Images))
	for _, payload := range input.Images {
		res, err := m.images.Upload(ctx, payload, "havens")
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, res)
	}

	blocked := make([]model.BlockedDate, 0, len(input.BlockedDates))
	for _, d := range input.BlockedDates {
		date, err := parseDate("blocked_dates", d)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, model.BlockedDate{Date: date})
	}

	haven := model.Haven{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Capacity:    input.Capacity,
		BaseRate:    input.BaseRate,
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&haven).Error; err != nil {
			return err
		}
		for _, up := range uploads {
			img := model.HavenImage{HavenID: haven.ID, URL: up.URL, PublicID: up.ID}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			haven.Images = append(haven.Images, img)
		}
		for i := range blocked {
			blocked[i].HavenID = haven.ID
			if err := tx.Create(&blocked[i]).Error; err != nil {
				return err
			}
		}
		haven.BlockedDates = blocked
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: haven %s", ErrConflict, input.Name)
		}
		return nil, err
	}
	return &haven, nil
}

func (m *HavenManager) Get(ctx context.Context, id uint) (*model.Haven, error) {
	var haven model.Haven
	err := m.db.WithContext(ctx).Preload("Images").Preload("BlockedDates").
		First(&haven, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &haven, nil
}

func (m *HavenManager) List(ctx context.Context) ([]model.Haven, error) {
	var havens []model.Haven
	err := m.db.WithContext(ctx).Preload("Images").Order("name asc").Find(&havens).Error
	if err != nil {
		return nil, err
	}
	return havens, nil
}

func (m *HavenManager) Update(ctx context.Context, id uint, input model.UpdateHavenInput) (*model.Haven, error) {
	haven, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uploads := make([]UploadResult, 0, len(input.Images))
	for _, payload := range input.Images {
		res, err := m.images.Upload(ctx, payload, "havens")
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, res)
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
		updates["slug"] = slug.Make(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}
	if input.BaseRate != nil {
		updates["base_rate"] = *input.BaseRate
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(haven).Updates(updates).Error; err != nil {
				return err
			}
		}
		for _, up := range uploads {
			img := model.HavenImage{HavenID: haven.ID, URL: up.URL, PublicID: up.ID}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		if input.BlockedDates != nil {
			if err := tx.Where("haven_id = ?", haven.ID).Delete(&model.BlockedDate{}).Error; err != nil {
				return err
			}
			for _, d := range input.BlockedDates {
				date, err := parseDate("blocked_dates", d)
				if err != nil {
					return err
				}
				bd := model.BlockedDate{HavenID: haven.ID, Date: date}
				if err := tx.Create(&bd).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

func (m *HavenManager) Delete(ctx context.Context, id uint) (*model.Haven, error) {
	haven, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Remote images are cleaned up best-effort; the row delete is what counts.
	for _, img := range haven.Images {
		if img.PublicID == "" {
			continue
		}
		if ok, err := m.images.Delete(ctx, img.PublicID); err != nil || !ok {
			log.Printf("haven %d: image %s not removed from store: %v", haven.ID, img.PublicID, err)
		}
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("haven_id = ?", haven.ID).Delete(&model.HavenImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("haven_id = ?", haven.ID).Delete(&model.BlockedDate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Haven{}, haven.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return haven, nil
}
