package database

import (
	"log"

	"haven_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SeedData inserts starter havens when the table is empty.
func SeedData(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.Haven{}).Count(&count).Error; err != nil {
		log.Printf("seed: count havens failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	havens := []model.Haven{
		{
			Name:        "Haven 1",
			Slug:        slug.Make("Haven 1"),
			Description: "Two-bedroom unit with garden view",
			Capacity:    4,
			BaseRate:    3000,
		},
		{
			Name:        "Haven 2",
			Slug:        slug.Make("Haven 2"),
			Description: "Studio unit near the pool",
			Capacity:    2,
			BaseRate:    2200,
		},
	}
	if err := db.Create(&havens).Error; err != nil {
		log.Printf("seed: create havens failed: %v", err)
		return
	}
	log.Printf("seeded %d havens", len(havens))
}
