package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills a zero primary key so rows get the same UUIDs on every
// dialect, not only where gen_random_uuid() exists.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (t *RefreshToken) BeforeCreate(_ *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

func (a *Album) BeforeCreate(_ *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (t *Track) BeforeCreate(_ *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

func (p *Playlist) BeforeCreate(_ *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (l *SystemLog) BeforeCreate(_ *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
