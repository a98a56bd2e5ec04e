package storage

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type Storage struct {
	db *gorm.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logrus.WithError(err).WithField("path", dbPath).Error("storage: Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	err := s.db.AutoMigrate(&PartyRecord{}, &ParticipantRecord{}, &InvitationRecord{})
	if err != nil {
		logrus.WithError(err).Error("storage: Failed to migrate database")
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// translate maps gorm's not-found error onto the storage sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
