package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/abbasza/contactctl/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "state.db"

const (
	AUTH_TOKEN_KEY = "auth_token"
	THEME_KEY      = "theme"

	LIGHT_THEME = "light"
	DARK_THEME  = "dark"
)

// Setting is a single key/value row of client state. The only rows in
// use are the bearer token & the theme preference.
type Setting struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"not null;unique"`
	Value     string `gorm:"not null"`
	CreatedAt int64  `gorm:"autoCreateTime"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

// Store persists client state(session token & theme preference) across
// invocations. Open a fresh instance per process/test - there are no
// ambient globals.
type Store struct {
	db *gorm.DB
}

// Open opens(or creates) the encrypted state db under rootDir
// and migrates the schema.
func Open(passPhrase, rootDir string) (*Store, error) {
	dsn, err := dbDSN(passPhrase, rootDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set sqlite DSN")
	}

	db, err := gorm.Open(sqliteEncrypt.Open(dsn), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open state database")
	}

	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// ---------------------------------------------------------------------------------//
// Session
// --------------------------------------------------------------------------------//

// Token returns the stored bearer credential or "" when absent.
// The value is opaque - it's never parsed or validated client-side.
func (s *Store) Token() string {
	return s.get(AUTH_TOKEN_KEY)
}

func (s *Store) SetToken(token string) error {
	return s.set(AUTH_TOKEN_KEY, token)
}

func (s *Store) ClearToken() error {
	return s.clear(AUTH_TOKEN_KEY)
}

// IsAuthenticated is true iff a token is present. An expired-but-present
// token still reads as authenticated until a request fails.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// ---------------------------------------------------------------------------------//
// Theme
// --------------------------------------------------------------------------------//

func (s *Store) Theme() string {
	if theme := s.get(THEME_KEY); theme != "" {
		return theme
	}
	return LIGHT_THEME
}

func (s *Store) SetTheme(theme string) error {
	if theme != LIGHT_THEME && theme != DARK_THEME {
		return fmt.Errorf("invalid theme %q, must be %q or %q", theme, LIGHT_THEME, DARK_THEME)
	}
	return s.set(THEME_KEY, theme)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Store) get(key string) string {
	setting := Setting{}

	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ""
	}

	return setting.Value
}

func (s *Store) set(key, value string) error {
	setting := Setting{}

	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&setting).Update("value", value).Error
}

func (s *Store) clear(key string) error {
	return s.db.Where("key = ?", key).Delete(&Setting{}).Error
}

func dbDSN(passPhrase, rootDir string) (string, error) {
	dbDir, err := DbDirectory(rootDir)
	if err != nil {
		return "", err
	}

	dbFilePath := filepath.Join(dbDir, DB_NAME)
	dbName := fmt.Sprintf("file:%v", dbFilePath)

	return fmt.Sprintf(
		"%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbName,
		strings.TrimSpace(passPhrase),
	), nil
}

func DbDirectory(rootDir string) (string, error) {
	dbDir := filepath.Join(rootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}
