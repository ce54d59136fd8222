package database

import (
	"testing"
	"time"

	"cinebook/internal/shared/config"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	// Repositories match on gorm sentinels like gorm.ErrDuplicatedKey,
	// which only fire when error translation is on.
	for _, mode := range []string{"debug", "release"} {
		gc := newGormConfig(&config.Config{GinMode: mode})
		if !gc.TranslateError {
			t.Errorf("GinMode=%s: TranslateError is off", mode)
		}
		if !gc.PrepareStmt {
			t.Errorf("GinMode=%s: PrepareStmt is off", mode)
		}
	}
}

func TestGormConfigTimestampsAreUTC(t *testing.T) {
	gc := newGormConfig(&config.Config{GinMode: "release"})
	now := gc.NowFunc()
	if now.Location() != time.UTC {
		t.Errorf("NowFunc location = %v, want UTC", now.Location())
	}
}

func TestGormConfigLoggerIsSet(t *testing.T) {
	for _, mode := range []string{"debug", "release"} {
		if newGormConfig(&config.Config{GinMode: mode}).Logger == nil {
			t.Errorf("GinMode=%s: gorm logger not configured", mode)
		}
	}
}
