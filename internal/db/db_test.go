package db

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/model"
)

func TestMigrateCreatesTables(t *testing.T) {
	gormDB, err := NewSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))

	for _, m := range Models() {
		assert.True(t, gormDB.Migrator().HasTable(m), "table for %T", m)
	}
	assert.True(t, gormDB.Migrator().HasColumn(&model.Skill{}, "sort_order"))
	assert.True(t, gormDB.Migrator().HasColumn(&model.Message{}, "is_read"))

	DropAll(gormDB)
	assert.False(t, gormDB.Migrator().HasTable(&model.Skill{}))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	gormDB, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: newLogger(&buf),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gormDB))
	buf.Reset()

	var admin model.Admin
	err = gormDB.Where("username = ?", "ghost").First(&admin).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	err = gormDB.Raw("SELECT * FROM no_such_table").Scan(&admin).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
