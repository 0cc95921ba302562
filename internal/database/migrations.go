package database

import (
	"log"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/ashwinyue/chatbot-support/internal/model"
)

// enableSQLiteForeignKeys sqlite 默认不启用外键约束
func enableSQLiteForeignKeys(db *gorm.DB) error {
	dbType := db.Dialector.Name()
	if dbType == "sqlite" || dbType == "sqlite3" {
		return db.Exec("PRAGMA foreign_keys = ON").Error
	}
	return nil
}

// GetMigrator 构建迁移器
func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "0",
			Migrate: func(txn *gorm.DB) error {
				if err := enableSQLiteForeignKeys(txn); err != nil {
					return err
				}
				return txn.AutoMigrate(&model.User{}, &model.Message{})
			},
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		// This is run by the migrator if no previous migration is detected. It
		// allows it to bypass running all the migrations sequentially and just
		// create the latest database state.

		log.Println("clean database detected, running full schema initialization")

		if err := enableSQLiteForeignKeys(txn); err != nil {
			return err
		}

		return txn.AutoMigrate(model.AllModels...)
	})

	return migrator
}
