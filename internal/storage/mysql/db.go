package mysql

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to MySQL through GORM. The DSN is normalised so timestamps
// scan into time.Time in UTC.
func Open(ctx context.Context, dsn string, l zerolog.Logger) (*gorm.DB, error) {
	cfg, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := gorm.Open(gormmysql.Open(cfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.New(gormWriter{l: l}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "gorm db handle")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "mysql ping")
	}
	return db, nil
}

// Migrate creates or updates every table the service and seeder touch.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&userRow{}, &sessionRow{}, &enrollmentRow{}, &ticketTypeRow{}, &ticketRow{},
		&hotelRow{}, &roomRow{}, &bookingRow{},
	)
}

type gormWriter struct{ l zerolog.Logger }

func (w gormWriter) Printf(format string, args ...any) {
	w.l.Warn().Str("component", "gorm").Msgf(format, args...)
}
