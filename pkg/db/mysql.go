package db

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectMySQL: MySQL 연결을 설정하고 반환
func ConnectMySQL() (*gorm.DB, error) {
	// 환경 변수에서 DSN 가져오기
	dsn := GetMySQLDSN()
	if dsn == "" {
		log.Fatal("❌ MySQL DSN이 설정되지 않았습니다.")
	}

	// MySQL 연결 (TranslateError: 중복 키 위반을 gorm.ErrDuplicatedKey로 변환)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Printf("❌ MySQL 연결 실패: %v", err)
		return nil, err
	}

	// 스와이프 트랜잭션이 커넥션을 독점하므로 풀 크기를 제한
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(getMaxOpenConns())
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ MySQL 연결 성공!")
	return db, nil
}

func getMaxOpenConns() int {
	if v := os.Getenv("MYSQL_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 25
}
