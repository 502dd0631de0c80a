package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Employee struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string         `gorm:"type:varchar(255);not null;index"`
	Email      string         `gorm:"type:varchar(255);not null"`
	Role       string         `gorm:"type:varchar(255);not null"`
	Department string         `gorm:"type:varchar(50);not null;index"`
	JoinDate   datatypes.Date `gorm:"not null"`
	Salary     float64        `gorm:"type:numeric(14,2);not null;default:0"`
	Status     string         `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
