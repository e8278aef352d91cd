package models

import "time"

type Address struct {
	AddressID   int64     `json:"addressId" gorm:"column:address_id;primaryKey;autoIncrement"`
	Street      string    `json:"street" gorm:"type:varchar(50)"`
	HouseNumber int       `json:"houseNumber" gorm:"not null"`
	Annex       string    `json:"annex" gorm:"type:varchar(3)"`
	PostalCode  string    `json:"postalCode" gorm:"type:varchar(7);index"`
	City        string    `json:"city" gorm:"type:text;index"`
	Country     string    `json:"country" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

func (Address) TableName() string {
	return "address"
}
