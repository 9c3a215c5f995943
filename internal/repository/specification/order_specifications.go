package specification

import "gorm.io/gorm"

type ByOrderNumber struct {
	OrderNumber string
}

func (s ByOrderNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_number = ?", s.OrderNumber)
}

type ByCustomerEmail struct {
	Email string
}

func (s ByCustomerEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_email = ?", s.Email)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByLicenseKey struct {
	Key string
}

func (s ByLicenseKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}
