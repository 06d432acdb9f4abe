package models

// APIKey is an administrator credential. It is not tied to any user.
type APIKey struct {
	ID  uint   `json:"id" gorm:"primaryKey"`
	Key string `json:"key" gorm:"size:255;not null;uniqueIndex"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Event{},
		&Category{},
		&Product{},
		&Like{},
		&Attend{},
		&Favourite{},
		&APIKey{},
	}
}
