package models

// Like records that a user liked an event
type Like struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	EventID uint   `json:"event_id" gorm:"not null;index"`
	User    *User  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Event   *Event `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type CreateLikeRequest struct {
	UserID  uint `validate:"required"`
	EventID uint `validate:"required"`
}

type UpdateLikeRequest struct {
	UserID  *uint
	EventID *uint
}

// Attend is a user's RSVP to an event. WillGo is free text such as
// "yes", "no" or "maybe".
type Attend struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	EventID uint   `json:"event_id" gorm:"not null;index"`
	WillGo  string `json:"will_go" gorm:"size:15;index"`
	User    *User  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Event   *Event `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// AttendRequest carries the parameters of an attendance upsert. All three
// fields are needed to create a row; any subset may update one.
type AttendRequest struct {
	UserID  *uint
	EventID *uint
	WillGo  *string `validate:"omitempty,max=15"`
}

// Complete reports whether the request carries enough data to insert a row.
func (r AttendRequest) Complete() bool {
	return r.UserID != nil && r.EventID != nil && r.WillGo != nil
}

// AttendeeRow is an attendance row joined with the attending user.
type AttendeeRow struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	EventID    uint    `json:"event_id"`
	Name       string  `json:"name"`
	ProfilePic *string `json:"profile_pic"`
	WillGo     string  `json:"will_go"`
}

// Favourite records that a user marked a product as favourite
type Favourite struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	UserID    uint     `json:"user_id" gorm:"not null;index"`
	ProductID uint     `json:"product_id" gorm:"not null;index"`
	User      *User    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Product   *Product `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// FavouriteRequest carries the parameters of a favourite upsert.
type FavouriteRequest struct {
	UserID    *uint
	ProductID *uint
}

func (r FavouriteRequest) Complete() bool {
	return r.UserID != nil && r.ProductID != nil
}

// FavouriteRow is a favourite joined with its user and product.
type FavouriteRow struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	UserPic     *string `json:"user_pic"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductPic  *string `json:"product_pic"`
}

// ProductCount pairs a product with how many users favourited it.
type ProductCount struct {
	Product Product
	Count   int64
}
