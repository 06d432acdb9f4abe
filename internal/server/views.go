package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"gorm.io/datatypes"
)

// Date layouts used in responses. User dates are day-first everywhere;
// events use ISO dates in listings and HTTP dates when read by id.
const (
	userDateLayout  = "02-01-2006"
	eventDateLayout = "2006-01-02"
	eventDateHTTP   = http.TimeFormat
)

type userView struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	ProfilePic *string `json:"profile_pic"`
	StartDate  string  `json:"start_date"`
}

type userWithKeyView struct {
	userView
	APIKey string `json:"api_key"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		StartDate:  time.Time(u.StartDate).Format(userDateLayout),
	}
}

func newUserWithKeyView(u *models.User) userWithKeyView {
	return userWithKeyView{userView: newUserView(u), APIKey: u.APIKey}
}

type eventView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Picture     *string `json:"picture"`
	EventType   string  `json:"event_type"`
}

func newEventView(e *models.Event, dateLayout string) eventView {
	v := eventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Picture:     e.Picture,
		EventType:   e.EventType,
	}
	if e.Date != nil {
		d := formatDate(*e.Date, dateLayout)
		v.Date = &d
	}
	if e.Time != nil {
		t := e.Time.String()
		v.Time = &t
	}
	return v
}

func formatDate(d datatypes.Date, layout string) string {
	t := time.Time(d)
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Format(layout)
}

type categoryView struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	URL  *string `json:"url"`
}

func newCategoryView(c *models.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, URL: c.URL}
}

type productView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  uint    `json:"category_id"`
	Proof       *string `json:"proof"`
	Country     *string `json:"country"`
	Available   bool    `json:"available"`
	Price       string  `json:"price"`
	Picture     *string `json:"picture"`
}

type productCountView struct {
	productView
	Count int64 `json:"count"`
}

func newProductView(p *models.Product) productView {
	v := productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Country:     p.Country,
		Available:   p.Available,
		Price:       formatDecimal(p.Price),
		Picture:     p.Picture,
	}
	if p.Proof != nil {
		proof := formatDecimal(*p.Proof)
		v.Proof = &proof
	}
	return v
}

func formatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

type likeView struct {
	ID      uint `json:"id"`
	UserID  uint `json:"user_id"`
	EventID uint `json:"event_id"`
}

func newLikeView(l *models.Like) likeView {
	return likeView{ID: l.ID, UserID: l.UserID, EventID: l.EventID}
}

type attendView struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
	EventID uint   `json:"event_id"`
	WillGo  string `json:"will_go"`
}

func newAttendView(a *models.Attend) attendView {
	return attendView{ID: a.ID, UserID: a.UserID, EventID: a.EventID, WillGo: a.WillGo}
}

type favouriteView struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

func newFavouriteView(f *models.Favourite) favouriteView {
	return favouriteView{ID: f.ID, UserID: f.UserID, ProductID: f.ProductID}
}

// mapViews applies view to every row, always returning a non-nil slice.
func mapViews[M any, V any](rows []M, view func(*M) V) []V {
	out := make([]V, 0, len(rows))
	for i := range rows {
		out = append(out, view(&rows[i]))
	}
	return out
}
