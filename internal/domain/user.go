package domain

// Name holds a user's first and last name.
type Name struct {
	First string `json:"firstname"`
	Last  string `json:"lastname"`
}

// Geolocation holds the coordinates attached to an address.
type Geolocation struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// Address holds a user's postal address.
type Address struct {
	City    string      `json:"city"`
	Street  string      `json:"street"`
	Number  int         `json:"number"`
	Zipcode string      `json:"zipcode"`
	Geo     Geolocation `json:"geolocation"`
}

// User represents a directory record. Users are read-only in this system.
type User struct {
	ID       int     `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Name     Name    `json:"name"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
}

// Active reports the user's derived status. Status is not stored anywhere:
// it is a fixed function of identifier parity (odd = active, even = inactive).
func (u User) Active() bool {
	return u.ID%2 == 1
}

// Status returns the derived status as its wire representation.
func (u User) Status() string {
	if u.Active() {
		return StatusActive
	}
	return StatusInactive
}

// User status filter values.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)
